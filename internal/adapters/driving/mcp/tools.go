package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

// ChatInput is the input schema for the chat tool.
type ChatInput struct {
	Message string `json:"message" jsonschema:"the customer question to ask the site assistant"`
}

// ChatOutput is the output schema for the chat tool.
type ChatOutput struct {
	Reply string `json:"reply"`
}

// ExtractURLsInput is the input schema for the extract_urls tool.
type ExtractURLsInput struct {
	URL string `json:"url" jsonschema:"the seed URL of the site to crawl"`
}

// ExtractURLsOutput lists the classified pages of a site.
type ExtractURLsOutput struct {
	DescriptionURLs []string `json:"description_urls"`
	ProductURLs     []string `json:"product_urls"`
}

// ProcessURLsInput is the input schema for the process_urls tool.
type ProcessURLsInput struct {
	DescriptionURLs []string `json:"description_urls,omitempty" jsonschema:"pages to ingest as business descriptions"`
	ProductURLs     []string `json:"product_urls,omitempty" jsonschema:"pages to ingest as products or services"`
}

// StatusOutput is the outcome of one submission.
type StatusOutput struct {
	State   string `json:"state"`
	Message string `json:"message,omitempty"`
}

// ProcessURLsOutput reports each list independently.
type ProcessURLsOutput struct {
	Description StatusOutput `json:"description"`
	Product     StatusOutput `json:"product"`
}

// ProcessTextInput is the input schema for the process_text tool.
type ProcessTextInput struct {
	Kind string `json:"kind" jsonschema:"desc for a business description, product for a product or service"`
	Text string `json:"text" jsonschema:"the text to ingest, at least 50 characters"`
}

// ProcessTextOutput is the output schema for the process_text tool.
type ProcessTextOutput struct {
	Status   StatusOutput    `json:"status"`
	Products []ProductOutput `json:"products,omitempty"`
}

// ListInput is the empty input of the listing tools.
type ListInput struct{}

// ProductOutput represents a single catalogue entry.
type ProductOutput struct {
	ID             string  `json:"product_id"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	Price          float64 `json:"price"`
	Specifications string  `json:"specifications,omitempty"`
	Features       string  `json:"features,omitempty"`
	ImageURL       string  `json:"image_url,omitempty"`
}

// ListProductsOutput is the output schema for the list_products tool.
type ListProductsOutput struct {
	Products []ProductOutput `json:"products"`
	Count    int             `json:"count"`
}

// DescriptionOutput represents a single stored description.
type DescriptionOutput struct {
	ID      string `json:"doc_id"`
	Title   string `json:"title"`
	Source  string `json:"source,omitempty"`
	Content string `json:"content,omitempty"`
}

// ListDescriptionsOutput is the output schema for the list_descriptions tool.
type ListDescriptionsOutput struct {
	Descriptions []DescriptionOutput `json:"descriptions"`
	Count        int                 `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "chat",
		Description: "Ask the site assistant a question and get its answer",
	}, s.handleChat)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_urls",
		Description: "Crawl a site from a seed URL and classify its pages as descriptions or products",
	}, s.handleExtractURLs)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "process_urls",
		Description: "Ingest description and product pages into the knowledge base",
	}, s.handleProcessURLs)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "process_text",
		Description: "Ingest a block of text as a description or as product information",
	}, s.handleProcessText)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_products",
		Description: "List the products and services in the knowledge base",
	}, s.handleListProducts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_descriptions",
		Description: "List the business descriptions in the knowledge base",
	}, s.handleListDescriptions)
}

// toolError turns a service error into the text the caller sees.
func toolError(err error) error {
	return errors.New(domain.UserMessage(err, ""))
}

func (s *Server) handleChat(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ChatInput,
) (*mcp.CallToolResult, ChatOutput, error) {
	reply, err := s.ports.Chat.Ask(ctx, input.Message)
	if err != nil {
		return nil, ChatOutput{}, toolError(err)
	}
	return nil, ChatOutput{Reply: reply}, nil
}

func (s *Server) handleExtractURLs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractURLsInput,
) (*mcp.CallToolResult, ExtractURLsOutput, error) {
	set, err := s.ports.Ingest.Classify(ctx, input.URL)
	if err != nil {
		return nil, ExtractURLsOutput{}, toolError(err)
	}
	return nil, ExtractURLsOutput{
		DescriptionURLs: nonNil(set.Description),
		ProductURLs:     nonNil(set.Product),
	}, nil
}

// handleProcessURLs submits both lists. Per-list failures are reported in
// the output rather than failing the call.
func (s *Server) handleProcessURLs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProcessURLsInput,
) (*mcp.CallToolResult, ProcessURLsOutput, error) {
	set := domain.NewClassifiedURLSet(input.DescriptionURLs, input.ProductURLs)
	if set.Len() == 0 {
		return nil, ProcessURLsOutput{}, toolError(domain.ErrEmptyList)
	}

	batch := s.ports.Ingest.ProcessAll(ctx, set)
	return nil, ProcessURLsOutput{
		Description: statusOutput(batch.Description.Status),
		Product:     statusOutput(batch.Product.Status),
	}, nil
}

func (s *Server) handleProcessText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProcessTextInput,
) (*mcp.CallToolResult, ProcessTextOutput, error) {
	kind, err := domain.ParseListKind(input.Kind)
	if err != nil {
		return nil, ProcessTextOutput{}, toolError(err)
	}

	result, err := s.ports.Ingest.ProcessText(ctx, kind, input.Text)
	if err != nil {
		return nil, ProcessTextOutput{}, toolError(err)
	}

	return nil, ProcessTextOutput{
		Status:   statusOutput(result.Status),
		Products: productOutputs(result.Products),
	}, nil
}

func (s *Server) handleListProducts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListInput,
) (*mcp.CallToolResult, ListProductsOutput, error) {
	if s.ports.Product == nil {
		return nil, ListProductsOutput{Products: []ProductOutput{}}, nil
	}

	products, err := s.ports.Product.List(ctx)
	if err != nil {
		return nil, ListProductsOutput{}, toolError(err)
	}

	out := productOutputs(products)
	return nil, ListProductsOutput{Products: out, Count: len(out)}, nil
}

func (s *Server) handleListDescriptions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListInput,
) (*mcp.CallToolResult, ListDescriptionsOutput, error) {
	if s.ports.Description == nil {
		return nil, ListDescriptionsOutput{Descriptions: []DescriptionOutput{}}, nil
	}

	docs, err := s.ports.Description.List(ctx)
	if err != nil {
		return nil, ListDescriptionsOutput{}, toolError(err)
	}

	out := descriptionOutputs(docs, false)
	return nil, ListDescriptionsOutput{Descriptions: out, Count: len(out)}, nil
}

func statusOutput(st domain.ProcessStatus) StatusOutput {
	return StatusOutput{State: st.State.String(), Message: st.Message}
}

func productOutputs(products []domain.Product) []ProductOutput {
	out := make([]ProductOutput, len(products))
	for i := range products {
		p := &products[i]
		out[i] = ProductOutput{
			ID:             p.ID,
			Name:           p.Name,
			Description:    p.Description,
			Price:          p.Price,
			Specifications: p.Specifications,
			Features:       p.Features,
			ImageURL:       p.ImageURL,
		}
	}
	return out
}

func descriptionOutputs(docs []domain.KnowledgeDocument, withContent bool) []DescriptionOutput {
	out := make([]DescriptionOutput, len(docs))
	for i := range docs {
		out[i] = DescriptionOutput{
			ID:     docs[i].ID,
			Title:  docs[i].DisplayTitle(),
			Source: docs[i].Source,
		}
		if withContent {
			out[i].Content = docs[i].Content
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
