package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for siteassist resources.
	uriScheme = "siteassist://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "products",
		Name:        "products",
		Description: "The product and service catalogue",
		MIMEType:    "application/json",
	}, s.handleProductsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "descriptions",
		Name:        "descriptions",
		Description: "Business descriptions held by the knowledge base",
		MIMEType:    "application/json",
	}, s.handleDescriptionsResource)

	// Template for a single description's full text.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "descriptions/{docId}",
		Name:        "description-content",
		Description: "Full text of one business description",
		MIMEType:    "text/plain",
	}, s.handleDescriptionContentResource)
}

func (s *Server) handleProductsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Product == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	products, err := s.ports.Product.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	data, err := json.MarshalIndent(productOutputs(products), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling products: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func (s *Server) handleDescriptionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Description == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	docs, err := s.ports.Description.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing descriptions: %w", err)
	}

	data, err := json.MarshalIndent(descriptionOutputs(docs, false), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling descriptions: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleDescriptionContentResource returns the text of one description.
// The backend has no single-document read, so the list is filtered.
func (s *Server) handleDescriptionContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Description == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docID := extractDescriptionID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docs, err := s.ports.Description.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing descriptions: %w", err)
	}

	for i := range docs {
		if docs[i].ID == docID {
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      req.Params.URI,
					MIMEType: "text/plain",
					Text:     docs[i].Content,
				}},
			}, nil
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractDescriptionID extracts the ID from a URI like siteassist://descriptions/{docId}.
func extractDescriptionID(uri string) string {
	const prefix = uriScheme + "descriptions/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
