package backend

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

// Endpoint paths.
const (
	pathExtractURLs         = "/extract-urls"
	pathProcessDescURLs     = "/process-desc-urls"
	pathProcessProductURLs  = "/process-product-urls"
	pathProcessDescText     = "/process-desc-text"
	pathProcessProductText  = "/process-product-text"
	pathChatbot             = "/chatbot"
	pathViewAllDescriptions = "/view-all-descriptions"
	pathAddDescription      = "/add-description"
	pathRemoveDescription   = "/remove-description"
	pathManageDescription   = "/manage-description"
	pathViewAllProducts     = "/view-all-products"
	pathAddProduct          = "/add-product"
	pathUpdateProduct       = "/update-product"
	pathRemoveProduct       = "/remove-product"
)

type urlRequest struct {
	URL string `json:"url"`
}

type urlsRequest struct {
	URLs []string `json:"urls"`
}

type textRequest struct {
	Text string `json:"text"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type extractResponse struct {
	DescURLs           []string `json:"desc_urls"`
	ProductServiceURLs []string `json:"product_service_urls"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type processResponse struct {
	Message  string        `json:"message"`
	Products []productWire `json:"products"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type descriptionRequest struct {
	Action string `json:"action,omitempty"`
	DocID  string `json:"doc_id,omitempty"`
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
	Source string `json:"source,omitempty"`
}

type descriptionsResponse struct {
	Message      string            `json:"message"`
	Descriptions []descriptionWire `json:"descriptions"`
}

type descriptionWire struct {
	Content  string          `json:"content"`
	DocID    string          `json:"doc_id"`
	Metadata descriptionMeta `json:"metadata"`
}

type descriptionMeta struct {
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	DocID     string    `json:"doc_id"`
	CreatedAt epochTime `json:"created_at"`
	UpdatedAt epochTime `json:"updated_at"`
}

func (d descriptionWire) toDomain() domain.KnowledgeDocument {
	id := d.DocID
	if id == "" || id == "unknown" {
		id = d.Metadata.DocID
	}
	return domain.KnowledgeDocument{
		ID:        id,
		Title:     d.Metadata.Title,
		Content:   d.Content,
		Source:    d.Metadata.Source,
		CreatedAt: d.Metadata.CreatedAt.Time,
		UpdatedAt: d.Metadata.UpdatedAt.Time,
	}
}

// epochTime decodes a Unix timestamp in fractional seconds, either as a
// JSON number or a numeric string.
type epochTime struct {
	time.Time
}

func (e *epochTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Non-numeric ids (e.g. doc_id defaults) are not timestamps.
		return nil
	}
	sec, frac := math.Modf(f)
	e.Time = time.Unix(int64(sec), int64(frac*1e9)).UTC()
	return nil
}

type productWire struct {
	ProductID      string   `json:"product_id,omitempty"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          *float64 `json:"price"`
	Specifications string   `json:"specifications,omitempty"`
	Features       string   `json:"features,omitempty"`
	ImageURL       string   `json:"image_url,omitempty"`
	RawContent     string   `json:"raw_content,omitempty"`
}

func productToWire(p domain.Product) productWire {
	price := p.Price
	return productWire{
		ProductID:      p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          &price,
		Specifications: p.Specifications,
		Features:       p.Features,
		ImageURL:       p.ImageURL,
	}
}

func (w productWire) toDomain() domain.Product {
	p := domain.Product{
		ID:             w.ProductID,
		Name:           w.Name,
		Description:    w.Description,
		Specifications: w.Specifications,
		Features:       w.Features,
		ImageURL:       w.ImageURL,
	}
	if w.Price != nil {
		p.Price = *w.Price
	}
	if p.Description == "" && w.RawContent != "" {
		p.Description = w.RawContent
	}
	return p
}

func productsToDomain(in []productWire) []domain.Product {
	out := make([]domain.Product, 0, len(in))
	for _, w := range in {
		out = append(out, w.toDomain())
	}
	return out
}

type productsResponse struct {
	Message  string        `json:"message"`
	Products []productWire `json:"products"`
}

type productWriteResponse struct {
	Message   string      `json:"message"`
	Product   productWire `json:"product"`
	ProductID string      `json:"product_id"`
}

type removeProductRequest struct {
	ProductID string `json:"product_id,omitempty"`
	Name      string `json:"name,omitempty"`
}

type removeProductResponse struct {
	Message    string   `json:"message"`
	RemovedIDs []string `json:"removed_ids"`
}

// parseErrorBody extracts a user-facing reason from a failed response body.
func parseErrorBody(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(text, "<") {
		// HTML error pages are noise.
		return ""
	}
	const maxLen = 300
	if len(text) > maxLen {
		text = text[:maxLen] + "..."
	}
	return text
}
