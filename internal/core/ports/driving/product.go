package driving

import (
	"context"
	"io"
	"strings"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

// ProductService manages the backend's product catalogue.
type ProductService interface {
	// List returns all products.
	List(ctx context.Context) ([]domain.Product, error)

	// Add validates and stores a new product.
	Add(ctx context.Context, p domain.Product) (*domain.Product, string, error)

	// Update validates and replaces an existing product.
	Update(ctx context.Context, p domain.Product) (*domain.Product, string, error)

	// Remove deletes products by id or name and returns the removed ids.
	Remove(ctx context.Context, ref domain.ProductRef) ([]string, string, error)

	// Import adds every product in a YAML or JSON catalogue.
	// Each entry is validated and added independently.
	Import(ctx context.Context, r io.Reader, format CatalogueFormat) ([]domain.ImportOutcome, error)
}

// CatalogueFormat is the encoding of an import file.
type CatalogueFormat string

// Catalogue formats.
const (
	CatalogueYAML CatalogueFormat = "yaml"
	CatalogueJSON CatalogueFormat = "json"
)

// CatalogueFormatFor picks a format from a file name's extension.
func CatalogueFormatFor(path string) (CatalogueFormat, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return CatalogueJSON, nil
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return CatalogueYAML, nil
	default:
		return "", &domain.ValidationError{Reason: "Catalogue must be a .yaml, .yml or .json file"}
	}
}
