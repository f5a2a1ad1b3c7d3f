package driven

import (
	"context"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

// Normaliser turns one family of file formats into plain text.
type Normaliser interface {
	// Extensions returns the lower-case file extensions handled, with the
	// leading dot. "*" marks a fallback for unknown extensions.
	Extensions() []string

	// Priority breaks ties when two normalisers claim an extension.
	// Higher wins.
	Priority() int

	// Normalise extracts text from file. Title may be left empty.
	Normalise(ctx context.Context, file *domain.SourceFile) (*domain.ExtractedText, error)
}
