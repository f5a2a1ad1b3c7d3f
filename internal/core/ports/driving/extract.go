package driving

import (
	"context"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

// TextExtractor reads local files into text ready for submission.
type TextExtractor interface {
	// Extract picks a normaliser by file extension and runs it.
	// Returns domain.ErrUnsupportedFormat when nothing handles the file.
	Extract(ctx context.Context, file *domain.SourceFile) (*domain.ExtractedText, error)

	// Formats lists the registered extensions in sorted order.
	Formats() []string
}
