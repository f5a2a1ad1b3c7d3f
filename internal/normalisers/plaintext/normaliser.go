// Package plaintext reads text files as they are.
// It also serves as the fallback for unknown extensions.
package plaintext

import (
	"context"
	"unicode/utf8"

	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driven"
	"github.com/custodia-labs/siteassist/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text files.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".txt", ".text", ".csv", ".json", ".yaml", ".yml", ".xml", normalisers.Fallback}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise returns the file content unchanged apart from line endings.
// Binary content is rejected.
func (n *Normaliser) Normalise(_ context.Context, file *domain.SourceFile) (*domain.ExtractedText, error) {
	if file == nil {
		return nil, domain.ErrInvalidInput
	}
	if !utf8.Valid(file.Data) {
		return nil, domain.ErrUnsupportedFormat
	}

	return &domain.ExtractedText{
		Text:   normalisers.CollapseBlankLines(string(file.Data)),
		Format: "text",
	}, nil
}
