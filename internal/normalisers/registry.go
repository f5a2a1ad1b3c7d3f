package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driven"
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
)

// Fallback is the extension a normaliser claims to handle unknown files.
const Fallback = "*"

// Ensure Registry implements the interface.
var _ driving.TextExtractor = (*Registry)(nil)

// Registry maps file extensions to normalisers.
type Registry struct {
	byExt map[string][]driven.Normaliser
}

// NewRegistry creates a registry holding the given normalisers.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	r := &Registry{byExt: make(map[string][]driven.Normaliser)}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Register adds a normaliser under each of its extensions.
// Candidates for an extension stay ordered by descending priority.
func (r *Registry) Register(n driven.Normaliser) {
	for _, ext := range n.Extensions() {
		ext = strings.ToLower(ext)
		list := append(r.byExt[ext], n)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.byExt[ext] = list
	}
}

// Has returns true if a normaliser handles files with the extension of name.
func (r *Registry) Has(name string) bool {
	return r.lookup(name) != nil
}

// Formats returns every registered extension, fallback excluded.
func (r *Registry) Formats() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		if ext != Fallback {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// Extract runs the highest-priority normaliser for the file's extension.
// A blank title is replaced by one derived from the file name.
func (r *Registry) Extract(ctx context.Context, file *domain.SourceFile) (*domain.ExtractedText, error) {
	if file == nil {
		return nil, domain.ErrInvalidInput
	}

	n := r.lookup(file.Name)
	if n == nil {
		return nil, domain.ErrUnsupportedFormat
	}

	out, err := n.Normalise(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", filepath.Base(file.Name), err)
	}
	if out.Title == "" {
		out.Title = TitleFromName(file.Name)
	}
	return out, nil
}

func (r *Registry) lookup(name string) driven.Normaliser {
	if list := r.byExt[strings.ToLower(filepath.Ext(name))]; len(list) > 0 {
		return list[0]
	}
	if list := r.byExt[Fallback]; len(list) > 0 {
		return list[0]
	}
	return nil
}

// TitleFromName derives a readable title from a file path:
// "docs/about_us-page.html" becomes "about us page".
func TitleFromName(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return strings.TrimSpace(base)
}

// CollapseBlankLines trims each line and keeps at most one empty line
// between paragraphs.
func CollapseBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
