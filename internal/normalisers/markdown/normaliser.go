// Package markdown extracts readable text from Markdown files.
package markdown

import (
	"context"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driven"
	"github.com/custodia-labs/siteassist/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown files.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".md", ".markdown", ".mdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Format-specific, above plaintext
}

// Normalise strips Markdown syntax and keeps the prose.
// The title is the front matter title, else the first H1.
func (n *Normaliser) Normalise(_ context.Context, file *domain.SourceFile) (*domain.ExtractedText, error) {
	if file == nil {
		return nil, domain.ErrInvalidInput
	}

	body, title := splitFrontMatter(strings.ReplaceAll(string(file.Data), "\r\n", "\n"))
	if title == "" {
		title = firstHeading(body)
	}

	return &domain.ExtractedText{
		Title:  title,
		Text:   stripMarkdown(body),
		Format: "markdown",
	}, nil
}

// frontMatter is the subset of YAML front matter we read.
type frontMatter struct {
	Title string `yaml:"title"`
}

// splitFrontMatter removes a leading "---" YAML block and returns its title.
// Content without a closed block is returned unchanged.
func splitFrontMatter(content string) (string, string) {
	if !strings.HasPrefix(content, "---\n") {
		return content, ""
	}
	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return content, ""
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return content, ""
	}

	body := rest[end+len("\n---"):]
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}
	return body, strings.TrimSpace(fm.Title)
}

func firstHeading(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}
	return ""
}

var (
	fencedCode   = regexp.MustCompile("(?s)```.*?```")
	inlineCode   = regexp.MustCompile("`([^`\n]+)`")
	images       = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	links        = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	headings     = regexp.MustCompile(`(?m)^[ \t]{0,3}#{1,6}[ \t]+`)
	strongStar   = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)
	strongUnder  = regexp.MustCompile(`\b__([^_\n]+)__\b`)
	emStar       = regexp.MustCompile(`\*([^*\n]+)\*`)
	emUnder      = regexp.MustCompile(`\b_([^_\n]+)_\b`)
	blockquotes  = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`)
	rules        = regexp.MustCompile(`(?m)^[ \t]*([-*_][ \t]*){3,}$`)
	bullets      = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	numbered     = regexp.MustCompile(`(?m)^[ \t]*\d+[.)][ \t]+`)
	tableDivider = regexp.MustCompile(`(?m)^[ \t]*\|?([ \t]*:?-{3,}:?[ \t]*\|?)+[ \t]*$\n?`)
	htmlTags     = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
)

// stripMarkdown removes common Markdown formatting.
// Code samples are dropped; inline code keeps its text.
func stripMarkdown(content string) string {
	content = fencedCode.ReplaceAllString(content, "")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = inlineCode.ReplaceAllString(content, "$1")
	content = rules.ReplaceAllString(content, "")
	content = tableDivider.ReplaceAllString(content, "")
	content = headings.ReplaceAllString(content, "")
	content = blockquotes.ReplaceAllString(content, "")
	content = bullets.ReplaceAllString(content, "")
	content = numbered.ReplaceAllString(content, "")
	content = strongStar.ReplaceAllString(content, "$1")
	content = strongUnder.ReplaceAllString(content, "$1")
	content = emStar.ReplaceAllString(content, "$1")
	content = emUnder.ReplaceAllString(content, "$1")
	content = htmlTags.ReplaceAllString(content, "")
	content = strings.ReplaceAll(content, "|", " ")

	return normalisers.CollapseBlankLines(content)
}
