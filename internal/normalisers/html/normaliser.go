// Package html extracts readable text from HTML pages.
//
// Scripts, styles and other non-content elements are removed. When the
// page marks up its main content (main or article), only that is kept,
// so navigation and footers do not end up in the knowledge base.
package html

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic format normaliser, higher than plaintext
}

// noise lists elements that never carry page text.
const noise = "script, style, noscript, template, svg, iframe, head"

// contentSelectors are tried in order to find the main content.
var contentSelectors = []string{"main", "article", "[role=main]", "#content", ".content"}

// blockElements start a new line in the extracted text.
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"header": true, "footer": true, "nav": true, "aside": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "dl": true, "dt": true, "dd": true,
	"table": true, "tr": true, "blockquote": true, "pre": true,
	"br": true, "hr": true, "form": true, "figure": true, "figcaption": true,
}

// Normalise converts an HTML page to text, one block per line.
func (n *Normaliser) Normalise(_ context.Context, file *domain.SourceFile) (*domain.ExtractedText, error) {
	if file == nil {
		return nil, domain.ErrInvalidInput
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(file.Data))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", domain.ErrUnsupportedFormat)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	doc.Find(noise).Remove()

	root := doc.Find("body")
	for _, sel := range contentSelectors {
		if found := doc.Find(sel).First(); found.Length() > 0 {
			root = found
			break
		}
	}

	var b strings.Builder
	writeText(root, &b)

	return &domain.ExtractedText{
		Title:  strings.Join(strings.Fields(title), " "),
		Text:   joinLines(b.String()),
		Format: "html",
	}, nil
}

// lineBreaks flattens source formatting inside text nodes.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// writeText appends the text under sel, surrounding block elements with
// newlines. Comments are skipped.
func writeText(sel *goquery.Selection, b *strings.Builder) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		name := goquery.NodeName(child)
		switch {
		case name == "#text":
			b.WriteString(lineBreaks.Replace(child.Text()))
		case strings.HasPrefix(name, "#"):
			// comment or doctype
		case blockElements[name]:
			b.WriteString("\n")
			writeText(child, b)
			b.WriteString("\n")
		default:
			writeText(child, b)
		}
	})
}

// joinLines drops blank lines and collapses whitespace within each line.
func joinLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
