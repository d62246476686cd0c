package formatter

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// LetterDoc is a letter with its correspondents resolved to names.
type LetterDoc struct {
	Subject  string
	From     string
	To       string
	SentOn   string
	Body     string // markdown
	Archived bool
}

// Markdown renders the letter as a markdown document with a header block.
func (d LetterDoc) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Subject)
	fmt.Fprintf(&b, "**From:** %s  \n", d.From)
	fmt.Fprintf(&b, "**To:** %s  \n", d.To)
	if d.SentOn != "" {
		fmt.Fprintf(&b, "**Date:** %s  \n", d.SentOn)
	}
	if d.Archived {
		b.WriteString("**Archived**  \n")
	}
	b.WriteString("\n")
	b.WriteString(strings.TrimSpace(d.Body))
	b.WriteString("\n")
	return b.String()
}

// HTML renders the letter as a standalone HTML page. Raw HTML in the body is
// dropped.
func (d LetterDoc) HTML() string {
	extensions := parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	doc := parser.NewWithExtensions(extensions).Parse([]byte(d.Markdown()))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML | html.CompletePage,
		Title: d.Subject,
	})
	return string(markdown.Render(doc, renderer))
}
