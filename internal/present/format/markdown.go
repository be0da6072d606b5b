package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/mithrel/kbreader/internal/content"
)

// Header is the screen title shown above the article list.
const Header = "Knowledge Base"

// escapable is every ASCII punctuation character CommonMark lets a
// backslash make literal.
const escapable = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// escapeText keeps CMS text literal when it passes through glamour. Embedded
// newlines become hard line breaks so a following "---" or "===" cannot turn
// the line above into a heading.
func escapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteString("\\\n")
		case r < 0x80 && strings.ContainsRune(escapable, r):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ArticleMarkdown renders one article as a markdown section.
func ArticleMarkdown(v content.View) string {
	var b strings.Builder
	// A heading is a single line.
	title := strings.ReplaceAll(v.Title, "\n", " ")
	fmt.Fprintf(&b, "## %s\n\n", escapeText(title))
	if v.Category != "" {
		fmt.Fprintf(&b, "*%s*\n\n", escapeText(v.Category))
	}
	for _, p := range v.Paragraphs {
		// A trailing break has nothing to break before and would show as "\".
		p = strings.TrimRight(p, "\n")
		if p == "" {
			continue
		}
		b.WriteString(escapeText(p))
		b.WriteString("\n\n")
	}
	return b.String()
}

// RenderMarkdown runs md through glamour with the given style and wrap width.
func RenderMarkdown(md, style string, wrap int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// WritePrettyArticles renders the whole list with glamour.
func WritePrettyArticles(w io.Writer, views []content.View, style string, wrap int) error {
	var b strings.Builder
	b.WriteString("# " + Header + "\n\n")
	if len(views) == 0 {
		b.WriteString("*No articles.*\n")
	}
	for i, v := range views {
		if i > 0 {
			b.WriteString("---\n\n")
		}
		b.WriteString(ArticleMarkdown(v))
	}
	out, err := RenderMarkdown(b.String(), style, wrap)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
