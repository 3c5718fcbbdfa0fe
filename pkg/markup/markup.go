// Package markup renders post markdown and derives plain-text summaries.
package markup

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

const DefaultSummaryLength = 256

const ellipsis = "..."

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

// Only prose survives into a summary; headings, lists, code and media are
// dropped together with their content.
var summaryPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "blockquote", "strong", "b", "em", "i", "a")
	p.SkipElementsContent(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li",
		"pre", "code",
		"table", "thead", "tbody", "tr", "th", "td",
		"img", "del", "hr",
	)
	return p
}()

var stripPolicy = bluemonday.StrictPolicy()

// Markdown renders content to HTML. Raw HTML in the source is omitted.
func Markdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Summarize returns at most maxLength characters of plain text from the
// markdown content. Longer text is cut back to the last line break that fits
// and marked with an ellipsis.
func Summarize(content string, maxLength int) (string, error) {
	if maxLength <= len(ellipsis) {
		maxLength = DefaultSummaryLength
	}

	rendered, err := Markdown(content)
	if err != nil {
		return "", err
	}

	prose := summaryPolicy.Sanitize(rendered)
	text := html.UnescapeString(stripPolicy.Sanitize(prose))
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) <= maxLength {
		return text, nil
	}

	cut := string(runes[:maxLength-len(ellipsis)])
	if i := strings.LastIndex(cut, "\n"); i > 0 {
		cut = cut[:i]
	}

	return strings.TrimRight(cut, " \t\n") + ellipsis, nil
}
