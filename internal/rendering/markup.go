package rendering

import (
	"bytes"
	"context"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	g "maragu.dev/gomponents"
)

// MarkupRenderer converts structured text and Markdown sources. Raw HTML in
// the source is allowed through the converter and then sanitized.
type MarkupRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewMarkupRenderer creates a renderer with GitHub flavoured extensions and
// the user generated content sanitizing policy.
func NewMarkupRenderer() *MarkupRenderer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("div", "span", "pre", "code")

	return &MarkupRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.DefinitionList),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: policy,
	}
}

// Render implements SourceRenderer.
func (r *MarkupRenderer) Render(_ context.Context, source string) (g.Node, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return nil, err
	}
	return g.Raw(string(r.policy.SanitizeBytes(buf.Bytes()))), nil
}
