// Package markdown renders user-submitted text (thread prompts, posts) into
// HTML that is safe to inject into templates. Rendering is goldmark; the
// output is then sanitized with bluemonday, so nothing a renderer extension
// might emit can reach the page unchecked.
package markdown

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	return &Renderer{md: md, policy: bluemonday.UGCPolicy()}
}

func (r *Renderer) Render(text string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		// Fall back to the sanitized raw text rather than failing the page.
		return template.HTML(r.policy.Sanitize(text))
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes()))
}
