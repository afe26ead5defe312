package server

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Smart quotes and dashes suit the testimonial. Raw HTML in the source is
// dropped by the default renderer.
var testimonialMarkdown = goldmark.New(goldmark.WithExtensions(extension.Typographer))

// RenderMarkdown converts testimonial markdown to HTML. On a conversion
// error the text is shown escaped.
func RenderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := testimonialMarkdown.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}
