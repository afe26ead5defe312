package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	got := string(RenderMarkdown("The alerts are **spot-on**"))
	assert.Contains(t, got, "<strong>spot-on</strong>")

	got = string(RenderMarkdown(`"Signalist" <script>alert(1)</script>`))
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "&ldquo;Signalist&rdquo;")
}
