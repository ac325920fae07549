package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	html := RenderMarkdown("# Title\n\nSome **bold** text")
	assert.Contains(t, html, "Title")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	html := RenderMarkdown(`hello <script>alert("x")</script>`)
	assert.Contains(t, html, "hello")
	assert.NotContains(t, html, "<script>")
}
