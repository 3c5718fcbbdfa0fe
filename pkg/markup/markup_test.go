package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	out, err := Markdown("Hello **world**\nnext line")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>world</strong>")
	assert.Contains(t, out, "<br")
}

func TestMarkdownOmitsRawHTML(t *testing.T) {
	out, err := Markdown("<script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		max      int
		expected string
	}{
		{
			name:     "keeps prose and drops other blocks",
			content:  "# Release notes\n\nHello **world** & friends\n\n```\ncode()\n```\n\n- item",
			max:      256,
			expected: "Hello world & friends",
		},
		{
			name:     "short content is returned as is",
			content:  "Short post.",
			max:      256,
			expected: "Short post.",
		},
		{
			name:     "truncates at the last line break in range",
			content:  strings.Repeat("a", 100) + "\n\n" + strings.Repeat("b", 100) + "\n\n" + strings.Repeat("c", 100),
			max:      256,
			expected: strings.Repeat("a", 100) + "\n" + strings.Repeat("b", 100) + "...",
		},
		{
			name:     "hard cut without line breaks",
			content:  strings.Repeat("x", 300),
			max:      256,
			expected: strings.Repeat("x", 253) + "...",
		},
		{
			name:     "counts characters not bytes",
			content:  strings.Repeat("é", 20),
			max:      10,
			expected: strings.Repeat("é", 7) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Summarize(tt.content, tt.max)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
