package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chat-analyzer/internal/index"
	"github.com/Zuo-Peng/chat-analyzer/internal/parse"
)

func openFrame(t *testing.T, raw string) *index.Frame {
	t.Helper()
	f, err := index.OpenFrame(parse.Parse(raw))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWrapLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  []string
	}{
		{"no wrap", "hello world", 0, []string{"hello world"}},
		{"fits", "hello", 10, []string{"hello"}},
		{"split", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"wide runes", "日本語です", 4, []string{"日本", "語で", "す"}},
		{"ansi not counted", "\033[1mabcd\033[0m", 4, []string{"\033[1mabcd\033[0m"}},
		{"empty", "", 5, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapLine(tt.line, tt.width))
		})
	}
}

func TestHighlightKeywords(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  string
	}{
		{"case insensitive", "Pizza and pizza", "pizza", "[Pizza] and [pizza]"},
		{"operators skipped", "cats and dogs", "cats AND dogs", "[cats] and [dogs]"},
		{"quotes trimmed", "say hello", `"hello"`, "say [hello]"},
		{"empty query", "text", "", "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, highlightKeywords(tt.text, tt.query, "[", "]"))
		})
	}

	// colour off means no markers at all
	assert.Equal(t, "pizza", highlightKeywords("pizza", "pizza", "", ""))
}

func TestIndentLines(t *testing.T) {
	assert.Equal(t, "  a\n  b", indentLines("a\nb", "  "))
}

func TestRenderConversation(t *testing.T) {
	var lines []string
	for i := 0; i < 9; i++ {
		lines = append(lines, "1/1/23, 10:0"+string(rune('0'+i))+" - Alice: message "+string(rune('a'+i)))
	}
	f := openFrame(t, strings.Join(lines, "\n"))

	out, hit, err := RenderConversation(f, Options{Hit: 4, Context: 2, NoColor: true, Query: "message"})
	require.NoError(t, err)

	assert.Contains(t, out, "--- conversation [9 messages] ---")
	assert.Contains(t, out, "... (2 messages before) ...")
	assert.Contains(t, out, "... (2 messages after) ...")
	assert.Contains(t, out, "message c")
	assert.NotContains(t, out, "message b")
	assert.NotContains(t, out, "\033[")

	outLines := strings.Split(out, "\n")
	require.Greater(t, hit, 0)
	assert.Equal(t, ">> Alice > 2023-01-01T10:04:00 <<", outLines[hit])
}

func TestRenderConversation_All(t *testing.T) {
	f := openFrame(t, "1/1/23, 10:00 - A: one\n1/1/23, 10:01 - B: two")

	out, hit, err := RenderConversation(f, Options{Hit: -1, Context: -1, Title: "chat.txt"})
	require.NoError(t, err)
	assert.Equal(t, -1, hit)
	assert.Contains(t, out, "chat.txt")
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "two")
	assert.NotContains(t, out, "messages before")
}

func TestRenderConversation_Empty(t *testing.T) {
	f := openFrame(t, "")

	out, hit, err := RenderConversation(f, Options{Hit: 0})
	require.NoError(t, err)
	assert.Equal(t, "(empty export)", out)
	assert.Equal(t, -1, hit)
}
