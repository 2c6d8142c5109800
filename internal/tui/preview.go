package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zuo-Peng/chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/chat-analyzer/internal/render"
)

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	key     string
	content string
	summary string
	hitLine int
	err     error
}

// loadPreviewCmd returns a tea.Cmd that renders the item's preview async:
// the report of a participant, or the conversation around a search hit.
func loadPreviewCmd(sess *analyze.Session, opts Options, it item, query string, width int) tea.Cmd {
	key := it.key()
	return func() tea.Msg {
		if it.seq >= 0 {
			content, hitLine, err := render.RenderConversation(sess.Frame(), render.Options{
				Hit:     it.seq,
				Context: -1,
				Width:   width,
				Query:   query,
				Title:   opts.Title,
				NoColor: opts.NoColor,
			})
			return previewRenderedMsg{key: key, content: content, summary: it.summary, hitLine: hitLine, err: err}
		}

		r, err := sess.Analyze(it.filter, opts.Report)
		if err != nil {
			return previewRenderedMsg{key: key, hitLine: -1, err: fmt.Errorf("analyze: %w", err)}
		}
		var b strings.Builder
		if err := render.RenderReport(&b, r, render.ReportOptions{NoColor: opts.NoColor}); err != nil {
			return previewRenderedMsg{key: key, hitLine: -1, err: err}
		}
		return previewRenderedMsg{key: key, content: b.String(), summary: render.Summary(r), hitLine: -1}
	}
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	return viewport.New(width, height)
}
