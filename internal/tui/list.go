package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/chat-analyzer/internal/search"
)

// linesPerItem is the number of terminal lines each entry occupies.
const linesPerItem = 2

// item is one entry of the left panel: a participant (or the overall view)
// in participants mode, a matching message in search mode.
type item struct {
	title   string
	detail  string
	filter  analyze.Filter
	seq     int // message seq of a search hit, -1 for participants
	summary string
}

func (it item) key() string {
	return fmt.Sprintf("%s:%d", it.filter.String(), it.seq)
}

// participantItems lists every sender whose name contains filter,
// case-insensitively. The overall entry stays while filter is a prefix of
// "overall".
func participantItems(senders []string, counts map[string]int, total int, filter string) []item {
	needle := strings.ToLower(strings.TrimSpace(filter))
	var items []item
	if needle == "" || strings.HasPrefix("overall", needle) {
		items = append(items, item{
			title:  "Overall",
			detail: fmt.Sprintf("%d messages", total),
			filter: analyze.All(),
			seq:    -1,
		})
	}
	for _, s := range senders {
		if needle != "" && !strings.Contains(strings.ToLower(s), needle) {
			continue
		}
		items = append(items, item{
			title:  s,
			detail: fmt.Sprintf("%d messages", counts[s]),
			filter: analyze.BySender(s),
			seq:    -1,
		})
	}
	return items
}

func searchItems(results []search.Result) []item {
	items := make([]item, 0, len(results))
	for _, r := range results {
		snippet := strings.NewReplacer(">>>", "", "<<<", "").Replace(r.Snippet)
		items = append(items, item{
			title:   r.Sender + " " + r.Ts,
			detail:  snippet,
			filter:  analyze.BySender(r.Sender),
			seq:     r.Seq,
			summary: fmt.Sprintf("%s %s: %s", r.Ts, r.Sender, snippet),
		})
	}
	return items
}

// renderList renders the left panel with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.items) == 0 {
		text := "No participants"
		if m.mode == modeSearch {
			text = "No results"
		}
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(text)
	}

	var lines []string
	for i, it := range m.items {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatItem(it, width, i == m.cursor)...)
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatItem formats a single entry as two lines:
//
//	line 1: [>] title
//	line 2:    detail (dimmed)
func formatItem(it item, width int, selected bool) []string {
	title := strings.ReplaceAll(it.title, "\n", " ")
	titleMax := width - 2
	if titleMax < 0 {
		titleMax = 0
	}
	if runewidth.StringWidth(title) > titleMax {
		title = runewidth.Truncate(title, titleMax, "")
	}
	if it.seq < 0 && it.filter.IsAll() {
		title = styleOverall.Render(title)
	} else {
		title = styleSender.Render(title)
	}

	line1 := "  " + title
	if selected {
		line1 = styleListSelected.Render("> ") + title
	}

	detail := strings.ReplaceAll(it.detail, "\n", " ")
	detail = strings.ReplaceAll(detail, "\t", " ")
	detailMax := width - 4 // indent
	if detailMax < 0 {
		detailMax = 0
	}
	if runewidth.StringWidth(detail) > detailMax {
		detail = runewidth.Truncate(detail, detailMax, "")
	}
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(detail)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
