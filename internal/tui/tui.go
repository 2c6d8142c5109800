package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zuo-Peng/chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/chat-analyzer/internal/search"
)

const debounceDelay = 200 * time.Millisecond

type tuiMode int

const (
	modeParticipants tuiMode = iota
	modeSearch
)

type Options struct {
	Title   string
	Report  analyze.ReportOptions
	Limit   int // search results, 0 = search default
	NoColor bool
}

// message types

type itemsMsg struct {
	mode  tuiMode
	query string
	items []item
	err   error
}

type debounceTickMsg struct {
	mode  tuiMode
	query string
}

// model

type model struct {
	sess        *analyze.Session
	opts        Options
	mode        tuiMode
	query       string
	items       []item
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewKey  string // item key, to avoid duplicate renders
	summary     string // plain-text digest of the shown preview
	width       int
	height      int
	ready       bool
	quitting    bool
	copyText    string
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256
	return ti
}

func initialModel(sess *analyze.Session, opts Options) model {
	return model{
		sess:        sess,
		opts:        opts,
		mode:        modeParticipants,
		filterInput: newInput("Filter participants..."),
		preview:     viewport.New(0, 0),
	}
}

// Run starts the dashboard and blocks until it exits. If the user presses
// Enter, the summary of the selected entry is copied to the clipboard.
func Run(sess *analyze.Session, opts Options) error {
	m := initialModel(sess, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(model)
	if fm.copyText != "" {
		copySummary(fm.copyText)
	}
	return nil
}

// copySummary puts text on the clipboard, or prints it when there is none.
func copySummary(text string) {
	if err := clipboard.WriteAll(text); err != nil {
		fmt.Printf("%s\n", text)
		return
	}
	fmt.Printf("Copied to clipboard:\n%s\n", text)
}

// Init triggers the initial participant load.
func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.doLoad(m.mode, ""))
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = newViewport(m.previewWidth(), m.panelHeight())
		// Re-render preview if we have a selection
		m.previewKey = ""
		cmds = append(cmds, m.loadCurrentPreview())
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			if len(m.items) > 0 && m.cursor < len(m.items) {
				m.copyText = m.items[m.cursor].summary
				if m.copyText == "" {
					m.copyText = m.summary
				}
				m.quitting = true
				return m, tea.Quit
			}

		case key.Matches(msg, keys.Switch):
			if m.mode == modeParticipants {
				m.mode = modeSearch
				m.filterInput = newInput("Search messages...")
			} else {
				m.mode = modeParticipants
				m.filterInput = newInput("Filter participants...")
			}
			m.query = ""
			m.items = nil
			m.cursor = 0
			m.listOffset = 0
			m.previewKey = ""
			m.preview.SetContent("")
			return m, m.doLoad(m.mode, "")

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.preview.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.preview.LineDown(m.panelHeight())
			return m, nil
		}

		// Pass remaining keys to text input
		var tiCmd tea.Cmd
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		newQuery := m.filterInput.Value()
		if newQuery != m.query {
			m.query = newQuery
			cmds = append(cmds, m.scheduleDebouncedLoad(newQuery))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.ready || len(m.items) == 0 {
			return m, nil
		}

		region, itemIdx := m.hitTest(msg.X, msg.Y)

		switch {
		case region == regionList && msg.Button == tea.MouseButtonWheelUp:
			if m.listOffset > 0 {
				m.listOffset--
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonWheelDown:
			visibleItems := m.panelHeight() / linesPerItem
			maxOffset := len(m.items) - visibleItems
			if maxOffset < 0 {
				maxOffset = 0
			}
			if m.listOffset < maxOffset {
				m.listOffset++
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if itemIdx >= 0 && itemIdx < len(m.items) && m.cursor != itemIdx {
				m.cursor = itemIdx
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case region == regionPreview && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
			var vpCmd tea.Cmd
			m.preview, vpCmd = m.preview.Update(msg)
			if vpCmd != nil {
				cmds = append(cmds, vpCmd)
			}
			return m, tea.Batch(cmds...)
		}

		return m, nil

	case debounceTickMsg:
		// Only reload if nothing changed since the tick was scheduled
		if msg.query == m.query && msg.mode == m.mode {
			cmds = append(cmds, m.doLoad(msg.mode, msg.query))
		}
		return m, tea.Batch(cmds...)

	case itemsMsg:
		if msg.query != m.query || msg.mode != m.mode {
			return m, nil
		}
		m.cursor = 0
		m.listOffset = 0
		m.previewKey = ""
		if msg.err != nil {
			m.items = nil
			m.preview.SetContent("Error: " + msg.err.Error())
			return m, nil
		}
		m.items = msg.items
		if len(m.items) > 0 {
			cmds = append(cmds, m.loadCurrentPreview())
		} else {
			m.preview.SetContent("")
		}
		return m, tea.Batch(cmds...)

	case previewRenderedMsg:
		if msg.key == m.previewKey {
			return m, nil
		}
		if len(m.items) > 0 && m.cursor < len(m.items) && m.items[m.cursor].key() != msg.key {
			return m, nil // stale preview
		}
		if msg.err != nil {
			m.preview.SetContent("Preview error: " + msg.err.Error())
		} else {
			m.preview.SetContent(msg.content)
			if msg.hitLine > 0 {
				m.preview.SetYOffset(msg.hitLine)
			} else {
				m.preview.GotoTop()
			}
		}
		m.summary = msg.summary
		m.previewKey = msg.key
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	inputRow := m.filterInput.View()

	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)

	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, m.statusBar())
}

// helper methods

func (m model) listWidth() int {
	if m.width <= 0 {
		return 30
	}
	// 30% for list, minus border padding
	w := m.width*30/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 70
	}
	w := m.width*70/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract input row (1) + status bar (1) + borders (4)
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hitTest maps terminal coordinates to a panel region and list item index.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	pH := m.panelHeight()
	contentYStart := 2 // input row (1) + top border (1)
	contentYEnd := contentYStart + pH - 1

	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}
	relY := y - contentYStart

	lw := m.listWidth()
	listBoxRight := lw + 1 // col 0=border, 1..lw=content, lw+1=border

	if x >= 1 && x <= lw {
		return regionList, m.listOffset + (relY / linesPerItem)
	}
	if x > listBoxRight+1 {
		return regionPreview, -1
	}
	return regionNone, -1
}

func (m model) statusBar() string {
	var parts []string
	if m.mode == modeSearch {
		parts = append(parts, fmt.Sprintf("%d results", len(m.items)))
	} else {
		parts = append(parts, fmt.Sprintf("%d participants", len(m.sess.Senders())))
	}
	parts = append(parts, "tab participants/search")
	parts = append(parts, "click/up/dn navigate")
	parts = append(parts, "scroll/C-u/C-d preview")
	parts = append(parts, "Enter copy summary")
	parts = append(parts, "Esc quit")
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

// doLoad fills the list for mode: matching participants, or search hits.
func (m model) doLoad(mode tuiMode, query string) tea.Cmd {
	sess := m.sess
	limit := m.opts.Limit
	return func() tea.Msg {
		if mode == modeSearch {
			if strings.TrimSpace(query) == "" {
				return itemsMsg{mode: mode, query: query}
			}
			results, err := search.Search(sess.Frame(), search.Options{Query: query, Limit: limit})
			return itemsMsg{mode: mode, query: query, items: searchItems(results), err: err}
		}

		counts, err := sess.Frame().SenderCounts()
		if err != nil {
			return itemsMsg{mode: mode, query: query, err: err}
		}
		byName := make(map[string]int, len(counts))
		for _, c := range counts {
			byName[c.Sender] = c.Count
		}
		return itemsMsg{mode: mode, query: query, items: participantItems(sess.Senders(), byName, sess.Len(), query)}
	}
}

func (m model) scheduleDebouncedLoad(query string) tea.Cmd {
	mode := m.mode
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{mode: mode, query: query}
	})
}

func (m model) loadCurrentPreview() tea.Cmd {
	if len(m.items) == 0 || m.cursor >= len(m.items) {
		return nil
	}
	it := m.items[m.cursor]
	if it.key() == m.previewKey {
		return nil // already showing this preview
	}
	query := ""
	if m.mode == modeSearch {
		query = m.query
	}
	return loadPreviewCmd(m.sess, m.opts, it, query, m.previewWidth())
}
