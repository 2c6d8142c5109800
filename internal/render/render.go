package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/chat-analyzer/internal/index"
)

const (
	colorReset   = "\033[0m"
	colorDim     = "\033[2m"
	colorBold    = "\033[1m"
	colorHit     = "\033[43m"   // yellow background
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
	colorBar     = "\033[36m"
)

// senderColors cycle through the senders of a conversation window.
var senderColors = []string{
	"\033[1;34m", // bold blue
	"\033[1;32m", // bold green
	"\033[1;35m",
	"\033[1;33m",
	"\033[1;36m",
}

// palette is the set of escape codes in use; all empty when colour is off.
type palette struct {
	reset, dim, bold, hit, keyword, bar string
	senders                             []string
}

func newPalette(color bool) palette {
	if !color {
		return palette{senders: []string{""}}
	}
	return palette{
		reset:   colorReset,
		dim:     colorDim,
		bold:    colorBold,
		hit:     colorHit,
		keyword: colorBoldRed,
		bar:     colorBar,
		senders: senderColors,
	}
}

type Options struct {
	Hit     int    // seq of the message to mark, -1 for none
	Context int    // messages before/after hit to show
	Width   int    // wrap width (0 = no wrap)
	Query   string // search query for keyword highlighting
	Title   string
	NoColor bool
}

// fts5Operators are FTS5 operators that should not be highlighted as keywords.
var fts5Operators = map[string]bool{
	"AND": true, "OR": true, "NOT": true, "NEAR": true,
	"and": true, "or": true, "not": true, "near": true,
}

// highlightKeywords wraps case-insensitive matches of query terms in on/off.
func highlightKeywords(text, query, on, off string) string {
	if query == "" || on == "" {
		return text
	}
	var filtered []string
	for _, t := range strings.Fields(query) {
		t = strings.Trim(t, `"*()`)
		if t != "" && !fts5Operators[t] {
			filtered = append(filtered, t)
		}
	}
	for _, term := range filtered {
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			rest := strings.ToLower(text[i:])
			// lowering may change byte lengths; give up on such text
			if len(rest) != len(text)-i {
				break
			}
			idx := strings.Index(rest, lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			orig := text[pos : pos+len(term)]
			replacement := on + orig + off
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// RenderConversation renders the messages around opts.Hit and returns the
// content, the 0-based line number of the hit header (-1 if no hit), and any error.
func RenderConversation(frame *index.Frame, opts Options) (string, int, error) {
	if opts.Context == 0 {
		opts.Context = 10
	}
	if opts.Context < 0 {
		opts.Context = 1000000 // no limit
	}
	p := newPalette(!opts.NoColor)

	msgs, hitIdx, startPos, totalCount, err := frame.GetMessagesWindow(opts.Hit, opts.Context)
	if err != nil {
		return "", -1, fmt.Errorf("get messages: %w", err)
	}

	if totalCount == 0 {
		return "(empty export)", -1, nil
	}

	skipAfter := totalCount - startPos - len(msgs)

	var b strings.Builder
	hitLine := -1
	lineCount := 0
	separator := p.dim + strings.Repeat("-", 50) + p.reset
	wrapW := opts.Width

	// helper to track line count; wraps long lines if Width is set
	writeLine := func(s string) {
		for _, wl := range wrapLine(s, wrapW) {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	title := opts.Title
	if title == "" {
		title = "conversation"
	}
	writeLine(fmt.Sprintf("%s--- %s [%d messages] ---%s", p.dim, title, totalCount, p.reset))

	if startPos > 0 {
		writeLine(fmt.Sprintf("%s... (%d messages before) ...%s", p.dim, startPos, p.reset))
	}

	colors := make(map[string]string)
	for i, m := range msgs {
		isHit := i == hitIdx

		if i > 0 {
			writeLine(separator)
		}
		if isHit {
			hitLine = lineCount
		}

		c, ok := colors[m.Sender]
		if !ok {
			c = p.senders[len(colors)%len(p.senders)]
			colors[m.Sender] = c
		}

		if isHit {
			writeLine(fmt.Sprintf("%s>> %s > %s <<%s", p.hit, m.Sender, m.Ts, p.reset))
		} else {
			writeLine(fmt.Sprintf("%s%s >%s %s%s%s", c, m.Sender, p.reset, p.dim, m.Ts, p.reset))
		}

		text := highlightKeywords(m.Text, opts.Query, p.keyword, p.reset)
		text = indentLines(text, "  ")
		for _, tl := range strings.Split(text, "\n") {
			writeLine(tl)
		}
		writeLine("") // blank line after message
	}

	if skipAfter > 0 {
		writeLine(fmt.Sprintf("%s... (%d messages after) ...%s", p.dim, skipAfter, p.reset))
	}

	return b.String(), hitLine, nil
}
