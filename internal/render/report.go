package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/chat-analyzer/internal/analyze"
)

const (
	labelWidth = 22
	barWidth   = 30
)

// heat shades a heatmap cell from empty to the busiest hour.
var heat = []string{" ", "░", "▒", "▓", "█"}

type ReportOptions struct {
	NoColor bool
	// Sections limits output to the named sections; empty renders all.
	// Names: stats, users, words, emoji, timeline.
	Sections []string
}

func (o ReportOptions) want(section string) bool {
	if len(o.Sections) == 0 {
		return true
	}
	for _, s := range o.Sections {
		if s == section {
			return true
		}
	}
	return false
}

// RenderReport writes r as aligned text tables.
func RenderReport(w io.Writer, r *analyze.Report, opts ReportOptions) error {
	p := newPalette(!opts.NoColor)
	var b strings.Builder

	title := "Overall"
	if r.Sender != "" {
		title = r.Sender
	}
	fmt.Fprintf(&b, "%s== %s ==%s\n", p.bold, title, p.reset)

	if opts.want("stats") {
		section(&b, p, "Stats")
		st := r.Stats
		for _, row := range []struct {
			label string
			n     int
		}{
			{"Messages", st.Messages},
			{"Words", st.Words},
			{"Media shared", st.Media},
			{"Links shared", st.Links},
			{"Messages deleted", st.Deleted},
			{"Emojis", st.Emojis},
		} {
			fmt.Fprintf(&b, "  %s %12s\n", pad(row.label, labelWidth), humanize.Comma(int64(row.n)))
		}
	}

	if opts.want("users") {
		section(&b, p, "Most active participants")
		if len(r.ActiveParticipants) == 0 {
			b.WriteString("  (none)\n")
		}
		max := 0
		for _, s := range r.ActiveParticipants {
			if s.Messages > max {
				max = s.Messages
			}
		}
		for _, s := range r.ActiveParticipants {
			fmt.Fprintf(&b, "  %s %8s %6.2f%%  %s\n",
				pad(s.Sender, labelWidth), humanize.Comma(int64(s.Messages)), s.Percent, bar(p, s.Messages, max))
		}
	}

	if opts.want("words") {
		section(&b, p, "Most common words")
		counts(&b, p, r.TopWords)
	}

	if opts.want("emoji") {
		section(&b, p, "Most common emojis")
		counts(&b, p, r.TopEmojis)
	}

	if opts.want("timeline") {
		tl := r.Timeline
		section(&b, p, "Monthly timeline")
		buckets(&b, p, tl.YearMonth)

		section(&b, p, "Daily timeline")
		daily(&b, tl.Daily)

		section(&b, p, "Most busy days")
		buckets(&b, p, tl.Weekday)

		section(&b, p, "Most busy months")
		buckets(&b, p, tl.Month)

		section(&b, p, "Weekly activity")
		heatmap(&b, tl.HourWeekday)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Summary is a one-paragraph plain-text digest of r.
func Summary(r *analyze.Report) string {
	who := "Overall"
	if r.Sender != "" {
		who = r.Sender
	}
	st := r.Stats
	s := fmt.Sprintf("%s: %s messages, %s words, %s media, %s links, %s deleted, %s emojis",
		who,
		humanize.Comma(int64(st.Messages)),
		humanize.Comma(int64(st.Words)),
		humanize.Comma(int64(st.Media)),
		humanize.Comma(int64(st.Links)),
		humanize.Comma(int64(st.Deleted)),
		humanize.Comma(int64(st.Emojis)),
	)
	if len(r.TopWords) > 0 {
		var words []string
		for _, c := range r.TopWords {
			words = append(words, c.Label)
		}
		s += "\ntop words: " + strings.Join(words, ", ")
	}
	if len(r.TopEmojis) > 0 {
		var emojis []string
		for _, c := range r.TopEmojis {
			emojis = append(emojis, c.Label)
		}
		s += "\ntop emojis: " + strings.Join(emojis, " ")
	}
	return s
}

func section(b *strings.Builder, p palette, name string) {
	fmt.Fprintf(b, "\n%s%s%s\n", p.bold, name, p.reset)
}

func counts(b *strings.Builder, p palette, cs []analyze.Count) {
	if len(cs) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	max := cs[0].Count
	for _, c := range cs {
		fmt.Fprintf(b, "  %s %8s  %s\n", pad(c.Label, labelWidth), humanize.Comma(int64(c.Count)), bar(p, c.Count, max))
	}
}

func buckets(b *strings.Builder, p palette, bs []analyze.Bucket) {
	if len(bs) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	max := 0
	for _, x := range bs {
		if x.Count > max {
			max = x.Count
		}
	}
	for _, x := range bs {
		fmt.Fprintf(b, "  %s %8s  %s\n", pad(x.Label, labelWidth), humanize.Comma(int64(x.Count)), bar(p, x.Count, max))
	}
}

// daily is too long to chart line by line; show its span and peak.
func daily(b *strings.Builder, bs []analyze.Bucket) {
	if len(bs) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	peak := bs[0]
	for _, x := range bs[1:] {
		if x.Count > peak.Count {
			peak = x
		}
	}
	fmt.Fprintf(b, "  %s to %s, %s active days\n", bs[0].Label, bs[len(bs)-1].Label, humanize.Comma(int64(len(bs))))
	fmt.Fprintf(b, "  busiest day %s with %s messages\n", peak.Label, humanize.Comma(int64(peak.Count)))
}

func heatmap(b *strings.Builder, h analyze.Heatmap) {
	if len(h.Rows) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	max := 0
	for _, r := range h.Rows {
		for _, c := range r.Counts {
			if c > max {
				max = c
			}
		}
	}

	b.WriteString("  " + pad("", 10))
	for hour := range h.Columns {
		if hour%3 == 0 {
			fmt.Fprintf(b, "%-3d", hour)
		}
	}
	b.WriteString("\n")

	for _, r := range h.Rows {
		b.WriteString("  " + pad(r.Weekday, 10))
		for _, c := range r.Counts {
			b.WriteString(shade(c, max))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "  %s peak %s messages per hour\n", pad("", 10), humanize.Comma(int64(max)))
}

func shade(n, max int) string {
	if n == 0 || max == 0 {
		return heat[0]
	}
	i := 1 + (n*(len(heat)-2))/max
	if i >= len(heat) {
		i = len(heat) - 1
	}
	return heat[i]
}

func bar(p palette, n, max int) string {
	if max <= 0 || n <= 0 {
		return ""
	}
	w := n * barWidth / max
	if w == 0 {
		w = 1
	}
	return p.bar + strings.Repeat("█", w) + p.reset
}

// pad fits s into exactly width terminal columns.
func pad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}
