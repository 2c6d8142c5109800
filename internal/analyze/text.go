package analyze

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/forPelevin/gomoji"
	"mvdan.cc/xurls/v2"
)

// LinkFinder locates URLs in text. *regexp.Regexp satisfies it.
type LinkFinder interface {
	FindAllStringIndex(s string, n int) [][]int
}

// EmojiClassifier reports whether a single code point is an emoji.
type EmojiClassifier interface {
	IsEmoji(r rune) bool
}

type EmojiFunc func(r rune) bool

func (f EmojiFunc) IsEmoji(r rune) bool { return f(r) }

var defaultLinkFinder = sync.OnceValue(func() LinkFinder {
	return xurls.Relaxed()
})

type unicodeEmoji struct{}

func (unicodeEmoji) IsEmoji(r rune) bool {
	// digits, '#' and '*' are emoji only inside keycap sequences
	if r < utf8.RuneSelf {
		return false
	}
	// gomoji lists skin tones only inside sequences; alone they are
	// still emoji code points
	if isSkinTone(r) {
		return true
	}
	return gomoji.ContainsEmoji(string(r))
}

func isSkinTone(r rune) bool {
	return r >= 0x1F3FB && r <= 0x1F3FF
}

// extractor splits a message body into words, links and emoji in one pass.
type extractor struct {
	links LinkFinder
	emoji EmojiClassifier
}

func (x extractor) extract(text string, t *Tokens) {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if x.emoji.IsEmoji(r) {
			t.Emojis = append(t.Emojis, string(r))
			continue
		}
		// leftovers of emoji sequences once the emoji are gone
		if r == '\uFE0F' || r == '\u200D' {
			continue
		}
		b.WriteRune(r)
	}
	cleaned := b.String()

	spans := x.links.FindAllStringIndex(cleaned, -1)
	for _, sp := range spans {
		t.Links = append(t.Links, cleaned[sp[0]:sp[1]])
	}

	for _, tok := range fieldSpans(cleaned) {
		if overlapsAny(tok, spans) {
			continue
		}
		t.Words = append(t.Words, cleaned[tok[0]:tok[1]])
	}
}

// fieldSpans is strings.Fields returning byte offsets instead of substrings.
func fieldSpans(s string) [][2]int {
	var spans [][2]int
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, [2]int{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, [2]int{start, len(s)})
	}
	return spans
}

func overlapsAny(tok [2]int, spans [][]int) bool {
	for _, sp := range spans {
		if tok[0] < sp[1] && sp[0] < tok[1] {
			return true
		}
	}
	return false
}
