package analyze

import (
	"sort"
	"strings"
)

const DefaultTopN = 10

type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// WordFrequency returns the n most common words, lower-cased and without
// English stop-words. Equal counts keep first-seen order. n <= 0 means 10.
func WordFrequency(t *Tokens, n int) []Count {
	if t == nil {
		return nil
	}
	words := make([]string, 0, len(t.Words))
	for _, w := range t.Words {
		lw := strings.ToLower(w)
		if isStopWord(lw) {
			continue
		}
		words = append(words, lw)
	}
	return mostCommon(words, n)
}

// EmojiFrequency returns the n most used emoji, same ordering as WordFrequency.
func EmojiFrequency(t *Tokens, n int) []Count {
	if t == nil {
		return nil
	}
	return mostCommon(t.Emojis, n)
}

func mostCommon(items []string, n int) []Count {
	if n <= 0 {
		n = DefaultTopN
	}

	pos := make(map[string]int)
	var counts []Count
	for _, it := range items {
		if i, ok := pos[it]; ok {
			counts[i].Count++
			continue
		}
		pos[it] = len(counts)
		counts = append(counts, Count{Label: it, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
