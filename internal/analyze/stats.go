package analyze

import "strings"

// Sentinel bodies the exporter writes in place of non-text events.
const (
	MediaOmitted   = "<Media omitted>"
	MessageDeleted = "This message was deleted"
)

// Stats are the headline counters for one filter.
type Stats struct {
	Messages int `json:"messages"`
	Words    int `json:"words"`
	Media    int `json:"media"`
	Links    int `json:"links"`
	Deleted  int `json:"deleted"`
	Emojis   int `json:"emojis"`
}

// Tokens is what FetchStats extracted from the ordinary messages of a filter.
// Pass it to WordFrequency and EmojiFrequency.
type Tokens struct {
	Words  []string `json:"words"`
	Links  []string `json:"links"`
	Emojis []string `json:"emojis"`
}

// Kind classifies a message body.
type Kind int

const (
	KindText Kind = iota
	KindMedia
	KindDeleted
)

func Classify(text string) Kind {
	switch text {
	case MediaOmitted:
		return KindMedia
	case MessageDeleted:
		return KindDeleted
	default:
		return KindText
	}
}

// FetchStats counts messages, words, media, links, deleted messages and emoji
// for f. Media and deleted messages only count toward their own totals.
// Links are cut out of the word count, and emoji are removed before either
// is looked for.
func (s *Session) FetchStats(f Filter) (Stats, *Tokens) {
	var st Stats
	tokens := &Tokens{}

	for _, m := range s.messages {
		if !f.match(m) {
			continue
		}
		st.Messages++

		switch Classify(m.Text) {
		case KindMedia:
			st.Media++
		case KindDeleted:
			st.Deleted++
		default:
			s.text.extract(m.Text, tokens)
		}
	}

	st.Words = len(tokens.Words)
	st.Links = len(tokens.Links)
	st.Emojis = len(tokens.Emojis)
	return st, tokens
}

// WordcloudSource joins every body selected by f except media placeholders.
func (s *Session) WordcloudSource(f Filter) string {
	var parts []string
	for _, m := range s.messages {
		if !f.match(m) || m.Text == MediaOmitted {
			continue
		}
		parts = append(parts, m.Text)
	}
	return strings.Join(parts, " ")
}
