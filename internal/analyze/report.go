package analyze

import "fmt"

// Report is every table for one (export, filter) pair.
type Report struct {
	Sender             string   `json:"sender,omitempty"`
	Stats              Stats    `json:"stats"`
	ActiveParticipants []Share  `json:"active_participants"`
	TopWords           []Count  `json:"top_words"`
	TopEmojis          []Count  `json:"top_emojis"`
	WordcloudSource    string   `json:"wordcloud_source"`
	Timeline           Timeline `json:"timeline"`
}

type ReportOptions struct {
	TopWords        int
	TopEmojis       int
	TopParticipants int
	ZeroFill        bool
}

// Analyze builds the full report for f.
func (s *Session) Analyze(f Filter, opts ReportOptions) (*Report, error) {
	stats, tokens := s.FetchStats(f)

	active, err := s.ActiveParticipants(opts.TopParticipants)
	if err != nil {
		return nil, fmt.Errorf("active participants: %w", err)
	}
	if active == nil {
		active = []Share{}
	}

	tl, err := s.Timeline(f, TimelineOptions{ZeroFill: opts.ZeroFill})
	if err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}

	sender, _ := f.Sender()
	r := &Report{
		Sender:             sender,
		Stats:              stats,
		ActiveParticipants: active,
		TopWords:           nonNil(WordFrequency(tokens, opts.TopWords)),
		TopEmojis:          nonNil(EmojiFrequency(tokens, opts.TopEmojis)),
		WordcloudSource:    s.WordcloudSource(f),
		Timeline:           *tl,
	}

	s.log.Debugw("report built",
		"filter", f.String(),
		"messages", stats.Messages,
		"words", stats.Words,
	)
	return r, nil
}

func nonNil(c []Count) []Count {
	if c == nil {
		return []Count{}
	}
	return c
}
