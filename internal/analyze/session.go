// Package analyze computes the statistics and time-series tables of one
// parsed chat export.
//
// Every loaded export is owned by its own Session; sessions share no state,
// so one process can serve any number of them side by side. Queries take a
// Filter, where All() means every sender and BySender restricts the query to
// one participant by exact, case-sensitive name.
package analyze

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Zuo-Peng/chat-analyzer/internal/index"
	"github.com/Zuo-Peng/chat-analyzer/internal/logging"
	"github.com/Zuo-Peng/chat-analyzer/internal/parse"
)

// Filter selects the messages a query runs over. The zero value selects all.
type Filter struct {
	sender *string
}

func All() Filter {
	return Filter{}
}

func BySender(name string) Filter {
	return Filter{sender: &name}
}

// Sender returns the selected sender and whether one is set.
func (f Filter) Sender() (string, bool) {
	if f.sender == nil {
		return "", false
	}
	return *f.sender, true
}

func (f Filter) IsAll() bool {
	return f.sender == nil
}

func (f Filter) String() string {
	if f.sender == nil {
		return "overall"
	}
	return *f.sender
}

func (f Filter) match(m parse.Message) bool {
	return f.sender == nil || m.Sender == *f.sender
}

type Options struct {
	Logger *logging.Logger
	Links  LinkFinder      // nil = relaxed URL matcher
	Emoji  EmojiClassifier // nil = Unicode emoji table
}

// Session holds one export's messages until Close.
type Session struct {
	ID string

	messages []parse.Message
	frame    *index.Frame
	text     extractor
	log      *logging.Logger
}

// Load parses raw export text into a new session.
func Load(raw string, opts Options) (*Session, error) {
	res := parse.ParseExport(raw)
	s, err := NewSession(res.Messages, opts)
	if err != nil {
		return nil, err
	}
	s.log.Debugw("parsed export",
		"messages", len(res.Messages),
		"system_notices", res.Dropped.SystemNotices,
		"bad_timestamps", res.Dropped.BadTimestamps,
	)
	return s, nil
}

// NewSession takes ownership of msgs, which must be in export order.
func NewSession(msgs []parse.Message, opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Links == nil {
		opts.Links = defaultLinkFinder()
	}
	if opts.Emoji == nil {
		opts.Emoji = unicodeEmoji{}
	}

	frame, err := index.OpenFrame(msgs)
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}

	id := uuid.NewString()
	return &Session{
		ID:       id,
		messages: msgs,
		frame:    frame,
		text:     extractor{links: opts.Links, emoji: opts.Emoji},
		log:      opts.Logger.WithField("session", id),
	}, nil
}

func (s *Session) Close() error {
	return s.frame.Close()
}

// Frame exposes the session's message table for search and rendering.
func (s *Session) Frame() *index.Frame {
	return s.frame
}

// Len is the total number of messages, ignoring any filter.
func (s *Session) Len() int {
	return len(s.messages)
}

// Messages returns the messages selected by f, in export order.
func (s *Session) Messages(f Filter) []parse.Message {
	var out []parse.Message
	for _, m := range s.messages {
		if f.match(m) {
			out = append(out, m)
		}
	}
	return out
}

// Message returns the message at position seq.
func (s *Session) Message(seq int) (parse.Message, bool) {
	if seq < 0 || seq >= len(s.messages) {
		return parse.Message{}, false
	}
	return s.messages[seq], true
}

// Senders lists the distinct senders in order of first appearance.
func (s *Session) Senders() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range s.messages {
		if !seen[m.Sender] {
			seen[m.Sender] = true
			out = append(out, m.Sender)
		}
	}
	return out
}
