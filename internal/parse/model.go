package parse

import "time"

// Message is one chat line of an export. Fields are filled once by Parse and
// never modified afterwards.
type Message struct {
	Seq       int       // position among kept messages, 0-based
	Line      int       // line of the timestamp prefix in the export, 1-based
	Prefix    string    // raw timestamp prefix as matched, e.g. "1/1/23, 10:00 - "
	Timestamp time.Time // wall clock of the prefix, UTC location
	Sender    string
	Text      string

	Year    int
	Month   time.Month
	Weekday time.Weekday
	Hour    int
	Minute  int
	Date    string // YYYY-MM-DD
}

// WeekdayName returns the English weekday name, e.g. "Monday".
func (m Message) WeekdayName() string {
	return m.Weekday.String()
}

// ISOWeekday returns the weekday with Monday as 0 and Sunday as 6.
func (m Message) ISOWeekday() int {
	return (int(m.Weekday) + 6) % 7
}

// Dropped counts entries Parse discarded.
type Dropped struct {
	SystemNotices int // bodies without a "sender:" part
	BadTimestamps int // prefixes that failed the date/time grammar
}

type ParseResult struct {
	Messages []Message
	Dropped  Dropped
}
