package parse

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = "1/1/23, 10:00 - Alice: hello world\n" +
	"1/1/23, 10:05 - Bob: <Media omitted>\n" +
	"1/1/23, 10:06 - Alice: check http://x.co 😊"

func TestParse_Sample(t *testing.T) {
	msgs := Parse(sampleExport)
	require.Len(t, msgs, 3)

	assert.Equal(t, "Alice", msgs[0].Sender)
	assert.Equal(t, "hello world", msgs[0].Text)
	assert.Equal(t, "Bob", msgs[1].Sender)
	assert.Equal(t, "<Media omitted>", msgs[1].Text)
	assert.Equal(t, "check http://x.co 😊", msgs[2].Text)

	for i, m := range msgs {
		assert.Equal(t, i, m.Seq)
		assert.Equal(t, i+1, m.Line)
	}
}

func TestParse_DerivedFields(t *testing.T) {
	msgs := Parse("4/1/23, 21:07 - Alice: hi")
	require.Len(t, msgs, 1)

	m := msgs[0]
	assert.Equal(t, time.Date(2023, time.January, 4, 21, 7, 0, 0, time.UTC), m.Timestamp)
	assert.Equal(t, 2023, m.Year)
	assert.Equal(t, time.January, m.Month)
	assert.Equal(t, "Wednesday", m.WeekdayName())
	assert.Equal(t, 2, m.ISOWeekday())
	assert.Equal(t, 21, m.Hour)
	assert.Equal(t, 7, m.Minute)
	assert.Equal(t, "2023-01-04", m.Date)
}

func TestParse_DayFirst(t *testing.T) {
	msgs := Parse("3/2/2024, 08:15 - Alice: day first")
	require.Len(t, msgs, 1)
	assert.Equal(t, time.February, msgs[0].Month)
	assert.Equal(t, 3, msgs[0].Timestamp.Day())
}

func TestParse_MonthFirstFallback(t *testing.T) {
	msgs := Parse("12/31/23, 9:05 - Alice: new year's eve")
	require.Len(t, msgs, 1)
	assert.Equal(t, time.December, msgs[0].Month)
	assert.Equal(t, 31, msgs[0].Timestamp.Day())
}

func TestParse_TwelveHourClock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		hour int
	}{
		{name: "pm", in: "1/1/23, 9:05 PM - A: x", hour: 21},
		{name: "lower am", in: "1/1/23, 9:05 am - A: x", hour: 9},
		{name: "midnight", in: "1/1/23, 12:30 AM - A: x", hour: 0},
		{name: "noon", in: "1/1/23, 12:30 PM - A: x", hour: 12},
		{name: "zero am", in: "1/1/23, 0:30 AM - A: x", hour: 0},
		{name: "zero pm", in: "1/1/23, 0:30 PM - A: x", hour: 12},
		{name: "narrow no-break space", in: "1/1/23, 7:45\u202fPM - A: x", hour: 19},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs := Parse(tt.in)
			require.Len(t, msgs, 1)
			assert.Equal(t, tt.hour, msgs[0].Hour)
		})
	}
}

func TestParse_Seconds(t *testing.T) {
	msgs := Parse("1/1/23, 10:00:45 - A: with seconds")
	require.Len(t, msgs, 1)
	assert.Equal(t, 45, msgs[0].Timestamp.Second())
	assert.Equal(t, "with seconds", msgs[0].Text)
}

func TestParse_MultiLineBody(t *testing.T) {
	raw := "1/1/23, 10:00 - Alice: first line\nsecond line\n\nthird line\n" +
		"1/1/23, 10:01 - Bob: next"
	msgs := Parse(raw)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first line\nsecond line\n\nthird line", msgs[0].Text)
	assert.Equal(t, 5, msgs[1].Line)
}

func TestParse_DropsSystemNotices(t *testing.T) {
	raw := "1/1/23, 09:59 - Messages and calls are end-to-end encrypted.\n" +
		"1/1/23, 10:00 - Alice created group \"Trip\"\n" +
		"1/1/23, 10:01 - Alice: hi"
	res := ParseExport(raw)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, 2, res.Dropped.SystemNotices)
	assert.Equal(t, 0, res.Messages[0].Seq)
	assert.Equal(t, 3, res.Messages[0].Line)
}

func TestParse_DropsBadTimestamps(t *testing.T) {
	raw := "32/13/23, 10:00 - Alice: impossible date\n" +
		"31/2/23, 10:00 - Alice: no such day\n" +
		"1/1/23, 25:00 - Alice: no such hour\n" +
		"1/1/23, 13:00 PM - Alice: bad clock\n" +
		"1/1/123, 10:00 - Alice: three digit year\n" +
		"1/1/23, 10:00 - Alice: fine"

	var res *ParseResult
	require.NotPanics(t, func() { res = ParseExport(raw) })
	require.Len(t, res.Messages, 1)
	assert.Equal(t, "fine", res.Messages[0].Text)
	assert.Equal(t, 5, res.Dropped.BadTimestamps)
}

func TestParse_EmptyAndNoPrefix(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("just some text\nwith: colons but no header"))
}

func TestParse_PreambleDiscarded(t *testing.T) {
	msgs := Parse("garbage: before\n1/1/23, 10:00 - Alice: hi")
	require.Len(t, msgs, 1)
	assert.Equal(t, "Alice", msgs[0].Sender)
}

func TestParse_EmptyBodyKept(t *testing.T) {
	msgs := Parse("1/1/23, 10:00 - Alice:    \n1/1/23, 10:01 - Bob: x")
	require.Len(t, msgs, 2)
	assert.Equal(t, "Alice", msgs[0].Sender)
	assert.Equal(t, "", msgs[0].Text)
}

func TestParse_SplitsAtFirstColon(t *testing.T) {
	msgs := Parse("1/1/23, 10:00 - Alice: meet at 10:30: ok?")
	require.Len(t, msgs, 1)
	assert.Equal(t, "meet at 10:30: ok?", msgs[0].Text)
}

func TestParse_ResplitIsStable(t *testing.T) {
	raw := sampleExport + "\n" +
		"2/1/23, 08:00 - Carol: multi\nline\n" +
		"2/1/23, 08:01 - system notice without sender\n" +
		"45/45/23, 08:02 - Carol: dropped\n" +
		"3/1/23, 23:59 - Bob: late"
	first := Parse(raw)

	var b strings.Builder
	for _, m := range first {
		b.WriteString(m.Prefix)
		b.WriteString(m.Sender)
		b.WriteString(": ")
		b.WriteString(m.Text)
		b.WriteString("\n")
	}
	second := Parse(b.String())

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Sender, second[i].Sender)
		assert.Equal(t, first[i].Text, second[i].Text)
		assert.Equal(t, first[i].Timestamp, second[i].Timestamp)
	}
}

func TestParse_TwelveHourOutOfRange(t *testing.T) {
	res := ParseExport("1/1/23, 13:30 PM - A: x\n1/1/23, 1:30 PM - A: y")
	require.Len(t, res.Messages, 1)
	assert.Equal(t, "y", res.Messages[0].Text)
	assert.Equal(t, 1, res.Dropped.BadTimestamps)
}
