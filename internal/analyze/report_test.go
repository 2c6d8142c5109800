package analyze

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	s := newSession(t, sampleExport)

	r, err := s.Analyze(All(), ReportOptions{})
	require.NoError(t, err)
	assert.Equal(t, "", r.Sender)
	assert.Equal(t, 3, r.Stats.Messages)
	require.Len(t, r.ActiveParticipants, 2)
	assert.Equal(t, "Alice", r.ActiveParticipants[0].Sender)
	assert.Equal(t, 66.67, r.ActiveParticipants[0].Percent)
	assert.Equal(t, []Count{{"hello", 1}, {"world", 1}, {"check", 1}}, r.TopWords)
	assert.Equal(t, []Count{{"😊", 1}}, r.TopEmojis)
	assert.Equal(t, 3, r.Timeline.HourWeekday.Total())
}

func TestAnalyze_BySender(t *testing.T) {
	s := newSession(t, sampleExport)

	r, err := s.Analyze(BySender("Bob"), ReportOptions{ZeroFill: true})
	require.NoError(t, err)
	assert.Equal(t, "Bob", r.Sender)
	assert.Equal(t, Stats{Messages: 1, Media: 1}, r.Stats)
	assert.Empty(t, r.TopWords)
	// participants always describe the whole export
	assert.Len(t, r.ActiveParticipants, 2)
	assert.Len(t, r.Timeline.Weekday, 7)
}

func TestAnalyze_UnknownSender(t *testing.T) {
	s := newSession(t, sampleExport)

	r, err := s.Analyze(BySender("Nobody"), ReportOptions{})
	require.NoError(t, err)
	assert.Equal(t, Stats{}, r.Stats)
	assert.Empty(t, r.TopWords)
	assert.Empty(t, r.TopEmojis)
	assert.Empty(t, r.Timeline.YearMonth)
	assert.Equal(t, "", r.WordcloudSource)
}

func TestReport_JSON(t *testing.T) {
	s := newSession(t, "")

	r, err := s.Analyze(All(), ReportOptions{})
	require.NoError(t, err)

	b, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, k := range []string{"stats", "active_participants", "top_words", "top_emojis", "wordcloud_source", "timeline"} {
		assert.Contains(t, m, k)
	}
	assert.NotContains(t, m, "sender")
	// empty tables encode as [] rather than null
	assert.Equal(t, []any{}, m["top_words"])
	assert.Equal(t, []any{}, m["active_participants"])
}
