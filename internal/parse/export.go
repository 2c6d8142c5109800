package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// prefixRe matches the "D/M/Y, H:MM [AM|PM] - " header that starts every
// message. It is also the split point between messages, so a body runs until
// the next header even across line breaks.
var prefixRe = regexp.MustCompile(`(\d+)/(\d+)/(\d+),\s(\d+):(\d+)(\W*)(\w*)\s- `)

// Parse splits an export into messages, in export order.
// Entries without a sender or with an unparseable timestamp are skipped.
func Parse(raw string) []Message {
	return ParseExport(raw).Messages
}

// ParseExport is Parse plus counters for what was skipped.
func ParseExport(raw string) *ParseResult {
	result := &ParseResult{}

	locs := prefixRe.FindAllStringSubmatchIndex(raw, -1)
	if len(locs) == 0 {
		return result
	}

	line := 1
	lastPos := 0

	for i, loc := range locs {
		start, end := loc[0], loc[1]
		line += strings.Count(raw[lastPos:start], "\n")
		lastPos = start

		bodyEnd := len(raw)
		if i+1 < len(locs) {
			bodyEnd = locs[i+1][0]
		}
		content := raw[end:bodyEnd]

		// system notices ("X joined", "Messages are end-to-end encrypted") carry no sender
		if !strings.Contains(content, ":") {
			result.Dropped.SystemNotices++
			continue
		}

		group := func(n int) string {
			return raw[loc[2*n]:loc[2*n+1]]
		}
		ts, ok := parseTimestamp(group(1), group(2), group(3), group(4), group(5), group(6), group(7))
		if !ok {
			result.Dropped.BadTimestamps++
			continue
		}

		sender, text, _ := strings.Cut(strings.TrimSpace(content), ":")

		result.Messages = append(result.Messages, Message{
			Seq:       len(result.Messages),
			Line:      line,
			Prefix:    raw[start:end],
			Timestamp: ts,
			Sender:    sender,
			Text:      strings.TrimSpace(text),
			Year:      ts.Year(),
			Month:     ts.Month(),
			Weekday:   ts.Weekday(),
			Hour:      ts.Hour(),
			Minute:    ts.Minute(),
			Date:      ts.Format("2006-01-02"),
		})
	}

	return result
}

// parseTimestamp reads the captured prefix fields day-first. When the month
// field cannot be a month but the day field can, the two are swapped, so
// month-first exports still parse.
func parseTimestamp(dayS, monthS, yearS, hourS, minuteS, sep, marker string) (time.Time, bool) {
	day, err := strconv.Atoi(dayS)
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(monthS)
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(yearS)
	if err != nil {
		return time.Time{}, false
	}
	hour, err := strconv.Atoi(hourS)
	if err != nil {
		return time.Time{}, false
	}
	minute, err := strconv.Atoi(minuteS)
	if err != nil {
		return time.Time{}, false
	}

	if month > 12 && day <= 12 {
		day, month = month, day
	}

	switch len(yearS) {
	case 1, 2:
		// same pivot as time.Parse "06"
		if year < 69 {
			year += 2000
		} else {
			year += 1900
		}
	case 4:
	default:
		return time.Time{}, false
	}

	second := 0
	switch strings.ToUpper(marker) {
	case "":
	case "AM", "PM":
		if hour > 12 {
			return time.Time{}, false
		}
		hour %= 12
		if strings.EqualFold(marker, "PM") {
			hour += 12
		}
	default:
		// "10:00:45 - " puts the seconds in the marker group
		if strings.TrimSpace(sep) != ":" || !isDigits(marker) {
			return time.Time{}, false
		}
		second, err = strconv.Atoi(marker)
		if err != nil || second > 59 {
			return time.Time{}, false
		}
	}

	if month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 {
		return time.Time{}, false
	}

	ts := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	if ts.Day() != day || int(ts.Month()) != month {
		// e.g. 31/2/23
		return time.Time{}, false
	}
	return ts, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
