package analyze

import (
	"fmt"
	"strconv"
	"time"
)

// isoWeekdays is the display order of weekday tables, Monday first.
var isoWeekdays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Heatmap is message count by weekday (rows) and hour of day (columns).
type Heatmap struct {
	Columns []string     `json:"columns"`
	Rows    []HeatmapRow `json:"rows"`
}

type HeatmapRow struct {
	Weekday string `json:"weekday"`
	Counts  []int  `json:"counts"` // one per column
}

func (h Heatmap) Total() int {
	n := 0
	for _, r := range h.Rows {
		for _, c := range r.Counts {
			n += c
		}
	}
	return n
}

type Timeline struct {
	YearMonth   []Bucket `json:"year_month"`
	Daily       []Bucket `json:"daily"`
	Weekday     []Bucket `json:"weekday"`
	Month       []Bucket `json:"month"`
	HourWeekday Heatmap  `json:"hour_weekday"`
}

type TimelineOptions struct {
	// ZeroFill lists every weekday and month, with 0 where nothing was sent.
	// Off, only weekdays and months with messages appear, still in calendar order.
	ZeroFill bool
}

// HourLabels returns the 24 heatmap column labels, "0-1" through "23-00".
func HourLabels() []string {
	labels := make([]string, 24)
	for h := 0; h < 23; h++ {
		labels[h] = strconv.Itoa(h) + "-" + strconv.Itoa(h+1)
	}
	labels[23] = "23-00"
	return labels
}

// Timeline buckets the messages selected by f by time.
func (s *Session) Timeline(f Filter, opts TimelineOptions) (*Timeline, error) {
	sender := f.sender
	tl := &Timeline{
		YearMonth: []Bucket{},
		Daily:     []Bucket{},
		Weekday:   []Bucket{},
		Month:     []Bucket{},
	}

	ym, err := s.frame.CountByYearMonth(sender)
	if err != nil {
		return nil, err
	}
	for _, c := range ym {
		tl.YearMonth = append(tl.YearMonth, Bucket{
			Label: fmt.Sprintf("%s-%d", time.Month(c.Month), c.Year),
			Count: c.Count,
		})
	}

	days, err := s.frame.CountByDay(sender)
	if err != nil {
		return nil, err
	}
	for _, c := range days {
		tl.Daily = append(tl.Daily, Bucket{Label: c.Day, Count: c.Count})
	}

	weekdays, err := s.frame.CountByWeekday(sender)
	if err != nil {
		return nil, err
	}
	var perWeekday [7]int
	var seenWeekday [7]bool
	for _, c := range weekdays {
		perWeekday[c.Key] = c.Count
		seenWeekday[c.Key] = true
	}
	for d := 0; d < 7; d++ {
		if seenWeekday[d] || opts.ZeroFill {
			tl.Weekday = append(tl.Weekday, Bucket{Label: isoWeekdays[d], Count: perWeekday[d]})
		}
	}

	months, err := s.frame.CountByMonth(sender)
	if err != nil {
		return nil, err
	}
	var perMonth [13]int
	var seenMonth [13]bool
	for _, c := range months {
		perMonth[c.Key] = c.Count
		seenMonth[c.Key] = true
	}
	for m := 1; m <= 12; m++ {
		if seenMonth[m] || opts.ZeroFill {
			tl.Month = append(tl.Month, Bucket{Label: time.Month(m).String(), Count: perMonth[m]})
		}
	}

	cells, err := s.frame.CountByWeekdayHour(sender)
	if err != nil {
		return nil, err
	}
	var grid [7][24]int
	for _, c := range cells {
		grid[c.Weekday][c.Hour] = c.Count
	}
	tl.HourWeekday = Heatmap{Columns: HourLabels(), Rows: []HeatmapRow{}}
	for d := 0; d < 7; d++ {
		if !seenWeekday[d] && !opts.ZeroFill {
			continue
		}
		tl.HourWeekday.Rows = append(tl.HourWeekday.Rows, HeatmapRow{
			Weekday: isoWeekdays[d],
			Counts:  append([]int(nil), grid[d][:]...),
		})
	}

	return tl, nil
}
