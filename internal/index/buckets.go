package index

import (
	"database/sql"
	"fmt"
)

type SenderCount struct {
	Sender string
	Count  int
}

// SenderCounts ranks every sender by message count, most active first.
// Equal counts keep the order in which the senders first appear.
func (f *Frame) SenderCounts() ([]SenderCount, error) {
	rows, err := f.db.Query(`
		SELECT sender, COUNT(*) AS n, MIN(seq) AS first
		FROM messages
		GROUP BY sender
		ORDER BY n DESC, first ASC`)
	if err != nil {
		return nil, fmt.Errorf("sender counts: %w", err)
	}
	defer rows.Close()

	var out []SenderCount
	for rows.Next() {
		var c SenderCount
		var first int
		if err := rows.Scan(&c.Sender, &c.Count, &first); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Senders lists distinct senders in order of first appearance.
func (f *Frame) Senders() ([]string, error) {
	rows, err := f.db.Query(`SELECT sender FROM messages GROUP BY sender ORDER BY MIN(seq)`)
	if err != nil {
		return nil, fmt.Errorf("senders: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type YearMonthCount struct {
	Year  int
	Month int
	Count int
}

func (f *Frame) CountByYearMonth(sender *string) ([]YearMonthCount, error) {
	where, args := senderWhere(sender)
	rows, err := f.db.Query(fmt.Sprintf(`
		SELECT year, month, COUNT(*)
		FROM messages %s
		GROUP BY year, month
		ORDER BY year, month`, where), args...)
	if err != nil {
		return nil, fmt.Errorf("count by year-month: %w", err)
	}
	defer rows.Close()

	var out []YearMonthCount
	for rows.Next() {
		var c YearMonthCount
		if err := rows.Scan(&c.Year, &c.Month, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type DayCount struct {
	Day   string // YYYY-MM-DD
	Count int
}

func (f *Frame) CountByDay(sender *string) ([]DayCount, error) {
	where, args := senderWhere(sender)
	rows, err := f.db.Query(fmt.Sprintf(`
		SELECT day, COUNT(*)
		FROM messages %s
		GROUP BY day
		ORDER BY day`, where), args...)
	if err != nil {
		return nil, fmt.Errorf("count by day: %w", err)
	}
	defer rows.Close()

	var out []DayCount
	for rows.Next() {
		var c DayCount
		if err := rows.Scan(&c.Day, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type IntCount struct {
	Key   int
	Count int
}

// CountByWeekday groups by weekday, 0=Monday, ascending.
func (f *Frame) CountByWeekday(sender *string) ([]IntCount, error) {
	return f.countByColumn("weekday", sender)
}

// CountByMonth groups by calendar month 1-12 regardless of year, ascending.
func (f *Frame) CountByMonth(sender *string) ([]IntCount, error) {
	return f.countByColumn("month", sender)
}

func (f *Frame) countByColumn(col string, sender *string) ([]IntCount, error) {
	where, args := senderWhere(sender)
	rows, err := f.db.Query(fmt.Sprintf(`
		SELECT %[1]s, COUNT(*)
		FROM messages %[2]s
		GROUP BY %[1]s
		ORDER BY %[1]s`, col, where), args...)
	if err != nil {
		return nil, fmt.Errorf("count by %s: %w", col, err)
	}
	defer rows.Close()
	return scanIntCounts(rows)
}

func scanIntCounts(rows *sql.Rows) ([]IntCount, error) {
	var out []IntCount
	for rows.Next() {
		var c IntCount
		if err := rows.Scan(&c.Key, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type Cell struct {
	Weekday int // 0=Monday
	Hour    int
	Count   int
}

func (f *Frame) CountByWeekdayHour(sender *string) ([]Cell, error) {
	where, args := senderWhere(sender)
	rows, err := f.db.Query(fmt.Sprintf(`
		SELECT weekday, hour, COUNT(*)
		FROM messages %s
		GROUP BY weekday, hour
		ORDER BY weekday, hour`, where), args...)
	if err != nil {
		return nil, fmt.Errorf("count by weekday-hour: %w", err)
	}
	defer rows.Close()

	var out []Cell
	for rows.Next() {
		var c Cell
		if err := rows.Scan(&c.Weekday, &c.Hour, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
