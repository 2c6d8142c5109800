package index

import (
	"database/sql"
	"fmt"

	"github.com/Zuo-Peng/chat-analyzer/internal/parse"

	_ "modernc.org/sqlite"
)

// The frame lives in a private in-memory database; nothing is written to disk.
const schema = `
CREATE TABLE messages (
    seq         INTEGER PRIMARY KEY,
    ts          TEXT NOT NULL,
    day         TEXT NOT NULL,
    year        INTEGER NOT NULL,
    month       INTEGER NOT NULL,
    weekday     INTEGER NOT NULL, -- 0=Monday
    hour        INTEGER NOT NULL,
    minute      INTEGER NOT NULL,
    sender      TEXT NOT NULL,
    text        TEXT NOT NULL,
    line_number INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX messages_sender ON messages(sender);

CREATE VIRTUAL TABLE messages_fts USING fts5(
    text,
    content=messages,
    content_rowid=seq,
    tokenize='unicode61'
);

CREATE TRIGGER messages_ai AFTER INSERT ON messages BEGIN
    INSERT INTO messages_fts(rowid, text) VALUES (new.seq, new.text);
END;
`

// Frame is a queryable table of one export's messages.
type Frame struct {
	db    *sql.DB
	count int
}

// OpenFrame loads msgs into a fresh in-memory database.
func OpenFrame(msgs []parse.Message) (*Frame, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	// every pooled connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	f := &Frame{db: db}
	if err := f.load(msgs); err != nil {
		db.Close()
		return nil, fmt.Errorf("load messages: %w", err)
	}
	return f, nil
}

func (f *Frame) load(msgs []parse.Message) error {
	tx, err := f.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO messages (seq, ts, day, year, month, weekday, hour, minute, sender, text, line_number)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range msgs {
		_, err := stmt.Exec(
			m.Seq,
			m.Timestamp.Format("2006-01-02T15:04:05"),
			m.Date,
			m.Year,
			int(m.Month),
			m.ISOWeekday(),
			m.Hour,
			m.Minute,
			m.Sender,
			m.Text,
			m.Line,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	f.count = len(msgs)
	return nil
}

func (f *Frame) Close() error {
	return f.db.Close()
}

func (f *Frame) Raw() *sql.DB {
	return f.db
}

// Len is the number of loaded messages.
func (f *Frame) Len() int {
	return f.count
}

func (f *Frame) MessageCount() (int, error) {
	var n int
	err := f.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}

func (f *Frame) FTSCount() (int, error) {
	var n int
	err := f.db.QueryRow("SELECT COUNT(*) FROM messages_fts").Scan(&n)
	return n, err
}

type MessageRow struct {
	Seq        int
	Ts         string
	Sender     string
	Text       string
	LineNumber int
}

// GetMessagesWindow returns the messages around seq, at most context on each
// side. startPos is the number of messages before the window and totalCount
// the number of messages in the frame.
func (f *Frame) GetMessagesWindow(seq, context int) (rows []MessageRow, hitIdx int, startPos int, totalCount int, err error) {
	totalCount = f.count

	startPos = 0
	limit := totalCount
	if seq >= 0 && seq < totalCount {
		startPos = seq - context
		if startPos < 0 {
			startPos = 0
		}
		endPos := seq + context + 1
		if endPos > totalCount {
			endPos = totalCount
		}
		limit = endPos - startPos
	}

	q, err := f.db.Query(
		"SELECT seq, ts, sender, text, line_number FROM messages ORDER BY seq LIMIT ? OFFSET ?",
		limit, startPos,
	)
	if err != nil {
		return nil, -1, 0, 0, err
	}
	defer q.Close()

	hitIdx = -1
	for q.Next() {
		var r MessageRow
		if err := q.Scan(&r.Seq, &r.Ts, &r.Sender, &r.Text, &r.LineNumber); err != nil {
			return nil, -1, 0, 0, err
		}
		if r.Seq == seq {
			hitIdx = len(rows)
		}
		rows = append(rows, r)
	}
	return rows, hitIdx, startPos, totalCount, q.Err()
}

// senderWhere builds the optional sender predicate. A nil sender selects all rows.
func senderWhere(sender *string) (string, []any) {
	if sender == nil {
		return "", nil
	}
	return "WHERE sender = ?", []any{*sender}
}
