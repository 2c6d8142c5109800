package search

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/Zuo-Peng/chat-analyzer/internal/index"
)

type Result struct {
	Seq     int
	Ts      string
	Sender  string
	Line    int
	Snippet string
	Rank    float64
}

type Options struct {
	Query  string
	Sender *string // nil = everyone
	Limit  int
}

// containsCJK returns true if the string contains any CJK Unified Ideograph.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	runes := []rune(text)
	if idx < 0 || len(lower) != len(text) {
		if len(runes) > contextChars*2 {
			return string(runes[:contextChars*2]) + "..."
		}
		return text
	}
	qRunes := []rune(query)
	runePos := len([]rune(text[:idx]))
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + len(qRunes) + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

// Search finds messages matching opts.Query, best match first. CJK queries
// use substring matching since unicode61 does not segment Han text.
func Search(f *index.Frame, opts Options) ([]Result, error) {
	if strings.TrimSpace(opts.Query) == "" {
		return nil, nil
	}
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if containsCJK(opts.Query) {
		return searchLike(f, opts)
	}
	return searchFTS(f, opts)
}

func searchFTS(f *index.Frame, opts Options) ([]Result, error) {
	conditions := []string{"messages_fts MATCH ?"}
	args := []any{opts.Query}

	if opts.Sender != nil {
		conditions = append(conditions, "m.sender = ?")
		args = append(args, *opts.Sender)
	}

	query := fmt.Sprintf(`
		SELECT
			m.seq,
			m.ts,
			m.sender,
			m.line_number,
			snippet(messages_fts, 0, '>>>', '<<<', '...', 16) AS snip,
			bm25(messages_fts) AS rank
		FROM messages_fts
		JOIN messages m ON messages_fts.rowid = m.seq
		WHERE %s
		ORDER BY rank, m.seq
		LIMIT ?
	`, strings.Join(conditions, " AND "))
	args = append(args, opts.Limit)

	rows, err := f.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func searchLike(f *index.Frame, opts Options) ([]Result, error) {
	conditions := []string{"text LIKE ?"}
	args := []any{"%" + opts.Query + "%"}

	if opts.Sender != nil {
		conditions = append(conditions, "sender = ?")
		args = append(args, *opts.Sender)
	}

	query := fmt.Sprintf(`
		SELECT seq, ts, sender, line_number, text
		FROM messages
		WHERE %s
		ORDER BY seq
		LIMIT ?
	`, strings.Join(conditions, " AND "))
	args = append(args, opts.Limit)

	rows, err := f.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var fullText string
		if err := rows.Scan(&r.Seq, &r.Ts, &r.Sender, &r.Line, &fullText); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(fullText, opts.Query, 30)
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Seq, &r.Ts, &r.Sender, &r.Line, &r.Snippet, &r.Rank); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
