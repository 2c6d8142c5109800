package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chat-analyzer/internal/scan"
)

func TestSummarise(t *testing.T) {
	dir := t.TempDir()
	chat := filepath.Join(dir, "chat.txt")
	notes := filepath.Join(dir, "notes.txt")
	broken := filepath.Join(dir, "broken.zip")
	require.NoError(t, os.WriteFile(chat, []byte("1/1/23, 10:00 - Alice: hi\n3/2/23, 11:00 - Bob: hey\n5/2/23, 11:00 - Alice: bye\n"), 0o644))
	require.NoError(t, os.WriteFile(notes, []byte("shopping list\n"), 0o644))
	require.NoError(t, os.WriteFile(broken, []byte("not a zip"), 0o644))

	files, err := scan.FindExports(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)

	rows, err := summarise(context.Background(), files, 2)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byName := make(map[string]exportSummary)
	for _, r := range rows {
		byName[filepath.Base(r.file.Path)] = r
	}

	got := byName["chat.txt"]
	assert.NoError(t, got.err)
	assert.Equal(t, 3, got.messages)
	assert.Equal(t, 2, got.participants)
	assert.Equal(t, "2023-01-01", got.first.Format("2006-01-02"))
	assert.Equal(t, "2023-02-05", got.last.Format("2006-01-02"))

	assert.Equal(t, 0, byName["notes.txt"].messages)
	assert.Error(t, byName["broken.zip"].err)
}

func TestSummarise_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := summarise(ctx, []scan.FileInfo{{Path: "x.txt"}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
