package scan

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chat = "1/1/23, 10:00 - Alice: hello\n"

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, body := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestReadExport_Text(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat.txt")
	require.NoError(t, os.WriteFile(path, []byte("\uFEFF1/1/23, 10:00 - Alice: hello\r\n"), 0o644))

	got, err := ReadExport(path)
	require.NoError(t, err)
	assert.Equal(t, chat, got)
}

func TestReadExport_Zip(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		entries map[string]string
		want    string
		wantErr error
	}{
		{
			name:    "single entry",
			entries: map[string]string{"WhatsApp Chat with Bob.txt": chat, "IMG-0001.jpg": "x"},
			want:    chat,
		},
		{
			name:    "resource fork ignored",
			entries: map[string]string{"chat.txt": chat, "__MACOSX/._chat.txt": "junk"},
			want:    chat,
		},
		{
			name:    "no text",
			entries: map[string]string{"IMG-0001.jpg": "x"},
			wantErr: ErrNoTextEntry,
		},
		{
			name:    "two texts",
			entries: map[string]string{"a.txt": chat, "b.txt": chat},
			wantErr: ErrMultipleEntries,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, string(rune('a'+i))+".zip")
			writeZip(t, path, tt.entries)

			got, err := ReadExport(path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadExport_Missing(t *testing.T) {
	_, err := ReadExport(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestFindExports(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.txt")
	newer := filepath.Join(dir, "sub", "new.zip")
	require.NoError(t, os.WriteFile(old, []byte(chat), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Dir(newer), 0o755))
	writeZip(t, newer, map[string]string{"c.txt": chat})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "HEAD.txt"), []byte("x"), 0o644))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	files, err := FindExports(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, newer, files[0].Path)
	assert.Equal(t, "zip", files[0].Format)
	assert.Equal(t, old, files[1].Path)
	assert.Equal(t, "txt", files[1].Format)
}

func TestFindExports_MissingRoot(t *testing.T) {
	files, err := FindExports(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, files)
}
