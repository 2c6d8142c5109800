package scan

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrNoTextEntry     = errors.New("archive has no text entry")
	ErrMultipleEntries = errors.New("archive has more than one text entry")
)

type FileInfo struct {
	Path   string
	Format string // "txt" or "zip"
	Mtime  int64
	Size   int64
}

// ReadExport returns the text of the export at path. A .zip must hold exactly
// one .txt entry; anything else is read as plain text.
func ReadExport(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return readZip(path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read export: %w", err)
	}
	return decode(b), nil
}

func readZip(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	var entry *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !isTextEntry(f.Name) {
			continue
		}
		if entry != nil {
			return "", fmt.Errorf("%s: %w", path, ErrMultipleEntries)
		}
		entry = f
	}
	if entry == nil {
		return "", fmt.Errorf("%s: %w", path, ErrNoTextEntry)
	}

	rc, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", entry.Name, err)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", entry.Name, err)
	}
	return decode(b), nil
}

func isTextEntry(name string) bool {
	base := filepath.Base(name)
	// macOS resource forks
	if strings.HasPrefix(base, "._") || strings.HasPrefix(name, "__MACOSX/") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".txt")
}

// decode strips a UTF-8 BOM and normalises CRLF line endings.
func decode(b []byte) string {
	s := strings.TrimPrefix(string(b), "\uFEFF")
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// FindExports walks root for .txt and .zip files, newest first.
func FindExports(root string) ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		var format string
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt":
			format = "txt"
		case ".zip":
			format = "zip"
		default:
			return nil
		}
		files = append(files, FileInfo{
			Path:   path,
			Format: format,
			Mtime:  info.ModTime().Unix(),
			Size:   info.Size(),
		})
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Mtime != files[j].Mtime {
			return files[i].Mtime > files[j].Mtime
		}
		return files[i].Path < files[j].Path
	})
	return files, nil
}
