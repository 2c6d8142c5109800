package open

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		editor string
		want   []string
	}{
		{"vim", []string{"vim", "+12", "chat.txt"}},
		{"/usr/bin/nvim", []string{"/usr/bin/nvim", "+12", "chat.txt"}},
		{"code", []string{"code", "--goto", "chat.txt:12"}},
		{"less", []string{"less", "+12", "chat.txt"}},
		{"nano", []string{"nano", "+12", "chat.txt"}},
		{"emacs", []string{"emacs", "chat.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.editor, func(t *testing.T) {
			assert.Equal(t, tt.want, editorCommand(tt.editor, "chat.txt", 12).Args)
		})
	}
}

func TestOpenExport_Missing(t *testing.T) {
	err := OpenExport(filepath.Join(t.TempDir(), "missing.txt"), 3)
	assert.ErrorContains(t, err, "file not found")
}
