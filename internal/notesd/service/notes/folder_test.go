package notes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/echonote/internal/notesd/options"
)

func newTestFolder(t *testing.T, files map[string]string) *Folder {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	opts := options.NewNotesOptions()
	opts.Folder = dir
	opts.MaxFileSize = 64
	f, err := NewFolder(opts)
	require.NoError(t, err)
	return f
}

func TestFolder_ListSortedAndFiltered(t *testing.T) {
	f := newTestFolder(t, map[string]string{
		"zeta.txt":  "z",
		"alpha.pdf": "%PDF",
		"image.png": "png",
		"beta.txt":  "bb",
	})
	require.NoError(t, os.Mkdir(filepath.Join(f.Root(), "sub.txt"), 0o755))

	items, err := f.List()
	require.NoError(t, err)

	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Filename)
	}
	assert.Equal(t, []string{"alpha.pdf", "beta.txt", "zeta.txt"}, names)
	assert.Equal(t, int64(2), items[1].Size)
	assert.Equal(t, ".txt", items[1].Extension)
	assert.Greater(t, items[1].Modified, 0.0)
}

func TestFolder_ListMissingFolder(t *testing.T) {
	opts := options.NewNotesOptions()
	opts.Folder = filepath.Join(t.TempDir(), "absent")
	f, err := NewFolder(opts)
	require.NoError(t, err)

	_, err = f.List()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestFolder_ReadText(t *testing.T) {
	f := newTestFolder(t, map[string]string{
		"meeting.txt": "Discuss roadmap",
		"big.txt":     strings.Repeat("x", 65),
	})

	content, err := f.ReadText("meeting.txt")
	require.NoError(t, err)
	assert.Equal(t, "Discuss roadmap", content)

	tests := []struct {
		name    string
		file    string
		wantErr error
		msg     string
	}{
		{"wrong extension", "cv.pdf", ErrUnsupportedType, "Use read_pdf"},
		{"missing", "nope.txt", ErrNotFound, "File 'nope.txt' not found in notes folder"},
		{"too large", "big.txt", ErrTooLarge, "(65 bytes > 64 bytes)"},
		{"traversal", "../secret.txt", ErrInvalidName, "Invalid file name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ReadText(tt.file)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestFolder_ReadPDFChecksBeforeParsing(t *testing.T) {
	f := newTestFolder(t, map[string]string{"notes.txt": "x"})

	_, err := f.ReadPDF("notes.txt")
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = f.ReadPDF("cv.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFolder_ReadPDFRejectsGarbage(t *testing.T) {
	f := newTestFolder(t, map[string]string{"broken.pdf": "not really a pdf"})

	_, err := f.ReadPDF("broken.pdf")
	assert.Error(t, err)
}

func TestFolder_UppercaseExtensions(t *testing.T) {
	f := newTestFolder(t, map[string]string{
		"NOTES.TXT": "Quarterly plan",
		"CV.PDF":    "not really a pdf",
	})

	items, err := f.List()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "CV.PDF", items[0].Filename)

	content, err := f.ReadText("NOTES.TXT")
	require.NoError(t, err)
	assert.Equal(t, "Quarterly plan", content)

	_, err = f.ReadPDF("CV.PDF")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedType)

	_, err = f.ReadPDF("Resume.Pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.ReadText("CV.PDF")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
