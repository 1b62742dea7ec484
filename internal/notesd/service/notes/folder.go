package notes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kiosk404/echonote/internal/notesd/options"
	"github.com/kiosk404/echonote/pkg/logger"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrNotFound        = errors.New("not found in notes folder")
	ErrTooLarge        = errors.New("file too large")
	ErrInvalidName     = errors.New("invalid file name")
)

// noteError carries a user-facing message and matches its kind with
// errors.Is.
type noteError struct {
	kind error
	msg  string
}

func (e *noteError) Error() string { return e.msg }
func (e *noteError) Unwrap() error { return e.kind }

func newError(kind error, format string, args ...any) error {
	return &noteError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Item is one entry of a folder listing.
type Item struct {
	Filename  string  `json:"filename"`
	Size      int64   `json:"size"`
	Modified  float64 `json:"modified"`
	Extension string  `json:"extension"`
}

// Folder serves the notes in a single flat directory. Names are resolved
// inside the directory only.
type Folder struct {
	root        string
	extensions  []string
	maxFileSize int64
	pdf         *PDFExtractor
}

func NewFolder(opts *options.NotesOptions) (*Folder, error) {
	pdf, err := NewPDFExtractor(opts.PDFLicenseKey)
	if err != nil {
		return nil, err
	}
	return &Folder{
		root:        opts.Folder,
		extensions:  opts.Extensions,
		maxFileSize: opts.MaxFileSize,
		pdf:         pdf,
	}, nil
}

func (f *Folder) Root() string {
	return f.root
}

func (f *Folder) checkRoot() error {
	info, err := os.Stat(f.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("Notes folder '%s' does not exist", f.root)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("'%s' is not a directory", f.root)
	}
	return nil
}

// List returns the supported files sorted by name. Entries that cannot be
// stat'ed are skipped.
func (f *Folder) List() ([]Item, error) {
	if err := f.checkRoot(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !f.supported(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			logger.Debug("[Notes] skipping %s: %v", e.Name(), err)
			continue
		}
		items = append(items, Item{
			Filename:  e.Name(),
			Size:      info.Size(),
			Modified:  float64(info.ModTime().UnixNano()) / 1e9,
			Extension: filepath.Ext(e.Name()),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Filename < items[j].Filename })
	return items, nil
}

func hasExt(name, ext string) bool {
	return strings.ToLower(filepath.Ext(name)) == ext
}

func (f *Folder) supported(name string) bool {
	ext := filepath.Ext(name)
	for _, want := range f.extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// ReadText returns the content of a .txt note.
func (f *Folder) ReadText(name string) (string, error) {
	if !hasExt(name, ".txt") {
		return "", newError(ErrUnsupportedType, "Only .txt files are supported by this tool. Use read_pdf for PDF files.")
	}
	path, err := f.open(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("File '%s' is not valid UTF-8 text", name)
	}
	return string(data), nil
}

// ReadPDF returns the text of a .pdf note, one "--- Page N ---" block per
// non-empty page.
func (f *Folder) ReadPDF(name string) (string, error) {
	if !hasExt(name, ".pdf") {
		return "", newError(ErrUnsupportedType, "Only .pdf files are supported by this tool. Use read_text for text files.")
	}
	path, err := f.open(name)
	if err != nil {
		return "", err
	}
	return f.pdf.ExtractFile(path)
}

// open validates name and returns its path once existence and size checks
// pass.
func (f *Folder) open(name string) (string, error) {
	if err := f.checkRoot(); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == ".." {
		return "", newError(ErrInvalidName, "Invalid file name '%s'", name)
	}
	path := filepath.Join(f.root, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", newError(ErrNotFound, "File '%s' not found in notes folder", name)
		}
		return "", err
	}
	if info.IsDir() {
		return "", newError(ErrNotFound, "File '%s' not found in notes folder", name)
	}
	if info.Size() > f.maxFileSize {
		return "", newError(ErrTooLarge, "File '%s' is too large (%d bytes > %d bytes)", name, info.Size(), f.maxFileSize)
	}
	return path, nil
}
