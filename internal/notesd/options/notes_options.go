package options

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// NotesOptions points at the folder served by the file tools.
type NotesOptions struct {
	Folder      string   `json:"folder"        mapstructure:"folder"`
	Extensions  []string `json:"extensions"    mapstructure:"extensions"`
	MaxFileSize int64    `json:"max-file-size" mapstructure:"max-file-size"`
	// PDFLicenseKey is the unidoc metered key; without it PDF reading is
	// limited to what the unlicensed library allows.
	PDFLicenseKey string `json:"pdf-license-key" mapstructure:"pdf-license-key"`
}

func NewNotesOptions() *NotesOptions {
	return &NotesOptions{
		Folder:      "notes",
		Extensions:  []string{".txt", ".pdf"},
		MaxFileSize: 10 * 1024 * 1024,
	}
}

func (o *NotesOptions) Validate() []error {
	var errs []error
	if o.Folder == "" {
		errs = append(errs, fmt.Errorf("notes.folder is required"))
	}
	if o.MaxFileSize <= 0 {
		errs = append(errs, fmt.Errorf("notes.max-file-size must be positive"))
	}
	for _, ext := range o.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("notes.extensions: %q must start with a dot", ext))
		}
	}
	return errs
}

func (o *NotesOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Folder, "notes.folder", o.Folder, "Folder holding the notes.")
	fs.StringSliceVar(&o.Extensions, "notes.extensions", o.Extensions, "File extensions listed by list_items.")
	fs.Int64Var(&o.MaxFileSize, "notes.max-file-size", o.MaxFileSize, "Largest file the read tools accept, in bytes.")
	fs.StringVar(&o.PDFLicenseKey, "notes.pdf-license-key", o.PDFLicenseKey, "unidoc metered license key used for PDF extraction.")
}
