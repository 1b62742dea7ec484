package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsValidate(t *testing.T) {
	opts := NewOptions()
	assert.Empty(t, opts.Validate())

	opts.Level = "loud"
	opts.Format = "xml"
	assert.Len(t, opts.Validate(), 2)
}

func TestInfoXAddsModuleField(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitLog(&Options{Level: "debug", Format: FormatJSON, OutputPath: "stderr"}))
	SetOutput(&buf)
	defer func() { _ = InitLog(NewOptions()) }()

	InfoX("registry", "[Registry] discovered %d tools", 3)
	assert.Contains(t, buf.String(), `"module":"registry"`)
	assert.Contains(t, buf.String(), "discovered 3 tools")
}

func TestInitLogWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "notesd.log")
	require.NoError(t, InitLog(&Options{Level: "info", Format: FormatText, OutputPath: path}))
	Info("hello %s", "file")
	FlushLog()
	assert.FileExists(t, path)
}
