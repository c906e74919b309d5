package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONCarriesSession(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: FormatJSON, Level: slog.LevelInfo})
	log.Info("book loaded", "chapters", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "book loaded", record["msg"])
	assert.Equal(t, log.Session, record["session"])
	assert.EqualValues(t, 3, record["chapters"])
	assert.NotEmpty(t, log.Session)
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: FormatJSON, Level: slog.LevelWarn})
	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestPrettyHandler_NoColor(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: FormatPretty, NoColor: true})
	log.WithError(errors.New("quota exceeded")).Warn("save settings failed")

	out := buf.String()
	assert.Contains(t, out, "WRN save settings failed")
	assert.Contains(t, out, "error=quota exceeded")
	assert.NotContains(t, out, "\033[")
}

func TestPrettyHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)
	h.noColor = true
	slog.New(h).WithGroup("prefs").Info("saved", "writes", 2)

	assert.Contains(t, buf.String(), "prefs.writes=2")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestOpenFile_Appends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	f, err := OpenFile(dir)
	require.NoError(t, err)
	_, err = f.WriteString("one\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = OpenFile(dir)
	require.NoError(t, err)
	_, err = f.WriteString("two\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, strings.Fields(string(data)))
}
