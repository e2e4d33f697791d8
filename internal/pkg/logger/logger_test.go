package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_InvalidLevel(t *testing.T) {
	err := Init(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestInit_FileLogging(t *testing.T) {
	dir := t.TempDir()

	err := Init(Config{
		Level:         "info",
		Format:        "json",
		FileEnabled:   true,
		FilePath:      dir,
		RotationSize:  1,
		RetentionDays: 1,
		ServiceName:   "test",
	})
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestErrorOnlyWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &errorOnlyWriter{w: &buf}

	n, err := w.WriteLevel(zerolog.InfoLevel, []byte("info\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Empty(t, buf.String())

	_, err = w.WriteLevel(zerolog.ErrorLevel, []byte("boom\n"))
	require.NoError(t, err)
	assert.Equal(t, "boom\n", buf.String())
}

func TestNewQueryLogger_EmptyPathUsesGlobal(t *testing.T) {
	l := NewQueryLogger("", 1, 1)
	assert.NotNil(t, l)
}
