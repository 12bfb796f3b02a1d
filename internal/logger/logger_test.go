package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"Error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestInitWithWriter(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	buf := &bytes.Buffer{}
	require.NoError(t, InitWithWriter(buf, "INFO", "json"))

	slog.Debug("hidden")
	slog.Info("resolved", KeyShape, []int{10, 20}, Err(errors.New("boom")))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "resolved", line["msg"])
	assert.Equal(t, "boom", line[KeyError])
	assert.Equal(t, []interface{}{10.0, 20.0}, line[KeyShape])

	buf.Reset()
	SetLevel("debug")
	slog.Debug("shown")
	assert.Contains(t, buf.String(), "shown")

	assert.Error(t, InitWithWriter(buf, "INFO", "xml"))
	assert.Error(t, InitWithWriter(buf, "LOUD", "text"))

	buf.Reset()
	require.NoError(t, InitWithWriter(buf, "", ""))
	slog.Info("plain", KeyPath, "foo/bar")
	assert.Contains(t, buf.String(), "path=foo/bar")
}

func TestInitFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	require.NoError(t, Init(Config{Level: "INFO", Format: "text", Output: first}))
	slog.Info("to first", KeyPath, "a")

	second := filepath.Join(dir, "second.log")
	require.NoError(t, Init(Config{Level: "INFO", Format: "json", Output: second}))
	slog.Info("to second", Err(errors.New("boom")))
	require.NoError(t, Close())
	require.NoError(t, Close())

	d, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(d), "to first")
	assert.NotContains(t, string(d), "to second")

	d, err = os.ReadFile(second)
	require.NoError(t, err)
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(d, &line))
	assert.Equal(t, "to second", line["msg"])
	assert.Equal(t, "boom", line[KeyError])

	// a bad format leaves no file handle behind
	assert.Error(t, Init(Config{Level: "INFO", Format: "xml", Output: filepath.Join(dir, "bad.log")}))
	assert.NoError(t, Close())

	assert.Error(t, Init(Config{Output: filepath.Join(dir, "missing", "x.log")}))
}
