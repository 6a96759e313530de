package slogx

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestAttrs(t *testing.T) {
	assert.Equal(t, slog.String("error", "boom"), Error(errors.New("boom")))
	assert.Equal(t, slog.String("logger", "storywriter"), LoggerName("storywriter"))

	id := uuid.MustParse("01890a5d-ac96-774b-bcce-b302099a8057")
	assert.Equal(t, slog.String("task_id", "01890a5d-ac96-774b-bcce-b302099a8057"), TaskID(id))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"empty defaults to info", "", slog.LevelInfo},
		{"upper case", "WARN", slog.LevelWarn},
		{"warning alias", "warning", slog.LevelWarn},
		{"error", " error ", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("verbose")
	assert.EqualError(t, err, `unknown log level "verbose"`)
}

func TestNewHandler(t *testing.T) {
	t.Run("json lines", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(NewHandler(&buf, slog.LevelInfo, false))

		logger.Debug("hidden")
		logger.Info("generation started", LoggerName("storywriter"), slog.String("model", "llama3"))

		line := buf.String()
		require.True(t, gjson.Valid(line), line)
		assert.Equal(t, "generation started", gjson.Get(line, "message").String())
		assert.Equal(t, "info", gjson.Get(line, "level").String())
		assert.Equal(t, "llama3", gjson.Get(line, "model").String())
		assert.Equal(t, "storywriter", gjson.Get(line, "logger").String())
		assert.NotContains(t, line, "hidden")
	})

	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(NewHandler(&buf, slog.LevelDebug, true))

		logger.Debug("decoded frame", slog.Int("dropped", 2))

		assert.Contains(t, buf.String(), "decoded frame")
		assert.Contains(t, buf.String(), "dropped=")
	})
}
