//go:build !integration

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_SetsGlobalLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			Init(tt.level, false)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestInit_PrettyOutput(t *testing.T) {
	assert.NotPanics(t, func() {
		Init("info", true)
	})
}

func TestLogger_EmitsJSON(t *testing.T) {
	Init("info", false)

	var buf bytes.Buffer
	logger := Logger().Output(&buf)
	logger.Info().Str("cache", "hit").Int("item_id", 3498).Msg("served from cache")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "served from cache", entry["message"])
	assert.Equal(t, "hit", entry["cache"])
	assert.Equal(t, float64(3498), entry["item_id"])
}

func TestWithContext(t *testing.T) {
	Init("info", false)

	var buf bytes.Buffer
	logger := WithContext(map[string]interface{}{
		"endpoint": "games",
		"page":     2,
	}).Output(&buf)
	logger.Info().Msg("fetch")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "games", entry["endpoint"])
	assert.Equal(t, float64(2), entry["page"])
}
