package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, DEBUG, ParseLevel("debug"))
	require.Equal(t, WARN, ParseLevel("Warning"))
	require.Equal(t, ERROR, ParseLevel(" error "))
	require.Equal(t, INFO, ParseLevel("nonsense"))
	require.Equal(t, "WARN", WARN.String())
}

func TestInit_JSONOutputWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(Config{Level: "info", Format: "json"}) })

	log := Component("recommend")
	log.Info().Str("user", "u1").Int("created", 3).Msg("generated")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "info", line["level"])
	require.Equal(t, "recommend", line["component"])
	require.Equal(t, "u1", line["user"])
	require.Equal(t, float64(3), line["created"])
	require.Equal(t, "generated", line["message"])
}

func TestSetGlobalLevel_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(Config{Level: "info", Format: "json"}) })

	SetGlobalLevel(ERROR)
	require.Equal(t, ERROR, GetLevel())

	Warn().Msg("dropped")
	require.Zero(t, buf.Len())

	Error().Msg("kept")
	require.Contains(t, buf.String(), "kept")
}
