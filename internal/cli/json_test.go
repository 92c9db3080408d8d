package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/tusk/internal/errors"
)

func decodeEnvelope(t *testing.T, buf *bytes.Buffer) JSONEnvelope {
	t.Helper()
	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	return env
}

func TestWriteJSONSuccess(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONSuccess(&buf, map[string]string{"key": "value"}))

	env := decodeEnvelope(t, &buf)
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)

	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "value", data["key"])
}

func TestWriteJSONSuccess_Indented(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONSuccess(&buf, map[string]int{"n": 1}))

	assert.Contains(t, buf.String(), "\n  \"success\": true")
	assert.NotContains(t, buf.String(), "\"error\"", "omitted when empty")
}

func TestWriteJSONFromError(t *testing.T) {
	var buf bytes.Buffer
	err := errors.New(errors.ErrSourceGone, "Metric source is closed", "Restart tusk")
	require.NoError(t, WriteJSONFromError(&buf, err))

	env := decodeEnvelope(t, &buf)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeSourceGone, env.Error.Code)
	assert.Equal(t, "Restart tusk", env.Error.Suggestion)
}

func TestErrorToJSON(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"config not found", errors.New(errors.ErrConfig, "Config file not found", ""), ErrCodeConfigNotFound},
		{"config invalid", errors.New(errors.ErrConfig, "log.level \"loud\" isn't a log level", ""), ErrCodeConfigInvalid},
		{"source", errors.New(errors.ErrSource, "Can't read memory", ""), ErrCodeSourceUnavailable},
		{"source gone", errors.New(errors.ErrSourceGone, "Source closed", ""), ErrCodeSourceGone},
		{"track", errors.New(errors.ErrTrack, "'abc' doesn't look like a pid", ""), ErrCodeTrackFailed},
		{"ui", errors.New(errors.ErrUI, "no terminal", ""), ErrCodeUIFailed},
		{"unknown code", errors.New("SOMETHING", "odd", ""), ErrCodeUnknown},
		{"plain error", fmt.Errorf("boom"), ErrCodeUnknown},
		{"wrapped structured error", fmt.Errorf("tick: %w", errors.New(errors.ErrSource, "x", "")), ErrCodeSourceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ErrorToJSON(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestErrorToJSON_Nil(t *testing.T) {
	assert.Nil(t, ErrorToJSON(nil))
}

func TestErrorToJSON_CauseInDetails(t *testing.T) {
	err := errors.WrapWithCode(fmt.Errorf("permission denied"), errors.ErrSourceGone, "Can't read CPU information", "")

	got := ErrorToJSON(err)

	details, ok := got.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "permission denied", details["cause"])
}
