package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected zapcore.Level
		wantErr  bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{" WARNING ", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"chatty", zapcore.InfoLevel, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			level, err := ParseLevel(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, level)
		})
	}
}

func TestSetup(t *testing.T) {
	logger, err := Setup(Options{Level: "warn", AppName: "filecombiner", AppVersion: "test"})
	require.NoError(t, err)
	assert.Same(t, logger, Logger)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = Setup(Options{Debug: true, Level: "error"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = Setup(Options{Level: "loud"})
	assert.Error(t, err)
}
