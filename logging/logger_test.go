package logging_test

import (
	"testing"

	"github.com/mkavanagh/revapi/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewBuildsLoggerAtRequestedLevel(t *testing.T) {
	debugLogger, err := logging.New("debug")
	require.NoError(t, err)
	assert.True(t, debugLogger.Core().Enabled(zapcore.DebugLevel))

	warnLogger, err := logging.New("warn")
	require.NoError(t, err)
	assert.False(t, warnLogger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, warnLogger.Core().Enabled(zapcore.WarnLevel))
}

func TestNewDefaultsToInfoForUnknownLevel(t *testing.T) {
	logger, err := logging.New("not-a-real-level")
	require.NoError(t, err)

	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestSetGlobalReplacesGlobalLogger(t *testing.T) {
	original := logging.Global()
	defer logging.SetGlobal(original)

	replacement, err := logging.New("debug")
	require.NoError(t, err)
	logging.SetGlobal(replacement)

	assert.Same(t, replacement, logging.Global())
}
