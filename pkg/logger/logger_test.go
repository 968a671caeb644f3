package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/library-catalog/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()
	sink := filepath.Join(t.TempDir(), "catalog.log")
	log := logger.NewLogger(logger.Log{LogLevel: zapcore.InfoLevel, Sink: sink}, "catalog")

	log.Debug("hidden")
	log.Info("visible")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(sink)
	require.NoError(t, err)
	require.Contains(t, string(data), `"logger":"catalog"`)
	require.Contains(t, string(data), `"msg":"visible"`)
	require.NotContains(t, string(data), "hidden")
}
