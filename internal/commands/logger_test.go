package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/finance-toolkit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LoggingConfig
		override  string
		level     zapcore.Level
		expectErr bool
	}{
		{name: "defaults", cfg: config.LoggingConfig{}, level: zapcore.InfoLevel},
		{name: "json debug", cfg: config.LoggingConfig{Level: "debug", Format: "json"}, level: zapcore.DebugLevel},
		{name: "override wins", cfg: config.LoggingConfig{Level: "debug"}, override: "error", level: zapcore.ErrorLevel},
		{name: "warning alias", cfg: config.LoggingConfig{Level: "warning"}, level: zapcore.WarnLevel},
		{name: "invalid level", cfg: config.LoggingConfig{Level: "verbose"}, expectErr: true},
		{name: "invalid format", cfg: config.LoggingConfig{Format: "xml"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.cfg, tt.override)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.level))
			if tt.level > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.level-1))
			}
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "toolkit.log")

	logger, err := initializeLogger(config.LoggingConfig{Format: "json", OutputFile: path}, "")
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
