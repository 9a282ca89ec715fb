package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("XDG_STATE_HOME", tempDir)

			SetupLogger(tt.verbosity, "")

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			logPath := filepath.Join(tempDir, "rotor", "rotor.log")
			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file should be created at %s", logPath)
		})
	}
}

func TestSetupLoggerExplicitFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "run.log")

	SetupLogger(1, logPath)
	log.Info().Msg("hello from the test")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the test")
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")
	assert.Equal(t, filepath.Join("/custom/state", "rotor", "rotor.log"), getLogFilePath())
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	logger := GetLogger("linker")
	logger.Info().Msg("linking")

	assert.Contains(t, buf.String(), `"component":"linker"`)
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	LogCommand(logger, "apt-get", []string{"--assume-yes", "install", "vim"})

	output := buf.String()
	assert.Contains(t, output, "apt-get")
	assert.Contains(t, output, "vim")
	assert.Contains(t, output, "Executing command")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	done := LogOperationStart(logger, "run")
	done()

	output := buf.String()
	assert.Contains(t, output, "Operation started")
	assert.Contains(t, output, "Operation completed")
	assert.Contains(t, output, "duration")
}
