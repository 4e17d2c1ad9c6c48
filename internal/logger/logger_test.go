package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
)

func TestSetLevel(t *testing.T) {
	original := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(original)

	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "warn", level: "warn", want: zerolog.WarnLevel},
		{name: "error", level: "error", want: zerolog.ErrorLevel},
		{name: "invalid falls back to info", level: "loud", want: zerolog.InfoLevel},
		{name: "empty falls back to info", level: "", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger.SetLevel(tt.level)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestErrorWithStack(t *testing.T) {
	original := log.Logger
	defer func() { log.Logger = original }()

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger.ErrorWithStack(errors.New("slot lookup failed"))

	assert.Contains(t, buf.String(), "slot lookup failed")
}

func TestInit_DoesNotPanic(t *testing.T) {
	original := log.Logger
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		log.Logger = original
		zerolog.SetGlobalLevel(originalLevel)
	}()

	assert.NotPanics(t, func() { logger.Init("production", "warn") })
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
