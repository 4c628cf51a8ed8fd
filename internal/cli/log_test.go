package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Info("test message")
	assert.Contains(t, buf.String(), "test message")

	buf.Reset()
	logger.Debug("hidden")
	assert.Empty(t, buf.String(), "debug output at info level")
}

func TestNewLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.DebugLevel).Debug("shown", "key", 1)
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=1")
}

func TestLoggerContext(t *testing.T) {
	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	ctx := withLogger(context.Background(), l)

	assert.Same(t, l, loggerFromContext(ctx))
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))
}
