package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevels(t *testing.T) {
	quiet := NewLogger(false)
	if quiet == nil {
		t.Fatal("NewLogger returned nil")
	}
	if quiet.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled without verbose")
	}
	if !quiet.Desugar().Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be enabled")
	}

	verbose := NewLogger(true)
	if !verbose.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be enabled with verbose")
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	if logger == nil {
		t.Fatal("NewNop returned nil")
	}
	// must not panic
	logger.Infow("discarded", "key", "value")
	logger.Debugw("discarded")
}
