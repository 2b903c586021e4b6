package logger

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWithRotateWritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "api.log")
	l, cleanup := NewWithRotate("info", true, FileRotate{Enable: true, Filename: file, MaxSizeMB: 1})
	l.Info("hello", zap.String("k", "v"))
	l.Debug("dropped")
	cleanup()

	b, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("log file is empty")
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	l, cleanup := New("loud", false)
	defer cleanup()
	if !l.Core().Enabled(zapcore.InfoLevel) || l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("unknown level should behave as info")
	}
}

func TestToStdLogger(t *testing.T) {
	l, cleanup := New("info", true)
	defer cleanup()
	if ToStdLogger(l, zapcore.WarnLevel) == nil {
		t.Fatal("nil std logger")
	}
}
