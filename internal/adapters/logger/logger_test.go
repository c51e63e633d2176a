package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name        string
		development bool
		level       string
		wantErr     bool
	}{
		{name: "production default level", development: false, level: ""},
		{name: "development debug", development: true, level: "debug"},
		{name: "production warn", development: false, level: "warn"},
		{name: "unknown level", development: false, level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLogger(tt.development, tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewLogger() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if l == nil {
				t.Fatal("NewLogger() returned nil logger")
			}
			l.Named("test").WithFields(zap.String("k", "v")).Debug("message")
		})
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Info("ignored", zap.Int("n", 1))
	l.Warn("ignored")
	l.Error("ignored")
	if err := l.Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}
}
