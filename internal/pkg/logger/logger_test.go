package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		logging   config.LoggingConfig
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{"json debug", config.LoggingConfig{Level: "debug", Format: "json"}, logrus.DebugLevel, true},
		{"text warn", config.LoggingConfig{Level: "warn", Format: "text"}, logrus.WarnLevel, false},
		{"bad level falls back to info", config.LoggingConfig{Level: "loud", Format: "json"}, logrus.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(&config.Config{Logging: tt.logging})

			assert.Equal(t, tt.wantLevel, log.GetLevel())
			_, isJSON := log.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}
