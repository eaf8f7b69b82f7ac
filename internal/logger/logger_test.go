package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"philcali.me/inventory/internal/config"
	"philcali.me/inventory/internal/logger"
)

func TestNewWithWriter(t *testing.T) {
	cfg := &config.Config{
		Primary: config.Primary{Env: "production"},
		Log:     config.LogConfig{Level: "warn"},
	}
	var buf bytes.Buffer
	log := logger.NewWithWriter(cfg, &buf)

	log.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("Expected info to be filtered at warn, got %s", buf.String())
	}

	log.Warn().Str("table", "Inventory").Msg("kept")
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse log entry %s: %s", buf.String(), err)
	}
	if entry["service"] != "inventory" || entry["environment"] != "production" || entry["table"] != "Inventory" {
		t.Errorf("Unexpected log entry: %v", entry)
	}
	if entry["message"] != "kept" {
		t.Errorf("Unexpected message: %v", entry["message"])
	}
}
