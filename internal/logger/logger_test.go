package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"choconati/internal/logger"
)

func TestNewWriter_Levels(t *testing.T) {
	tests := []struct {
		env       string
		wantDebug bool
	}{
		{"dev", true},
		{"prod", false},
		{"", false},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		log := logger.NewWriter(&buf, tt.env)
		log.Debug("probe")
		if got := buf.Len() > 0; got != tt.wantDebug {
			t.Errorf("env %q: debug emitted = %v, want %v", tt.env, got, tt.wantDebug)
		}
	}
}

func TestNewWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger.NewWriter(&buf, "prod").Info("stock updated", "id", "2")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "stock updated" || rec["id"] != "2" {
		t.Errorf("unexpected record: %v", rec)
	}
}
