package config

import (
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero value", Config{}, false},
		{"text", Config{Format: "text"}, false},
		{"json upper", Config{Format: "JSON"}, false},
		{"table", Config{Format: "table"}, false},
		{"unknown format", Config{Format: "yaml"}, true},
		{"min sentences two", Config{Report: ReportConfig{MinSentences: 2}}, false},
		{"negative min sentences", Config{Report: ReportConfig{MinSentences: -1}}, true},
		{"temperature in range", Config{LLM: LLMConfig{Temperature: 0.7}}, false},
		{"temperature too high", Config{LLM: LLMConfig{Temperature: 2.5}}, true},
		{"temperature negative", Config{LLM: LLMConfig{Temperature: -0.1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
