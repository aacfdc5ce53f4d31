package output

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestShouldColorize(t *testing.T) {
	tests := []struct {
		name     string
		mode     ColorMode
		writer   interface{}
		expected bool
	}{
		{
			name:     "ColorAlways - any writer",
			mode:     ColorAlways,
			writer:   &bytes.Buffer{},
			expected: true,
		},
		{
			name:     "ColorNever - any writer",
			mode:     ColorNever,
			writer:   os.Stdout,
			expected: false,
		},
		{
			name:     "ColorAuto - non-file writer",
			mode:     ColorAuto,
			writer:   &bytes.Buffer{},
			expected: false,
		},
		{
			name:     "ColorAuto - file writer (stdout)",
			mode:     ColorAuto,
			writer:   os.Stdout,
			expected: isTerminal(os.Stdout), // Depends on test environment
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shouldColorize(tt.mode, tt.writer)
			if result != tt.expected {
				t.Errorf("shouldColorize() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestHighlightWords(t *testing.T) {
	got := highlightWords([]string{"Naomi", "George"})

	if !strings.Contains(got, colorBold+WordsLabel+colorReset) {
		t.Errorf("label not bold: %q", got)
	}
	if !strings.Contains(got, colorYellow+"George"+colorReset) {
		t.Errorf("word not highlighted: %q", got)
	}

	cleaned := strings.NewReplacer(colorBold, "", colorYellow, "", colorReset, "").Replace(got)
	if cleaned != FormatWords([]string{"Naomi", "George"}) {
		t.Errorf("content was modified: %q", cleaned)
	}
}

func TestWriteGroupsColor(t *testing.T) {
	groups := buildGroups(t, "job 1 done", "job 2 done", "lonely line")

	t.Run("ColorAlways mode", func(t *testing.T) {
		buf := &bytes.Buffer{}
		if err := New(buf, FormatText).WriteGroups(groups, ReportOptions{Color: ColorAlways}); err != nil {
			t.Fatalf("WriteGroups() error = %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, colorYellow+"2"+colorReset) {
			t.Errorf("expected highlighted words, got: %q", out)
		}
		if !strings.Contains(out, colorGray+"lonely line"+colorReset) {
			t.Errorf("expected dimmed singleton, got: %q", out)
		}
	})

	t.Run("ColorAuto mode with buffer (not TTY)", func(t *testing.T) {
		buf := &bytes.Buffer{}
		if err := New(buf, FormatText).WriteGroups(groups, ReportOptions{Color: ColorAuto}); err != nil {
			t.Fatalf("WriteGroups() error = %v", err)
		}
		if strings.Contains(buf.String(), "\033[") {
			t.Errorf("Expected no color codes for non-TTY, got: %q", buf.String())
		}
	})
}

func TestANSIColorCodes(t *testing.T) {
	codes := []struct {
		name  string
		value string
	}{
		{"reset", colorReset},
		{"yellow", colorYellow},
		{"gray", colorGray},
		{"bold", colorBold},
	}

	for _, code := range codes {
		t.Run(code.name, func(t *testing.T) {
			if !strings.HasPrefix(code.value, "\033[") {
				t.Errorf("Color code %q should start with ANSI escape sequence", code.name)
			}
			if !strings.HasSuffix(code.value, "m") {
				t.Errorf("Color code %q should end with 'm'", code.name)
			}
		})
	}
}
