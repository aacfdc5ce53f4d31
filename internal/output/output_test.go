package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bimmerbailey/onediff/internal/pattern"
)

func buildGroups(t *testing.T, lines ...string) []pattern.Group {
	t.Helper()
	e := pattern.New()
	for _, l := range lines {
		if err := e.Process(l); err != nil {
			t.Fatalf("Process() error = %v", err)
		}
	}
	return e.Finalize()
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"text", FormatText},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"table", FormatTable},
		{"", FormatText},
		{"unknown", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteGroupsText(t *testing.T) {
	groups := buildGroups(t,
		"Naomi is eating at a diner",
		"George is eating at a diner",
		"Naomi is eating at a restaurant",
	)

	var buf bytes.Buffer
	if err := New(&buf, FormatText).WriteGroups(groups, ReportOptions{Color: ColorNever}); err != nil {
		t.Fatalf("WriteGroups() error = %v", err)
	}

	want := "Naomi is eating at a diner\n" +
		"George is eating at a diner\n" +
		"Naomi is eating at a restaurant\n" +
		"The changing word was: Naomi, George, restaurant\n" +
		"\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriteGroupsNoPatterns(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		format Format
	}{
		{"single line text", []string{"hello world"}, FormatText},
		{"unique lines text", []string{"cat sat on mat", "dog ran on rug"}, FormatText},
		{"empty input text", nil, FormatText},
		{"single line table", []string{"hello world"}, FormatTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := buildGroups(t, tt.lines...)

			var buf bytes.Buffer
			if err := New(&buf, tt.format).WriteGroups(groups, ReportOptions{}); err != nil {
				t.Fatalf("WriteGroups() error = %v", err)
			}
			if buf.String() != NoPatternsMessage+"\n" {
				t.Errorf("output = %q, want %q", buf.String(), NoPatternsMessage+"\n")
			}
		})
	}
}

func TestWriteGroupsSingletonThreshold(t *testing.T) {
	groups := buildGroups(t,
		"job 1 done",
		"job 2 done",
		"something else entirely",
	)

	t.Run("singletons shown by default", func(t *testing.T) {
		var buf bytes.Buffer
		if err := New(&buf, FormatText).WriteGroups(groups, ReportOptions{Color: ColorNever}); err != nil {
			t.Fatalf("WriteGroups() error = %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "something else entirely\nThe changing word was: \n") {
			t.Errorf("singleton group missing:\n%s", out)
		}
	})

	t.Run("singletons hidden with min 2", func(t *testing.T) {
		var buf bytes.Buffer
		opts := ReportOptions{MinSentences: 2, Color: ColorNever}
		if err := New(&buf, FormatText).WriteGroups(groups, opts); err != nil {
			t.Fatalf("WriteGroups() error = %v", err)
		}
		out := buf.String()
		if strings.Contains(out, "something else entirely") {
			t.Errorf("singleton group shown:\n%s", out)
		}
		if !strings.Contains(out, "The changing word was: 1, 2") {
			t.Errorf("pattern group missing:\n%s", out)
		}
	})

	t.Run("threshold above every group", func(t *testing.T) {
		var buf bytes.Buffer
		opts := ReportOptions{MinSentences: 5, Color: ColorNever}
		if err := New(&buf, FormatText).WriteGroups(groups, opts); err != nil {
			t.Fatalf("WriteGroups() error = %v", err)
		}
		if buf.String() != NoPatternsMessage+"\n" {
			t.Errorf("output = %q", buf.String())
		}
	})
}

func TestWriteGroupsJSON(t *testing.T) {
	groups := buildGroups(t,
		"01-01-2020 00:00:00 Naomi is eating at a diner",
		"02-01-2020 00:00:00 George is eating at a diner",
	)

	var buf bytes.Buffer
	if err := New(&buf, FormatJSON).WriteGroups(groups, ReportOptions{}); err != nil {
		t.Fatalf("WriteGroups() error = %v", err)
	}

	var report Report
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if !report.PatternsFound {
		t.Error("patterns_found = false, want true")
	}
	if len(report.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(report.Groups))
	}
	g := report.Groups[0]
	if g.Pattern != "Naomi is eating at a diner" {
		t.Errorf("pattern = %q", g.Pattern)
	}
	if g.Sentences[1] != "02-01-2020 00:00:00 George is eating at a diner" {
		t.Errorf("sentences = %v", g.Sentences)
	}
	if strings.Join(g.Words, ",") != "Naomi,George" {
		t.Errorf("words = %v", g.Words)
	}
	if !strings.Contains(buf.String(), `"diff_index": 0`) {
		t.Errorf("diff_index missing:\n%s", buf.String())
	}
}

func TestWriteGroupsJSONNoPatterns(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatJSON).WriteGroups(buildGroups(t, "only line"), ReportOptions{}); err != nil {
		t.Fatalf("WriteGroups() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"patterns_found": false`) {
		t.Errorf("output = %s", buf.String())
	}
}

func TestWriteGroupsTable(t *testing.T) {
	groups := buildGroups(t,
		"request 17 failed",
		"request 18 failed",
		"request 19 failed",
	)

	var buf bytes.Buffer
	if err := New(&buf, FormatTable).WriteGroups(groups, ReportOptions{}); err != nil {
		t.Fatalf("WriteGroups() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"LINES", "WORDS", "PATTERN", "17,18,19", "request 17 failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestWriteGroupsTableMultiByte(t *testing.T) {
	base := strings.Repeat("é", 50)
	groups := buildGroups(t,
		base+" "+strings.Repeat("ü", 30),
		base+" "+strings.Repeat("ö", 30),
	)

	var buf bytes.Buffer
	if err := New(&buf, FormatTable).WriteGroups(groups, ReportOptions{}); err != nil {
		t.Fatalf("WriteGroups() error = %v", err)
	}

	if !utf8.Valid(buf.Bytes()) {
		t.Fatalf("table output is not valid UTF-8:\n%q", buf.String())
	}
	if !strings.Contains(buf.String(), "...") {
		t.Errorf("expected truncated cells:\n%s", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"ascii cut", "abcdefgh", 5, "ab..."},
		{"multi-byte cut", "ééééééé", 5, "éé..."},
		{"multi-byte fits", "ééé", 3, "ééé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.n); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

var errWrite = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errWrite
}

func TestWriteGroupsWriteError(t *testing.T) {
	groups := buildGroups(t, "request 17 failed", "request 18 failed")

	for _, format := range []Format{FormatText, FormatTable, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			err := New(failingWriter{}, format).WriteGroups(groups, ReportOptions{Color: ColorNever})
			if !errors.Is(err, errWrite) {
				t.Errorf("WriteGroups() error = %v, want %v", err, errWrite)
			}
		})
	}
}

func TestFormatWords(t *testing.T) {
	if got := FormatWords([]string{"a", "b"}); got != "The changing word was: a, b" {
		t.Errorf("FormatWords() = %q", got)
	}
	if got := FormatWords(nil); got != "The changing word was: " {
		t.Errorf("FormatWords(nil) = %q", got)
	}
}
