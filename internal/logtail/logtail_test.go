package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Read() = %v, want no lines", got)
	}
}

func TestParse(t *testing.T) {
	line := `{"level":"info","ts":"2026-10-14T09:00:00.000Z","logger":"farmstand.fetch","msg":"applied product listings","op":"load","generation":3,"count":7,"caller":"fetch/controller.go:51"}`
	e, ok := Parse(line)
	if !ok {
		t.Fatalf("Parse() ok = false")
	}
	if e.Level != "INFO" || e.Logger != "farmstand.fetch" || e.Message != "applied product listings" {
		t.Fatalf("Parse() = %+v", e)
	}
	if e.Time != "2026-10-14T09:00:00.000Z" {
		t.Fatalf("Time = %q", e.Time)
	}
	if _, ok := e.Fields["caller"]; ok {
		t.Fatalf("caller should not be a field")
	}
	if e.Fields["count"] != float64(7) {
		t.Fatalf("count = %v, want 7", e.Fields["count"])
	}

	if _, ok := Parse("plain text"); ok {
		t.Fatalf("Parse(plain text) ok = true")
	}
}

func TestFormat(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain line",
			input:    "not json",
			expected: "not json",
		},
		{
			name:     "info with fields",
			input:    `{"level":"info","ts":"T","logger":"farmstand.fetch","msg":"applied product listings","op":"load","count":2}`,
			expected: "T INFO  [farmstand.fetch] applied product listings count=2 op=load",
		},
		{
			name:     "error without logger",
			input:    `{"level":"error","ts":"T","msg":"listing request failed","kind":"server","status":500}`,
			expected: "T ERROR listing request failed kind=server status=500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.input); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatLines(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	got := FormatLines([]string{"a", `{"msg":"b"}`})
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FormatLines() = %q, want %q", got, want)
	}
}
