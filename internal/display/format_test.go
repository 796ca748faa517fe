package display

import (
	"bytes"
	"testing"

	"github.com/backmassage/bundlekit/internal/config"
	"github.com/backmassage/bundlekit/internal/term"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"typical bundle 140 KiB", 140 * 1024, "140 KiB"},
		{"negative", -2048, "-2.0 KiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatOutputTable(t *testing.T) {
	term.Configure(config.ColorNever)
	lines := FormatOutputTable([]OutputRow{
		{Path: "static/js/app.abc123.js", Size: 2048},
		{Path: "app.css", Size: 10},
	})
	want := []string{
		"  static/js/app.abc123.js     2.0 KiB",
		"  app.css                        10 B",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestPrintBanner_Plain(t *testing.T) {
	term.Configure(config.ColorNever)
	var buf bytes.Buffer
	PrintBanner(&buf)
	if buf.String() != banner {
		t.Errorf("plain banner should be written verbatim")
	}
}
