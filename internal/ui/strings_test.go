package ui

import "testing"

func TestTruncate(t *testing.T) {
	if got := truncate("  Raw Honey  ", 20); got != "Raw Honey" {
		t.Fatalf("truncate trims = %q, want Raw Honey", got)
	}
	if got := truncate("Heirloom Tomatoes", 10); got != "Heirloo..." {
		t.Fatalf("truncate = %q, want Heirloo...", got)
	}
	if got := truncate("abcd", 2); got != "ab" {
		t.Fatalf("truncate limit<=3 = %q, want ab", got)
	}
	if got := truncate("jalapeño peppers", 8); got != "jalap..." {
		t.Fatalf("truncate multibyte = %q, want jalap...", got)
	}
}

func TestPadding(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padLeft("ab", 4); got != "  ab" {
		t.Fatalf("padLeft = %q", got)
	}
	if got := padLeft("abcdef", 4); got != "abcdef" {
		t.Fatalf("padLeft overflow = %q", got)
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("\n  \nfresh eggs\nlaid daily"); got != "fresh eggs" {
		t.Fatalf("firstLine = %q, want fresh eggs", got)
	}
	if got := firstLine(""); got != "" {
		t.Fatalf("firstLine empty = %q", got)
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "item"); got != "item" {
		t.Fatalf("plural(1) = %q", got)
	}
	if got := plural(2, "item"); got != "items" {
		t.Fatalf("plural(2) = %q", got)
	}
}
