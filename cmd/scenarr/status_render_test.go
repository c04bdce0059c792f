package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestRenderCheckLineNoColor(t *testing.T) {
	got := renderCheckLine("Catalog", checkFailed, "locked", false)
	want := fmt.Sprintf("%s%-*s %s", checkIndent, checkLabelWidth, "Catalog:", "[FAIL] locked")
	if got != want {
		t.Fatalf("renderCheckLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderCheckLineWithColor(t *testing.T) {
	got := renderCheckLine("Catalog", checkPassed, "", true)
	if !strings.HasPrefix(got, ansiGreen) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected green wrapping, got %q", got)
	}
	if !strings.Contains(got, "[OK]") {
		t.Fatalf("expected OK marker, got %q", got)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers are never terminals")
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]column{textColumn("A"), numberColumn("B")}, [][]string{{"only"}})
	if !strings.Contains(out, "only") || !strings.Contains(out, "╭") {
		t.Fatalf("unexpected table: %q", out)
	}
	if renderTable(nil, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}
