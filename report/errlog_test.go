package report

import (
	"strings"
	"testing"
)

func TestErrorLogAccumulates(t *testing.T) {
	log := NewErrorLog()

	if log.HasError() {
		t.Error("a fresh log should have no errors")
	}

	log.Push(&TextSpan{StartLine: 1, StartCol: 4}, "unknown name: %s", "x")
	log.Push(&TextSpan{StartLine: 2, StartCol: 0}, "wrong number of arguments")

	if !log.HasError() || len(log.Diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(log.Diags))
	}

	if log.Diags[0].Message != "unknown name: x" {
		t.Errorf("unexpected message: %q", log.Diags[0].Message)
	}

	text := log.Error()
	if !strings.Contains(text, "1:4: unknown name: x") {
		t.Errorf("rendered log should carry positions, got %q", text)
	}
}

func TestErrorLogMerge(t *testing.T) {
	inner := NewErrorLog()
	inner.Push(&TextSpan{StartLine: 3, StartCol: 7}, "unknown name: z")

	outer := NewErrorLog()
	outer.Merge(inner, "lib.bs")

	if len(outer.Diags) != 1 {
		t.Fatalf("expected 1 merged diagnostic, got %d", len(outer.Diags))
	}

	if outer.Diags[0].File != "lib.bs" {
		t.Errorf("merged diagnostics should carry the source file, got %q", outer.Diags[0].File)
	}

	// The source log is not disturbed.
	if inner.Diags[0].File != "" {
		t.Error("merge should copy diagnostics, not retag the source log")
	}
}

func TestSpanOver(t *testing.T) {
	start := &TextSpan{StartLine: 1, StartCol: 2, EndLine: 1, EndCol: 5}
	end := &TextSpan{StartLine: 2, StartCol: 0, EndLine: 2, EndCol: 3}

	over := NewSpanOver(start, end)
	if over.StartLine != 1 || over.StartCol != 2 || over.EndLine != 2 || over.EndCol != 3 {
		t.Errorf("unexpected combined span: %+v", over)
	}
}
