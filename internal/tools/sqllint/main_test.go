package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLintSQLInlinePackageIsClean(t *testing.T) {
	violations, err := lint([]string{filepath.Join("..", "..", "sqlinline")})
	if err != nil {
		t.Fatalf("lint error: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
}

func TestLintFlagsMissingAndDuplicateMarkers(t *testing.T) {
	dir := t.TempDir()
	src := "package q\n\n" +
		"const QNoMarker = `select id from t where id = $1;`\n\n" +
		"const QFirst = `--sql 11111111-2222-4333-8444-555555555555\nselect 1 from t;`\n\n" +
		"const QSecond = `--sql 11111111-2222-4333-8444-555555555555\ndelete from t;`\n\n" +
		"const Label = \"Select a model\"\n"
	if err := os.WriteFile(filepath.Join(dir, "q.go"), []byte(src), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	violations, err := lint([]string{dir})
	if err != nil {
		t.Fatalf("lint error: %v", err)
	}
	if len(violations) != 2 {
		t.Fatalf("violations = %v, want 2", violations)
	}
	if violations[0].name != "QNoMarker" || !strings.Contains(violations[0].message, "missing") {
		t.Fatalf("first violation = %v", violations[0])
	}
	if violations[1].name != "QSecond" || !strings.Contains(violations[1].message, "QFirst") {
		t.Fatalf("second violation = %v", violations[1])
	}
}
