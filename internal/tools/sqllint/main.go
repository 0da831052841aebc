// Command sqllint checks that every SQL string constant starts with a
// "--sql <uuid>" marker and that no marker is reused. The runner logs queries
// by marker, so a duplicate would make two queries indistinguishable.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	sqlKeywordPattern = regexp.MustCompile(`(?i)\b(select|insert|update|delete|with|create)\b`)
	uuidMarkerPattern = regexp.MustCompile(`^--sql [0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

type violation struct {
	file    string
	name    string
	line    int
	message string
}

func (v violation) String() string {
	return fmt.Sprintf("%s:%d %s (%s)", v.file, v.line, v.message, v.name)
}

func main() {
	flag.Parse()
	targets := flag.Args()
	if len(targets) == 0 {
		targets = []string{"."}
	}

	violations, err := lint(targets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sqllint: %v\n", err)
		os.Exit(1)
	}
	if len(violations) > 0 {
		fmt.Fprintln(os.Stderr, "sqllint: SQL marker violations")
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "  %s\n", v)
		}
		os.Exit(1)
	}
}

func lint(targets []string) ([]violation, error) {
	var violations []violation
	seen := make(map[string]violation)

	visit := func(path string) error {
		vs, err := lintFile(path, seen)
		if err != nil {
			return err
		}
		violations = append(violations, vs...)
		return nil
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if filepath.Ext(target) == ".go" {
				if err := visit(target); err != nil {
					return nil, err
				}
			}
			continue
		}
		err = filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != target && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "testdata") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") {
				return nil
			}
			return visit(path)
		})
		if err != nil {
			return nil, err
		}
	}
	return violations, nil
}

func lintFile(path string, seen map[string]violation) ([]violation, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	var violations []violation
	ast.Inspect(file, func(n ast.Node) bool {
		vs, ok := n.(*ast.ValueSpec)
		if !ok {
			return true
		}
		for _, value := range vs.Values {
			bl, ok := value.(*ast.BasicLit)
			if !ok || bl.Kind != token.STRING {
				continue
			}
			raw, err := unquote(bl.Value)
			if err != nil || !looksLikeSQL(raw) {
				continue
			}
			at := violation{file: path, line: fset.Position(bl.Pos()).Line, name: joinNames(vs.Names)}
			marker := firstLine(raw)
			if !uuidMarkerPattern.MatchString(marker) {
				at.message = "missing or invalid --sql <uuid> marker"
				violations = append(violations, at)
				continue
			}
			if prev, dup := seen[marker]; dup {
				at.message = fmt.Sprintf("marker already used by %s at %s:%d", prev.name, prev.file, prev.line)
				violations = append(violations, at)
				continue
			}
			seen[marker] = at
		}
		return true
	})
	return violations, nil
}

// looksLikeSQL needs a keyword and either a marker or a FROM/INTO/TABLE
// clause, so prose constants that mention "select" are ignored.
func looksLikeSQL(s string) bool {
	if strings.HasPrefix(strings.TrimSpace(s), "--sql") {
		return true
	}
	if !sqlKeywordPattern.MatchString(s) {
		return false
	}
	lower := strings.ToLower(s)
	return strings.Contains(lower, " from ") || strings.Contains(lower, " into ") || strings.Contains(lower, " table ")
}

func firstLine(s string) string {
	s = strings.TrimLeft(s, "\n\r \t")
	if idx := strings.IndexAny(s, "\n\r"); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return strings.TrimSpace(s)
}

func unquote(v string) (string, error) {
	if len(v) == 0 {
		return v, nil
	}
	if v[0] == '`' {
		return v[1 : len(v)-1], nil
	}
	return strconv.Unquote(v)
}

func joinNames(idents []*ast.Ident) string {
	parts := make([]string, 0, len(idents))
	for _, ident := range idents {
		if ident == nil {
			continue
		}
		parts = append(parts, ident.Name)
	}
	return strings.Join(parts, ",")
}
