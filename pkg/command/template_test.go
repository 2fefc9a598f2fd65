package command

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      []string
		wantCase  Case
		wantIndex int
	}{
		{
			name:     "plain command",
			raw:      "make test",
			want:     []string{"make", "test"},
			wantCase: NoPath,
		},
		{
			name:      "one path",
			raw:       "go test {}",
			want:      []string{"go", "test", "{}"},
			wantCase:  OnePath,
			wantIndex: 2,
		},
		{
			name:      "quoted words",
			raw:       `sh -c "echo 'a b'" %`,
			want:      []string{"sh", "-c", "echo 'a b'", "%"},
			wantCase:  AllPaths,
			wantIndex: 3,
		},
		{
			name:      "escaped space",
			raw:       `cat my\ file %%`,
			want:      []string{"cat", "my file", "%%"},
			wantCase:  AllPathsQuoted,
			wantIndex: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if got := tmpl.Tokens(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokens() = %q, want %q", got, tt.want)
			}
			if tmpl.Case() != tt.wantCase {
				t.Errorf("Case() = %s, want %s", tmpl.Case(), tt.wantCase)
			}
			if tmpl.PlaceholderIndex() != tt.wantIndex {
				t.Errorf("PlaceholderIndex() = %d, want %d", tmpl.PlaceholderIndex(), tt.wantIndex)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"unbalanced double quote", `echo "hello`, ErrParse},
		{"unbalanced single quote", `echo 'hello`, ErrParse},
		{"empty", "", ErrEmptyCommand},
		{"only whitespace", "   \t ", ErrEmptyCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Parse(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
			}
			if tmpl != nil {
				t.Error("Parse() returned a template alongside an error")
			}
		})
	}

	// An empty command is still a parse failure.
	if _, err := Parse(""); !errors.Is(err, ErrParse) {
		t.Errorf("Parse(\"\") error = %v, want ErrParse", err)
	}
}

func TestFindCase(t *testing.T) {
	tests := []struct {
		name      string
		tokens    []string
		wantCase  Case
		wantIndex int
	}{
		{"no marker", []string{"ls", "-la"}, NoPath, 0},
		{"one path first", []string{"cmd", "{}", "%", "%%"}, OnePath, 1},
		{"one path wins over later percent", []string{"cmd", "-x", "{}", "%"}, OnePath, 2},
		{"quoted before one path", []string{"cmd", "%%", "{}"}, AllPathsQuoted, 1},
		{"quoted before bare percent", []string{"cmd", "%%", "%"}, AllPathsQuoted, 1},
		{"bare percent first", []string{"cmd", "%", "{}"}, AllPaths, 1},
		{"marker inside token", []string{"cmd", "--file={}"}, OnePath, 1},
		{"one path beats quoted in same token", []string{"cmd", "%%{}"}, OnePath, 1},
		{"quoted beats bare in same token", []string{"cmd", "50%%"}, AllPathsQuoted, 1},
		{"executable is placeholder", []string{"%", "x"}, AllPaths, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotCase, gotIndex := findCase(tt.tokens)
			if gotCase != tt.wantCase || gotIndex != tt.wantIndex {
				t.Errorf("findCase(%q) = (%s, %d), want (%s, %d)",
					tt.tokens, gotCase, gotIndex, tt.wantCase, tt.wantIndex)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	roots := []string{"/a", "/b/c"}

	tests := []struct {
		name    string
		raw     string
		current string
		want    []string
	}{
		{
			name: "no path keeps tokens",
			raw:  "make -j4 all",
			want: []string{"make", "-j4", "all"},
		},
		{
			name:    "no path ignores current",
			raw:     "make",
			current: "/a/x",
			want:    []string{"make"},
		},
		{
			name:    "one path",
			raw:     "go test {} -v",
			current: "/a/pkg",
			want:    []string{"go", "test", "/a/pkg", "-v"},
		},
		{
			name: "all paths quoted",
			raw:  "echo %%",
			want: []string{"echo", "/a /b/c"},
		},
		{
			name: "all paths",
			raw:  "echo %",
			want: []string{"echo", "/a", "/b/c"},
		},
		{
			name: "all paths with trailing tokens",
			raw:  "wc -l % --total=always",
			want: []string{"wc", "-l", "/a", "/b/c", "--total=always"},
		},
		{
			name:    "whole token is replaced",
			raw:     "cat --file={}",
			current: "/a/f",
			want:    []string{"cat", "/a/f"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			got, err := tmpl.Resolve(roots, tt.current)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveQuotedDoesNotEscape(t *testing.T) {
	tmpl, err := Parse("echo %%")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got, err := tmpl.Resolve([]string{"/with space", "/b"}, "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	want := []string{"echo", "/with space /b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveMissingCurrent(t *testing.T) {
	tmpl, err := Parse("go vet {}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if _, err := tmpl.Resolve([]string{"/a"}, ""); !errors.Is(err, ErrMissingCurrent) {
		t.Errorf("Resolve() error = %v, want ErrMissingCurrent", err)
	}
}

func TestResolveDoesNotMutateTemplate(t *testing.T) {
	tmpl, err := Parse("echo {}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	args, err := tmpl.Resolve(nil, "/a")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	args[0] = "changed"

	if got := tmpl.Tokens(); got[0] != "echo" || got[1] != "{}" {
		t.Errorf("Tokens() = %q after Resolve, want unchanged", got)
	}
}

func TestCaseString(t *testing.T) {
	tests := []struct {
		kind Case
		want string
	}{
		{NoPath, "no-path"},
		{OnePath, "one-path"},
		{AllPaths, "all-paths"},
		{AllPathsQuoted, "all-paths-quoted"},
		{Case(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Case.String() = %s, want %s", got, tt.want)
		}
	}
}
