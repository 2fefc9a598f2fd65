package command

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// Template is a parsed command line. It is immutable after Parse.
//
// Invariants:
// - tokens is non-empty; tokens[0] is the executable
// - index is meaningful only when kind != NoPath.
type Template struct {
	tokens []string
	kind   Case
	index  int
}

// markerRule maps a marker to the case it selects.
type markerRule struct {
	marker string
	kind   Case
}

// markerRules is checked in order for every token. More specific markers
// come first so that "%%" is never mistaken for "%".
var markerRules = []markerRule{
	{markerOne, OnePath},
	{markerAllQuoted, AllPathsQuoted},
	{markerAll, AllPaths},
}

// Parse splits raw using shell word rules and detects the placeholder.
//
// Returns ErrParse if raw has unbalanced quotes or a dangling escape, and
// ErrEmptyCommand if raw contains no words.
func Parse(raw string) (*Template, error) {
	tokens, err := shlex.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(tokens) == 0 {
		return nil, ErrEmptyCommand
	}

	kind, index := findCase(tokens)

	return &Template{
		tokens: tokens,
		kind:   kind,
		index:  index,
	}, nil
}

// findCase returns the case and index of the first token carrying a
// marker. Earliest token wins.
func findCase(tokens []string) (Case, int) {
	for i, token := range tokens {
		for _, rule := range markerRules {
			if strings.Contains(token, rule.marker) {
				return rule.kind, i
			}
		}
	}

	return NoPath, 0
}

// Case returns the detected placeholder case.
func (t *Template) Case() Case {
	return t.kind
}

// PlaceholderIndex returns the index of the placeholder token.
// The value is 0 for NoPath templates.
func (t *Template) PlaceholderIndex() int {
	return t.index
}

// Tokens returns a copy of the template tokens.
func (t *Template) Tokens() []string {
	return append([]string(nil), t.tokens...)
}

// String returns the tokens joined with spaces.
func (t *Template) String() string {
	return strings.Join(t.tokens, " ")
}

// Resolve builds the process argument list, executable first.
//
// The placeholder token is replaced as a whole:
//   - OnePath: current, as a single argument (ErrMissingCurrent if empty)
//   - AllPaths: every root as its own argument, in order
//   - AllPathsQuoted: every root joined by a single space, without escaping
//
// Tokens around the placeholder are copied verbatim. Resolve has no side
// effects.
func (t *Template) Resolve(roots []string, current string) ([]string, error) {
	if t.kind == NoPath {
		return t.Tokens(), nil
	}

	args := make([]string, 0, len(t.tokens)+len(roots))
	args = append(args, t.tokens[:t.index]...)

	switch t.kind {
	case OnePath:
		if current == "" {
			return nil, ErrMissingCurrent
		}
		args = append(args, current)
	case AllPaths:
		args = append(args, roots...)
	case AllPathsQuoted:
		// Paths containing spaces are not escaped.
		args = append(args, strings.Join(roots, " "))
	}

	return append(args, t.tokens[t.index+1:]...), nil
}
