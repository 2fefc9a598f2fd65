// Package command turns a user-supplied command line into a reusable
// template with a path placeholder policy.
//
// The command line is split using shell word rules. The first token that
// carries a placeholder marker decides how watched paths are substituted:
//
//	{}   the current path (one argument)
//	%%   all watched roots joined with a space (one argument)
//	%    all watched roots (one argument each)
//
// Example usage:
//
//	tmpl, err := command.Parse("go test {}")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	args, err := tmpl.Resolve(roots, "/src/pkg")
package command

// Case describes which substitution rule a template uses.
type Case int

// Placeholder cases.
const (
	NoPath         Case = iota // No placeholder
	OnePath                    // {} - single current path
	AllPaths                   // % - every watched root, one argument each
	AllPathsQuoted             // %% - every watched root, joined into one argument
)

// String returns a human-readable case name.
func (c Case) String() string {
	switch c {
	case NoPath:
		return "no-path"
	case OnePath:
		return "one-path"
	case AllPaths:
		return "all-paths"
	case AllPathsQuoted:
		return "all-paths-quoted"
	default:
		return "unknown"
	}
}

// Placeholder markers.
const (
	markerOne       = "{}"
	markerAllQuoted = "%%"
	markerAll       = "%"
)
