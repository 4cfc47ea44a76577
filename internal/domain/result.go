package domain

import "strings"

const (
	// CommentMarker starts every line that is not a directive.
	CommentMarker = "#"
	// SkipMarker starts the comment written in place of a skipped entry.
	SkipMarker = "# Skipping"
)

// Outcome summarises a result for the caller.
type Outcome string

const (
	// OutcomeNothing means no directive was produced.
	OutcomeNothing Outcome = "nothing"
	// OutcomePartial means directives were produced but some entries were skipped.
	OutcomePartial Outcome = "partial"
	// OutcomeFull means directives were produced and nothing was skipped.
	OutcomeFull Outcome = "full"
)

// Result is the ordered sequence of output lines. Blank lines separate
// sections and are neither directives nor comments.
type Result struct {
	Lines []string `json:"lines"`
}

// Text joins the lines with newlines, ready to paste into a CLI session.
func (r Result) Text() string {
	return strings.Join(r.Lines, "\n")
}

// IsComment reports whether a line is a comment line.
func IsComment(line string) bool {
	return strings.HasPrefix(line, CommentMarker)
}

// Directives returns the non-blank, non-comment lines.
func (r Result) Directives() []string {
	var out []string
	for _, line := range r.Lines {
		if line != "" && !IsComment(line) {
			out = append(out, line)
		}
	}
	return out
}

// Comments returns the comment lines.
func (r Result) Comments() []string {
	var out []string
	for _, line := range r.Lines {
		if IsComment(line) {
			out = append(out, line)
		}
	}
	return out
}

// Skipped returns the skip comments, one per entry that produced no object.
func (r Result) Skipped() []string {
	var out []string
	for _, line := range r.Lines {
		if strings.HasPrefix(line, SkipMarker) {
			out = append(out, line)
		}
	}
	return out
}

// Outcome classifies the result by scanning its lines.
func (r Result) Outcome() Outcome {
	if len(r.Directives()) == 0 {
		return OutcomeNothing
	}
	if len(r.Skipped()) > 0 {
		return OutcomePartial
	}
	return OutcomeFull
}
