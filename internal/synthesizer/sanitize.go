package synthesizer

import (
	"regexp"
	"strings"
)

// RE2's \s is ASCII only; the separator classes also cover vertical tab,
// Unicode space separators, line/paragraph separators and BOM.
var (
	rxSeparators        = regexp.MustCompile(`[/\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}-]+`)
	rxSeparatorsAndDots = regexp.MustCompile(`[./\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}-]+`)
	rxNotNameSafe       = regexp.MustCompile(`[^A-Za-z0-9_.]`)
	rxNotNameSafeStrict = regexp.MustCompile(`[^A-Za-z0-9_]`)
	rxUnderscores       = regexp.MustCompile(`_+`)
)

// sanitize reduces s to characters allowed in an object name. The result
// has no leading, trailing or repeated underscores and may be empty.
func (s *Synthesizer) sanitize(raw string) string {
	var out string
	switch s.policy.Sanitize {
	case SanitizeReplaceDots:
		out = rxSeparatorsAndDots.ReplaceAllString(raw, "_")
		out = rxNotNameSafeStrict.ReplaceAllString(out, "")
	default:
		out = rxSeparators.ReplaceAllString(raw, "_")
		out = rxNotNameSafe.ReplaceAllString(out, "")
	}
	out = rxUnderscores.ReplaceAllString(out, "_")
	return strings.Trim(out, "_")
}

// Suffix returns the sanitized name suffix for a create entry.
func (s *Synthesizer) Suffix(entry string) string {
	return s.sanitize(strings.TrimSpace(entry))
}

// ObjectName builds {ZONE}_{TYPE}_{SUFFIX}, upper-cased.
func ObjectName(zone, typ, suffix string) string {
	return strings.ToUpper(zone + "_" + typ + "_" + suffix)
}
