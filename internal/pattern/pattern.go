// Package pattern builds the regular expressions used to detect a member's
// registration in JlCxx binding source. Matching is deliberately textual:
// the binding files are never parsed as C++, so a match is evidence, not
// proof, and an unexpected prefix on the registered name downgrades it to a
// "possible" match via the leading capture group.
package pattern

import (
	"regexp"

	"github.com/semigroups/checksync/internal/translate"
)

// Build returns the pattern detecting the registration of the named member.
// The C++ name is translated to its Julia binding name first. Namespace
// functions and class methods share one shape, since JlCxx registrations
// never carry the C++ namespace prefix. All registrations quote the name,
// so the pattern anchors on the quoted string,
// preceded by .method( — or, for variable-like members, by the constant and
// enum-bit registration calls as well. Capture group 1 holds any word
// characters found between the opening quote and the expected name; a
// non-empty capture marks the match as only a possible one.
func Build(name string, variable bool) *regexp.Regexp {
	quoted := `"(\w*)` + regexp.QuoteMeta(translate.ToJulia(name)) + `"`
	if variable {
		return regexp.MustCompile(`(?:\.method|\.set_const|\.add_bits)\w*\(\s*` + quoted)
	}
	return regexp.MustCompile(`\.method\(\s*` + quoted)
}
