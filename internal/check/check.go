// Package check drives the binding-coverage check: for each requested
// symbol it loads the documented members, filters out the ones bindings are
// not expected to cover, and searches the binding sources for the rest.
package check

import (
	"strings"

	"github.com/semigroups/checksync/internal/doxygen"
	"github.com/semigroups/checksync/internal/pattern"
	"github.com/semigroups/checksync/internal/report"
	"github.com/semigroups/checksync/internal/search"
)

// Checker checks one documentation tree against one set of binding files.
type Checker struct {
	Tree     *doxygen.Tree
	Reporter *report.Reporter
	CppFiles []string
}

// Symbol checks every documented member of the named class, struct, or
// namespace. Unqualified names are taken to live in the libsemigroups
// namespace. A symbol whose documentation cannot be located is reported and
// abandoned.
func (c *Checker) Symbol(name string) {
	symbol := doxygen.Qualify(name)
	if _, ok := c.Tree.Members(symbol); !ok {
		c.Reporter.ResolveFailed(symbol)
		return
	}
	for _, member := range c.Tree.MemberNames(symbol) {
		if member == symbol {
			continue
		}
		c.member(symbol, member)
	}
}

// iteratorPrefixes are the iterator-protocol accessors; bindings expose
// iteration through Julia's own interface instead.
var iteratorPrefixes = []string{"cend", "end", "cbegin", "begin"}

// shouldSkip decides whether a member is exempt from binding checks. A
// member skipped despite being public is reported, so intentional
// exclusions stay visible.
func (c *Checker) shouldSkip(symbol, member string) bool {
	skip := strings.HasSuffix(member, "_no_checks") ||
		hasAnyPrefix(member, iteratorPrefixes) ||
		strings.HasPrefix(member, "_") ||
		strings.HasSuffix(member, "_type") ||
		strings.Contains(member, "iterator") ||
		!c.Tree.IsPublic(symbol, member) ||
		strings.HasSuffix(symbol, member) || // constructors
		member == "operator=" ||
		member == "operator<<" ||
		c.Tree.IsTypedef(symbol, member)
	if skip && c.Tree.IsPublic(symbol, member) {
		c.Reporter.Skipped(symbol, member)
	}
	return skip
}

// member runs the search for one member across every binding file. Each
// match is reported as it is found; when no file matched at all, a single
// missing verdict is reported after the last file. An unreadable file is
// reported and the remaining files are still tried.
func (c *Checker) member(symbol, member string) {
	if c.shouldSkip(symbol, member) {
		return
	}
	re := pattern.Build(member, c.Tree.IsVariable(symbol, member))
	found := false
	for _, path := range c.CppFiles {
		matches, err := search.InFile(re, path)
		if err != nil {
			c.Reporter.FileNotFound(path)
			continue
		}
		for _, m := range matches {
			found = true
			if m.Exact {
				c.Reporter.Found(symbol, member, m.File, m.Line)
			} else {
				c.Reporter.Possible(symbol, member, m.File, m.Line)
			}
			c.Reporter.Excerpt(m.Excerpt, m.Line)
		}
	}
	if !found {
		c.Reporter.Missing(symbol, member)
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
