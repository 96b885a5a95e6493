// Package doxygen locates and reads Doxygen XML output for libsemigroups
// entities. A Tree resolves fully qualified C++ names to XML files using the
// same filename mangling Doxygen applies, and caches parsed member metadata
// for the lifetime of the run.
package doxygen

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// DefaultNamespace is prepended to unqualified symbol names.
const DefaultNamespace = "libsemigroups"

// Member is the metadata of one documented member, taken from a Doxygen
// memberdef element.
type Member struct {
	Name string
	Kind string // "function", "variable", "typedef", "enum", ...
	Prot string // "public", "protected", "private", or "" when absent
}

// entry holds everything cached for one symbol.
type entry struct {
	path    string // resolved XML file, "" when resolution failed
	members map[string]Member
	order   []string // member names in document order
}

// Tree is a handle on a Doxygen XML output tree. It memoizes both filename
// resolution and parsed members, so repeated queries against the same symbol
// never touch the disk twice. Not safe for concurrent use; the tool is
// single-threaded.
type Tree struct {
	xmlDir  string
	entries map[string]*entry
}

// NewTree returns a Tree reading XML from <libsemigroupsDir>/docs/xml.
func NewTree(libsemigroupsDir string) *Tree {
	return &Tree{
		xmlDir:  filepath.Join(libsemigroupsDir, "docs", "xml"),
		entries: make(map[string]*entry),
	}
}

// Qualify prefixes name with the default namespace unless it is already
// qualified with it.
func Qualify(name string) string {
	if strings.HasPrefix(name, DefaultNamespace+"::") {
		return name
	}
	return DefaultNamespace + "::" + name
}

var upperLetter = regexp.MustCompile(`([A-Z])`)

// Resolve returns the XML file documenting symbol, or ok=false when no
// strategy locates one. Results, including failures, are memoized.
func (t *Tree) Resolve(symbol string) (string, bool) {
	e := t.lookup(symbol)
	return e.path, e.path != ""
}

// filename derives the Doxygen XML filename for symbol, trying in order the
// group-suffix convention, the class/struct/namespace mangled names, and a
// full-text search of the group files. Returns "" when all strategies fail.
func (t *Tree) filename(symbol string) string {
	// Doxygen escapes underscores by doubling them.
	mangled := strings.ReplaceAll(symbol, "_", "__")
	if strings.HasSuffix(mangled, "_group") {
		fname := filepath.Join(t.xmlDir, "group__"+mangled+".xml")
		if isFile(fname) {
			return fname
		}
	}
	mangled = strings.ReplaceAll(mangled, "::", "_1_1")
	mangled = strings.ToLower(upperLetter.ReplaceAllString(mangled, "_$1"))
	for _, kind := range []string{"class", "struct", "namespace"} {
		fname := filepath.Join(t.xmlDir, kind+mangled+".xml")
		if isFile(fname) {
			return fname
		}
	}
	// Grouped overload sets live in aggregate group files; fall back to
	// searching those for the last scope segment.
	segs := strings.Split(mangled, "_1_1")
	needle := regexp.MustCompile(">" + regexp.QuoteMeta(segs[len(segs)-1]) + "<")
	groups, err := filepath.Glob(filepath.Join(t.xmlDir, "group__*.xml"))
	if err != nil {
		return ""
	}
	sort.Strings(groups)
	for _, fname := range groups {
		data, err := os.ReadFile(fname)
		if err != nil {
			continue
		}
		if needle.Match(data) {
			return fname
		}
	}
	return ""
}

// lookup resolves and parses symbol on first access.
func (t *Tree) lookup(symbol string) *entry {
	if e, ok := t.entries[symbol]; ok {
		return e
	}
	e := &entry{path: t.filename(symbol)}
	if e.path != "" {
		e.members, e.order = parseMembers(e.path)
	}
	t.entries[symbol] = e
	return e
}

// parseMembers extracts every memberdef in the file, keyed by name. A
// duplicate name overwrites the earlier entry (overloads share one name and
// one binding-side registration, so any entry is representative here) but
// keeps its original position in the document order.
func parseMembers(path string) (map[string]Member, []string) {
	members := make(map[string]Member)
	var order []string
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return members, order
	}
	for _, md := range doc.FindElements("//memberdef") {
		nameEl := md.FindElement("name")
		if nameEl == nil {
			continue
		}
		name := nameEl.Text()
		if _, seen := members[name]; !seen {
			order = append(order, name)
		}
		members[name] = Member{
			Name: name,
			Kind: md.SelectAttrValue("kind", ""),
			Prot: md.SelectAttrValue("prot", ""),
		}
	}
	return members, order
}

// Members returns the name→metadata mapping for symbol. ok is false iff the
// symbol's documentation file could not be resolved.
func (t *Tree) Members(symbol string) (map[string]Member, bool) {
	e := t.lookup(symbol)
	if e.path == "" {
		return nil, false
	}
	return e.members, true
}

// MemberNames returns the member names of symbol in document order, or nil
// when resolution failed.
func (t *Tree) MemberNames(symbol string) []string {
	return t.lookup(symbol).order
}

// Member returns the metadata for one member of symbol.
func (t *Tree) Member(symbol, name string) (Member, bool) {
	m, ok := t.lookup(symbol).members[name]
	return m, ok
}

// IsNamespace reports whether symbol resolved to a namespace file.
func (t *Tree) IsNamespace(symbol string) bool {
	path, ok := t.Resolve(symbol)
	return ok && strings.Contains(filepath.Base(path), "namespace")
}

// IsPublic reports whether the named member is public. Namespace-scope
// members carry no visibility annotation and are treated as public; anything
// without metadata is conservatively non-public.
func (t *Tree) IsPublic(symbol, name string) bool {
	if t.IsNamespace(symbol) {
		return true
	}
	m, ok := t.Member(symbol, name)
	return ok && m.Prot == "public"
}

// IsTypedef reports whether the named member is a type alias.
func (t *Tree) IsTypedef(symbol, name string) bool {
	m, ok := t.Member(symbol, name)
	return ok && m.Kind == "typedef"
}

// IsVariable reports whether the named member is a data member or constant.
func (t *Tree) IsVariable(symbol, name string) bool {
	m, ok := t.Member(symbol, name)
	return ok && m.Kind == "variable"
}

// IsOperator reports whether name spells an operator overload. The call
// operator is excluded: it binds under a regular name.
func IsOperator(name string) bool {
	return strings.HasPrefix(name, "operator") && name != "operator()"
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
