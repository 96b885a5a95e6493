package check

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semigroups/checksync/internal/doxygen"
	"github.com/semigroups/checksync/internal/report"
)

const bmat8XML = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<doxygen version="1.9.8">
  <compounddef id="classlibsemigroups_1_1_b_mat8" kind="class" prot="public">
    <compoundname>libsemigroups::BMat8</compoundname>
    <sectiondef kind="public-func">
      <memberdef kind="function" prot="public"><name>BMat8</name></memberdef>
      <memberdef kind="function" prot="public"><name>operator==</name></memberdef>
      <memberdef kind="function" prot="public"><name>operator=</name></memberdef>
      <memberdef kind="function" prot="public"><name>begin</name></memberdef>
      <memberdef kind="function" prot="public"><name>transpose</name></memberdef>
      <memberdef kind="function" prot="public"><name>rows_no_checks</name></memberdef>
      <memberdef kind="function" prot="private"><name>sort_rows</name></memberdef>
    </sectiondef>
    <sectiondef kind="public-type">
      <memberdef kind="typedef" prot="public"><name>value_type</name></memberdef>
    </sectiondef>
    <sectiondef kind="public-static-attrib">
      <memberdef kind="variable" prot="public"><name>rank_max</name></memberdef>
    </sectiondef>
  </compounddef>
</doxygen>
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// fixture builds a documentation tree for libsemigroups::BMat8 plus a
// binding file with the given content, and a checker writing to the
// returned buffer.
func fixture(t *testing.T, bindings string) (*Checker, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "docs", "xml", "classlibsemigroups_1_1_b_mat8.xml"), bmat8XML)
	cpp := filepath.Join(root, "bmat8.cpp")
	writeFile(t, cpp, bindings)

	var buf bytes.Buffer
	return &Checker{
		Tree:     doxygen.NewTree(root),
		Reporter: report.New(&buf),
		CppFiles: []string{cpp},
	}, &buf
}

func TestSymbolFoundExact(t *testing.T) {
	t.Parallel()
	c, buf := fixture(t, `.method("is_equal", &BMat8::operator==);
.method("transpose", &BMat8::transpose);
.set_const("rank_max", BMat8::rank_max);
`)
	c.Symbol("BMat8")

	out := buf.String()
	assert.Contains(t, out, "libsemigroups::BMat8::operator==")
	assert.Contains(t, out, "libsemigroups::BMat8::transpose")
	assert.Contains(t, out, "libsemigroups::BMat8::rank_max")
	assert.NotContains(t, out, "not found!")
}

func TestSymbolMissingMember(t *testing.T) {
	t.Parallel()
	c, buf := fixture(t, `.method("is_equal", &BMat8::operator==);
`)
	c.Symbol("BMat8")

	out := buf.String()
	assert.Contains(t, out, "libsemigroups::BMat8::transpose not found!")
	assert.Contains(t, out, "libsemigroups::BMat8::rank_max not found!")
}

func TestMissingReportedOncePerMember(t *testing.T) {
	t.Parallel()
	c, buf := fixture(t, "nothing here;\n")
	// Two files, neither containing the member: still one verdict.
	second := filepath.Join(t.TempDir(), "extra.cpp")
	writeFile(t, second, "also nothing;\n")
	c.CppFiles = append(c.CppFiles, second)

	c.member("libsemigroups::BMat8", "rank_max")

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "rank_max not found!"))
}

func TestMemberFoundInLaterFile(t *testing.T) {
	t.Parallel()
	c, buf := fixture(t, "nothing here;\n")
	second := filepath.Join(t.TempDir(), "extra.cpp")
	writeFile(t, second, `.method("transpose", &BMat8::transpose);`+"\n")
	c.CppFiles = append(c.CppFiles, second)

	c.member("libsemigroups::BMat8", "transpose")

	out := buf.String()
	assert.Contains(t, out, "libsemigroups::BMat8::transpose")
	assert.NotContains(t, out, "not found!")
}

func TestSkipConventions(t *testing.T) {
	t.Parallel()
	c, buf := fixture(t, `.method("begin", &BMat8::begin);
`)
	// begin is skipped even though a binding exists and it is public.
	c.member("libsemigroups::BMat8", "begin")
	// Constructors, assignment, typedefs, _no_checks: skipped.
	c.member("libsemigroups::BMat8", "BMat8")
	c.member("libsemigroups::BMat8", "operator=")
	c.member("libsemigroups::BMat8", "value_type")
	c.member("libsemigroups::BMat8", "rows_no_checks")

	out := buf.String()
	assert.Equal(t, 5, strings.Count(out, "skipping"))
	assert.NotContains(t, out, "not found!")
	assert.NotContains(t, out, "begin in")
}

func TestSkipPrivateIsSilent(t *testing.T) {
	t.Parallel()
	c, buf := fixture(t, "nothing;\n")
	c.member("libsemigroups::BMat8", "sort_rows")

	out := buf.String()
	assert.NotContains(t, out, "skipping", "non-public members are dropped without notice")
	assert.NotContains(t, out, "not found!")
}

func TestPossibleMatch(t *testing.T) {
	t.Parallel()
	c, buf := fixture(t, `.method("bmat8_transpose", &BMat8::transpose);
`)
	c.member("libsemigroups::BMat8", "transpose")

	out := buf.String()
	assert.Contains(t, out, "possibly found")
	assert.NotContains(t, out, "not found!")
}

func TestFileNotFoundContinues(t *testing.T) {
	t.Parallel()
	c, buf := fixture(t, `.method("transpose", &BMat8::transpose);
`)
	missing := filepath.Join(t.TempDir(), "gone.cpp")
	c.CppFiles = append([]string{missing}, c.CppFiles...)

	c.member("libsemigroups::BMat8", "transpose")

	out := buf.String()
	assert.Contains(t, out, "file not found: "+missing)
	assert.Contains(t, out, "libsemigroups::BMat8::transpose")
	assert.NotContains(t, out, "not found!")
}

func TestSymbolResolveFailure(t *testing.T) {
	t.Parallel()
	c, buf := fixture(t, "nothing;\n")
	c.Symbol("Nonexistent")

	out := buf.String()
	assert.Contains(t, out, `"libsemigroups::Nonexistent"`)
	assert.Contains(t, out, "ignoring")
	assert.NotContains(t, out, "not found!")
}

func TestConstructorHeuristicSuffix(t *testing.T) {
	t.Parallel()
	c, _ := fixture(t, "nothing;\n")
	// Any non-empty suffix of the symbol name is treated as a constructor.
	assert.True(t, c.shouldSkip("libsemigroups::BMat8", "BMat8"))
	assert.True(t, c.shouldSkip("libsemigroups::BMat8", "Mat8"))
}
