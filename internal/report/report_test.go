package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusLines(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	r := New(&buf)

	r.Banner("Semigroups")
	r.Found("libsemigroups::BMat8", "transpose", "bmat8.cpp", 12)
	r.Possible("libsemigroups::BMat8", "rows", "bmat8.cpp", 40)
	r.Missing("libsemigroups::BMat8", "rank_max")
	r.Skipped("libsemigroups::BMat8", "begin")
	r.FileNotFound("gone.cpp")
	r.ResolveFailed("libsemigroups::Nonexistent")

	out := buf.String()
	assert.Contains(t, out, "checking bindings for Semigroups")
	assert.Contains(t, out, "libsemigroups::BMat8::transpose")
	assert.Contains(t, out, "bmat8.cpp:12:")
	assert.Contains(t, out, "possibly found")
	assert.Contains(t, out, "rank_max not found!")
	assert.Contains(t, out, "skipping")
	assert.Contains(t, out, "file not found: gone.cpp")
	assert.Contains(t, out, `"libsemigroups::Nonexistent"`)
}

func TestExcerptGutter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	r := New(&buf)

	r.Excerpt(".method(\"transpose\",\n        &BMat8::transpose);", 12)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "12")
	assert.Contains(t, lines[1], "13")
	assert.Contains(t, lines[1], "&BMat8::transpose);")
}
