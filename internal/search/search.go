// Package search scans binding source files for pattern matches.
package search

import (
	"os"
	"regexp"
	"strings"
)

// Match is one occurrence of a pattern in a binding source file.
type Match struct {
	File    string
	Line    int    // 1-based line of the match start
	Excerpt string // the registration call, one or two lines
	Exact   bool   // false when the prefix capture group was non-empty
}

// StripComments removes line comments: everything from the first // on each
// line is dropped, leaving any code before the marker in place. Block
// comments are left alone; the binding sources only use line comments.
func StripComments(src string) string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		if pos := strings.Index(line, "//"); pos != -1 {
			lines[i] = line[:pos]
		}
	}
	return strings.Join(lines, "\n")
}

// InFile returns every non-overlapping match of re in the named file, with
// comments stripped first. The search runs over the whole text, so a match
// may span line boundaries. The only error returned is a failure to read
// the file.
func InFile(re *regexp.Regexp, path string) ([]Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := StripComments(string(data))

	var matches []Match
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[0], loc[1]
		matches = append(matches, Match{
			File:    path,
			Line:    strings.Count(text[:start], "\n") + 1,
			Excerpt: excerpt(text, start, end),
			Exact:   loc[2] >= 0 && loc[3] == loc[2],
		})
	}
	return matches, nil
}

// excerpt cuts the display chunk for a match: from the match start to the
// next line boundary, extended by one more line when no statement
// terminator was seen, since registration calls often wrap onto a second
// line.
func excerpt(text string, start, end int) string {
	stop := lineEnd(text, end+1)
	chunk := text[start:stop]
	if !strings.Contains(chunk, ";") {
		chunk = text[start:lineEnd(text, stop+1)]
	}
	return chunk
}

// lineEnd returns the index of the first newline at or after from, or the
// end of text.
func lineEnd(text string, from int) int {
	if from >= len(text) {
		return len(text)
	}
	if i := strings.Index(text[from:], "\n"); i >= 0 {
		return from + i
	}
	return len(text)
}
