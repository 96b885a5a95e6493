// Package report prints the diagnostic stream of checksync: one status line
// per verdict plus syntax-highlighted source excerpts for matches. The
// stream is for humans; nothing here is machine-parseable by contract.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// colorProfile picks the terminal color profile once per run. Colors are
// disabled for non-TTY stdout and when NO_COLOR is set (https://no-color.org);
// FORCE_COLOR overrides both.
func colorProfile() termenv.Profile {
	if os.Getenv("FORCE_COLOR") != "" {
		return termenv.ColorProfile()
	}
	if os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

var profile = colorProfile()

func init() {
	lipgloss.SetColorProfile(profile)
}

var (
	foundStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // green
	possibleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("135")) // purple
	missingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // red
	skipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // yellow
	dimStyle      = lipgloss.NewStyle().Faint(true)
	bannerStyle   = lipgloss.NewStyle().Bold(true)
	gutterStyle   = lipgloss.NewStyle().Faint(true).Width(4).Align(lipgloss.Right)
)

// Reporter writes status lines and excerpts to a single destination.
type Reporter struct {
	w io.Writer
}

// New returns a Reporter writing to w.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Banner prints the startup line naming the binding project being checked.
func (r *Reporter) Banner(project string) {
	fmt.Fprintln(r.w, bannerStyle.Render("checking bindings for "+project))
}

// Found reports a confirmed match.
func (r *Reporter) Found(symbol, member, file string, line int) {
	fmt.Fprintf(r.w, "%s %s in %s\n",
		foundStyle.Render("✓ found"),
		foundStyle.Render(symbol+"::"+member),
		foundStyle.Render(fmt.Sprintf("%s:%d:", file, line)))
}

// Possible reports a match whose registered name carried an unexpected
// prefix, so it may belong to a different or decorated identifier.
func (r *Reporter) Possible(symbol, member, file string, line int) {
	fmt.Fprintf(r.w, "%s %s in %s\n",
		possibleStyle.Render("? possibly found"),
		possibleStyle.Render(symbol+"::"+member),
		possibleStyle.Render(fmt.Sprintf("%s:%d:", file, line)))
}

// Missing reports that no binding file matched the member.
func (r *Reporter) Missing(symbol, member string) {
	fmt.Fprintln(r.w, missingStyle.Render("✗ "+symbol+"::"+member+" not found!"))
}

// Skipped reports a public member that was intentionally excluded from
// checking, so exclusions are visible rather than silent.
func (r *Reporter) Skipped(symbol, member string) {
	fmt.Fprintln(r.w, dimStyle.Render("⚠ skipping ")+skipStyle.Render(symbol+"::"+member)+dimStyle.Render(" . . ."))
}

// FileNotFound reports an unreadable binding source file.
func (r *Reporter) FileNotFound(path string) {
	fmt.Fprintln(r.w, missingStyle.Render("file not found: "+path))
}

// ResolveFailed reports a symbol whose documentation file could not be
// located; the symbol's checking is abandoned.
func (r *Reporter) ResolveFailed(symbol string) {
	fmt.Fprintln(r.w, missingStyle.Render(fmt.Sprintf("can't find the doxygen file for %q, ignoring!", symbol)))
}

// Excerpt prints a source chunk with a line-number gutter, syntax
// highlighted as C++ when the terminal supports color.
func (r *Reporter) Excerpt(code string, startLine int) {
	code = highlight(code)
	for i, line := range strings.Split(code, "\n") {
		fmt.Fprintf(r.w, "%s %s\n", gutterStyle.Render(fmt.Sprint(startLine+i)), line)
	}
}

// highlight runs code through chroma's C++ lexer. On any failure, or when
// colors are off, the code is returned untouched.
func highlight(code string) string {
	if profile == termenv.Ascii {
		return code
	}
	lexer := lexers.Get("cpp")
	if lexer == nil {
		return code
	}
	lexer = chroma.Coalesce(lexer)
	formatter := formatters.Get(formatterName())
	if formatter == nil {
		return code
	}
	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var sb strings.Builder
	if err := formatter.Format(&sb, style, it); err != nil {
		return code
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func formatterName() string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	default:
		return "terminal16"
	}
}
