// checksync reports libsemigroups API entities that are missing from the
// Semigroups.jl JlCxx bindings. It reads the Doxygen XML for the requested
// classes or namespaces and searches the binding sources for each documented
// member's registration.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/semigroups/checksync/internal/check"
	"github.com/semigroups/checksync/internal/discover"
	"github.com/semigroups/checksync/internal/doxygen"
	"github.com/semigroups/checksync/internal/report"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("checksync", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		libsemigroupsDir string
		cppFiles         string
		showVersion      bool
	)

	fs.StringVar(&libsemigroupsDir, "libsemigroups-dir", "", "path to the libsemigroups checkout (required)")
	fs.StringVar(&cppFiles, "cpp-files", "", "comma-separated JlCxx cpp files to check (default: discovered)")
	fs.BoolVar(&showVersion, "V", false, "show version and exit")
	fs.BoolVar(&showVersion, "version", false, "show version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: checksync [flags] name...

Check which documented members of the named libsemigroups classes, structs,
or namespaces have no registration in the Semigroups.jl JlCxx bindings.
Must be run from the Semigroups.jl root directory.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(reorderArgs(args)); err != nil {
		return err
	}

	if showVersion {
		_, _ = fmt.Fprintf(stdout, "checksync %s\n", version)
		return nil
	}

	project, err := readProject(".")
	if err != nil {
		return err
	}

	if libsemigroupsDir == "" {
		return fmt.Errorf("the -libsemigroups-dir flag is required")
	}
	info, err := os.Stat(libsemigroupsDir)
	if err != nil {
		return fmt.Errorf("libsemigroups dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", libsemigroupsDir)
	}

	if fs.NArg() == 0 {
		return fmt.Errorf("no class or namespace names given")
	}

	var files []string
	if cppFiles != "" {
		for _, f := range strings.Split(cppFiles, ",") {
			if f = strings.TrimSpace(f); f != "" {
				files = append(files, f)
			}
		}
	} else {
		files, err = discover.CppFiles(".")
		if err != nil {
			return fmt.Errorf("discovering cpp files: %w", err)
		}
		if len(files) == 0 {
			return fmt.Errorf("no cpp files found; pass them with -cpp-files")
		}
	}

	reporter := report.New(stdout)
	reporter.Banner(project)

	checker := &check.Checker{
		Tree:     doxygen.NewTree(libsemigroupsDir),
		Reporter: reporter,
		CppFiles: files,
	}
	for _, name := range fs.Args() {
		checker.Symbol(name)
	}

	// Diagnostics are the product; a completed run exits 0 even when
	// members were reported missing.
	return nil
}

// readProject decodes the Project.toml manifest in dir and returns the
// project name. A missing or undecodable manifest means we are not at the
// root of a Julia binding project, which is fatal.
func readProject(dir string) (string, error) {
	var manifest struct {
		Name string `toml:"name"`
	}
	path := filepath.Join(dir, "Project.toml")
	if _, err := toml.DecodeFile(path, &manifest); err != nil {
		return "", fmt.Errorf("must be run from the Semigroups.jl root directory (%w)", err)
	}
	if manifest.Name == "" {
		return "", fmt.Errorf("must be run from the Semigroups.jl root directory (Project.toml has no name)")
	}
	return manifest.Name, nil
}

// flagsWithValue lists flags that take a value argument.
var flagsWithValue = map[string]bool{
	"-libsemigroups-dir": true, "--libsemigroups-dir": true,
	"-cpp-files": true, "--cpp-files": true,
}

// reorderArgs moves positional arguments after all flags so Go's flag package
// can parse them correctly (it stops at the first non-flag arg).
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(args[i]) > 0 && args[i][0] == '-' {
			flags = append(flags, args[i])
			if flagsWithValue[args[i]] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, args[i])
		}
	}
	return append(flags, positional...)
}
