package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"uninter/interpreter-go/pkg/driver"
	"uninter/interpreter-go/pkg/interpreter"
)

const (
	appName        = "uninter"
	cliToolVersion = "uninter-cli 0.1.0"

	// Evaluated when no file argument is given and no manifest declares
	// an entry.
	defaultSourcePath = "source.rinha.json"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return runEntry(nil, stdout, stderr)
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage(stderr)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return 0
	case "repl":
		return runRepl(args[1:], stdout, stderr)
	case "run":
		return runEntry(args[1:], stdout, stderr)
	default:
		return runEntry(args, stdout, stderr)
	}
}

func runEntry(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("run", flag.ContinueOnError)
	flags.SetOutput(stderr)
	maxDepth := flags.Int("max-depth", 0, "evaluation depth limit (0 uses manifest or default)")
	verbose := flags.Bool("verbose", false, "enable debug logging")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() > 1 {
		fmt.Fprintf(stderr, "%s: unexpected arguments after %s\n", appName, flags.Arg(0))
		return 2
	}

	logger := newLogger(stderr, *verbose)

	path := flags.Arg(0)
	manifest := discoverManifest(path, logger)
	if path == "" {
		if manifest != nil && manifest.Entry != "" {
			entry, err := manifest.EntryPath()
			if err != nil {
				reportError(stderr, err)
				return 1
			}
			path = entry
		} else {
			path = defaultSourcePath
		}
	}

	depth := *maxDepth
	if depth == 0 && manifest != nil {
		depth = manifest.Options.MaxDepth
	}

	logger.Debug().Str("path", path).Int("max_depth", depth).Msg("loading program")

	program, err := driver.Load(path)
	if err != nil {
		reportError(stderr, err)
		return 1
	}

	interp := interpreter.New(
		interpreter.WithStdout(stdout),
		interpreter.WithLogger(logger),
		interpreter.WithMaxDepth(depth),
	)
	if _, err := interp.EvaluateProgram(program); err != nil {
		reportRuntimeError(stderr, err)
		return 1
	}
	return 0
}

// discoverManifest looks for uninter.yml next to the program (or from the
// working directory when no path was given). A missing manifest is not an
// error; a broken one is only logged, since the file argument still wins.
func discoverManifest(path string, logger zerolog.Logger) *driver.Manifest {
	start := "."
	if path != "" {
		start = filepath.Dir(path)
	}
	manifestPath, err := driver.FindManifest(start)
	if err != nil {
		if !errors.Is(err, driver.ErrManifestNotFound) {
			logger.Warn().Err(err).Msg("manifest lookup failed")
		}
		return nil
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		logger.Warn().Err(err).Msg("ignoring unreadable manifest")
		return nil
	}
	logger.Debug().Str("manifest", manifestPath).Msg("manifest loaded")
	return manifest
}

func newLogger(stderr io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()
}

func reportError(stderr io.Writer, err error) {
	color.New(color.FgRed).Fprintf(stderr, "error: ")
	fmt.Fprintln(stderr, err.Error())
}

func reportRuntimeError(stderr io.Writer, err error) {
	color.New(color.FgRed).Fprintf(stderr, "runtime error: ")
	fmt.Fprintln(stderr, err.Error())
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s [run] [flags] [file.rinha.json]   Evaluate a JSON-encoded program (default %s)\n", appName, defaultSourcePath)
	fmt.Fprintf(w, "  %s repl                              Evaluate JSON expressions interactively\n", appName)
	fmt.Fprintf(w, "  %s version                           Print the tool version\n", appName)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  --max-depth N   evaluation depth limit")
	fmt.Fprintln(w, "  --verbose       enable debug logging")
}
