// Package main is the entry point for hxmotion, a word motion viewer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/hxmotion/internal/app"
	"github.com/dshills/hxmotion/internal/config"
	"github.com/dshills/hxmotion/internal/motion"
	"github.com/dshills/hxmotion/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	app     app.Options
	motions string
	count   int
	list    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cli, code, done := parseFlags(args, stderr)
	if done {
		return code
	}

	if cli.list {
		for _, k := range motion.Kinds() {
			fmt.Fprintf(stdout, "%s\t%s\n", k.Key(), k)
		}
		return 0
	}

	batch := cli.motions != ""
	if cli.app.File == "-" || (cli.app.File == "" && batch && !isTerminal(stdin)) {
		data, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error: reading stdin: %v\n", err)
			return 1
		}
		cli.app.File = ""
		cli.app.Text = string(data)
	}

	application, err := app.New(cli.app)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if batch {
		return runBatch(application, cli, stdout, stderr)
	}
	return runInteractive(application, stderr)
}

// runBatch runs the motion list and prints one landing per line.
func runBatch(application *app.Application, cli cliOptions, stdout, stderr io.Writer) int {
	names := strings.Split(cli.motions, ",")
	landings, err := application.RunMotions(names, cli.count)
	for _, l := range landings {
		fmt.Fprintf(stdout, "%s\t%s\n", l.Kind.Key(), l)
	}
	if sum, ok := application.DispatchStats(); ok {
		fmt.Fprintf(stderr, "stats: %s\n", sum)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runInteractive(application *app.Application, stderr io.Writer) int {
	screen, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx, screen); err != nil {
		if errors.Is(err, app.ErrQuit) || errors.Is(err, context.Canceled) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags returns the parsed options. When done is true the process
// should exit with code.
func parseFlags(args []string, stderr io.Writer) (cli cliOptions, code int, done bool) {
	fs := flag.NewFlagSet("hxmotion", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var showVersion bool
	opts := &cli.app

	fs.StringVar(&opts.ConfigPath, "config", config.DefaultFileName, "Path to configuration file")
	fs.StringVar(&opts.ConfigPath, "c", config.DefaultFileName, "Path to configuration file (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config")
	fs.StringVar(&opts.FileType, "filetype", "", "Language of the text (detected from the file name by default)")
	fs.StringVar(&opts.ScriptPath, "lua", "", "Lua script to load at startup")
	fs.BoolVar(&opts.WatchConfig, "watch", false, "Reload the configuration file when it changes")
	fs.BoolVar(&opts.Stats, "stats", false, "Report dispatch statistics on exit")
	fs.StringVar(&cli.motions, "motions", "", "Comma-separated motions to run without a terminal (e.g. w,w,b or next_word_end)")
	fs.IntVar(&cli.count, "count", 1, "Repeat count for each motion")
	fs.BoolVar(&cli.list, "list", false, "List motion keys and names")
	fs.BoolVar(&showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "hxmotion - word motions over a file\n\n")
		fmt.Fprintf(stderr, "Usage: hxmotion [options] [file]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  hxmotion main.go                 Browse a file with w/b/e/W/B/E\n")
		fmt.Fprintf(stderr, "  hxmotion -motions w,w,e main.go  Print where each motion lands\n")
		fmt.Fprintf(stderr, "  echo 'foo.bar' | hxmotion -motions w\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cli, 0, true
		}
		return cli, 2, true
	}

	if showVersion {
		fmt.Fprintf(stderr, "hxmotion %s\n", version)
		fmt.Fprintf(stderr, "Commit: %s\n", commit)
		fmt.Fprintf(stderr, "Built: %s\n", date)
		return cli, 0, true
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		return cli, 1, true
	}
	if cli.count < 1 {
		fmt.Fprintf(stderr, "Error: count must be at least 1\n")
		return cli, 1, true
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.File = fs.Arg(0)
	default:
		fmt.Fprintf(stderr, "Error: expected at most one file\n")
		return cli, 1, true
	}
	return cli, 0, false
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
