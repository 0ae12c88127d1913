package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"igc2csv/internal/config"
)

const version = "1.0"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

type options struct {
	configPath string
	parallel   bool
	summary    bool
	replay     bool
	input      string
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		opts        options
		showVersion bool
	)
	fs := flag.NewFlagSet("igc2csv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to YAML config (optional)")
	fs.BoolVar(&opts.parallel, "parallel", false, "Classify lines concurrently, then fold in order")
	fs.BoolVar(&opts.summary, "summary", false, "Print record statistics instead of CSV")
	fs.BoolVar(&opts.replay, "replay", false, "Play the track back in real time to the configured sinks")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: igc2csv [flags] INPUT\n\nINPUT is an IGC file (optionally .zst compressed) or - for stdin.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if showVersion {
		fmt.Fprintf(stdout, "igc2csv %s\n", version)
		return 0
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	opts.input = fs.Arg(0)

	logger := log.New(stderr, "igc2csv: ", 0)

	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			logger.Printf("config load failed: %v", err)
			return 1
		}
	}
	if opts.summary && opts.replay {
		logger.Printf("-summary and -replay cannot be combined")
		return 2
	}

	var err error
	switch {
	case opts.summary:
		err = printSummary(ctx, opts, cfg, stdin, stdout)
	case opts.replay:
		err = replayTrack(ctx, opts, cfg, stdin, logger)
	default:
		err = convertCSV(ctx, opts, cfg, stdin, stdout)
	}
	if err != nil {
		logger.Printf("%s: %v", opts.input, err)
		return 1
	}
	return 0
}
