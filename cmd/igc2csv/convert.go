package main

import (
	"context"
	"io"

	"igc2csv/internal/config"
	"igc2csv/internal/csvout"
	"igc2csv/internal/source"
	"igc2csv/internal/track"
)

func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "-" {
		return source.NewReader(io.NopCloser(stdin))
	}
	return source.Open(path)
}

// readRows reads the whole track into memory, classifying in parallel when asked.
func readRows(ctx context.Context, in io.Reader, parallel bool, workers int) ([]track.Row, track.Stats, error) {
	if !parallel {
		return track.Collect(ctx, in)
	}

	lines, err := track.ReadLines(in)
	if err != nil {
		return nil, track.Stats{}, err
	}
	parsed, err := track.ParseAll(ctx, lines, workers)
	if err != nil {
		return nil, track.Stats{}, err
	}
	return track.Resolve(parsed)
}

func loadRows(ctx context.Context, opts options, cfg config.Config, stdin io.Reader) ([]track.Row, track.Stats, error) {
	in, err := openInput(opts.input, stdin)
	if err != nil {
		return nil, track.Stats{}, err
	}
	defer in.Close()
	return readRows(ctx, in, opts.parallel, cfg.Convert.Workers)
}

// convertCSV writes one CSV row per fix. Rows produced before a failure are
// still flushed to out.
func convertCSV(ctx context.Context, opts options, cfg config.Config, stdin io.Reader, out io.Writer) error {
	in, err := openInput(opts.input, stdin)
	if err != nil {
		return err
	}
	defer in.Close()

	w := csvout.NewWriter(out, cfg.Convert.Header)
	var convErr error
	if opts.parallel {
		var rows []track.Row
		rows, _, convErr = readRows(ctx, in, true, cfg.Convert.Workers)
		for _, r := range rows {
			if err := w.Write(r); err != nil {
				return err
			}
		}
	} else {
		_, convErr = track.Convert(ctx, in, w.Write)
	}

	if err := w.Flush(); err != nil && convErr == nil {
		return err
	}
	return convErr
}
