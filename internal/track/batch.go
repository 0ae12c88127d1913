package track

import (
	"context"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"igc2csv/internal/igc"
)

// Parsed is the classification result for one line.
type Parsed struct {
	Record igc.Record
	Err    error
}

// ReadLines loads all of r. Only the batch path needs this; Convert streams.
func ReadLines(r io.Reader) ([]string, error) {
	s := newScanner(r)
	lines := make([]string, 0, 4096)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, scanErr(err)
	}
	return lines, nil
}

// ParseAll classifies lines concurrently using at most workers goroutines
// (0 means GOMAXPROCS). Per-line errors are kept in the result instead of
// aborting so that Resolve can report the earliest one.
func ParseAll(ctx context.Context, lines []string, workers int) ([]Parsed, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]Parsed, len(lines))
	if len(lines) == 0 {
		return out, nil
	}

	chunk := (len(lines) + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(lines); start += chunk {
		start, end := start, min(start+chunk, len(lines))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				rec, err := igc.ClassifyLine(lines[i])
				out[i] = Parsed{Record: rec, Err: err}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Resolve folds parsed lines in order. Its rows, stats and first error match
// what Convert produces for the same input.
func Resolve(parsed []Parsed) ([]Row, Stats, error) {
	var (
		st     Stats
		folder Folder
	)
	rows := make([]Row, 0, len(parsed))
	for i, p := range parsed {
		st.Lines++
		if p.Err != nil {
			return rows, st, &LineError{Line: i + 1, Err: p.Err}
		}
		st.count(p.Record)

		row, ok, err := folder.Step(p.Record)
		if err != nil {
			return rows, st, &LineError{Line: i + 1, Err: err}
		}
		if ok {
			st.addRow(row)
			rows = append(rows, row)
		}
	}
	return rows, st, nil
}

// Collect runs Convert and keeps every row in memory.
func Collect(ctx context.Context, r io.Reader) ([]Row, Stats, error) {
	rows := make([]Row, 0, 4096)
	st, err := Convert(ctx, r, func(row Row) error {
		rows = append(rows, row)
		return nil
	})
	return rows, st, err
}
