package track

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"igc2csv/internal/igc"
)

// ErrNoFlightDate is returned when a fix appears before any HFDTE header.
var ErrNoFlightDate = errors.New("fix record before flight date header")

// Row is a fix resolved to an absolute (naive, UTC-labelled) timestamp.
type Row struct {
	Time time.Time
	Fix  igc.FixRecord
}

// LineError attaches the 1-based input line number to a record error.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Folder carries the only state that spans lines: the last flight date seen.
// The zero value has no date.
type Folder struct {
	date    igc.Date
	hasDate bool
}

// Date returns the current flight date, if any.
func (f *Folder) Date() (igc.Date, bool) {
	return f.date, f.hasDate
}

// Step consumes one classified record. It returns ok=true with a row for
// every fix; DTE headers overwrite the date; everything else is a no-op.
func (f *Folder) Step(rec igc.Record) (Row, bool, error) {
	switch r := rec.(type) {
	case igc.HeaderRecord:
		if r.Kind == igc.HeaderDate {
			f.date = r.Date
			f.hasDate = true
		}
		return Row{}, false, nil
	case igc.FixRecord:
		if !f.hasDate {
			return Row{}, false, ErrNoFlightDate
		}
		return Row{Time: f.date.At(r.Time), Fix: r}, true, nil
	default:
		return Row{}, false, nil
	}
}

// Stats summarizes one conversion.
type Stats struct {
	Lines   int
	Headers int
	Fixes   int
	Other   int

	First time.Time
	Last  time.Time

	MinAltBaro int
	MaxAltBaro int
	MinAltGPS  int
	MaxAltGPS  int
}

func (s *Stats) count(rec igc.Record) {
	switch rec.(type) {
	case igc.HeaderRecord:
		s.Headers++
	case igc.FixRecord:
		s.Fixes++
	default:
		s.Other++
	}
}

func (s *Stats) addRow(r Row) {
	if s.First.IsZero() {
		s.First = r.Time
		s.MinAltBaro, s.MaxAltBaro = r.Fix.AltBaro, r.Fix.AltBaro
		s.MinAltGPS, s.MaxAltGPS = r.Fix.AltGPS, r.Fix.AltGPS
	}
	s.Last = r.Time
	s.MinAltBaro = min(s.MinAltBaro, r.Fix.AltBaro)
	s.MaxAltBaro = max(s.MaxAltBaro, r.Fix.AltBaro)
	s.MinAltGPS = min(s.MinAltGPS, r.Fix.AltGPS)
	s.MaxAltGPS = max(s.MaxAltGPS, r.Fix.AltGPS)
}

// Duration is the time between the first and last row.
func (s Stats) Duration() time.Duration {
	if s.First.IsZero() {
		return 0
	}
	return s.Last.Sub(s.First)
}

// maxLineSize bounds a single input line. B records with many extensions
// stay well below this.
const maxLineSize = 1024 * 1024

func newScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4*1024), maxLineSize)
	return s
}

func scanErr(err error) error {
	if errors.Is(err, bufio.ErrTooLong) {
		return fmt.Errorf("read: line exceeds %d bytes: %w", maxLineSize, err)
	}
	return fmt.Errorf("read: %w", err)
}

// Convert streams r line by line, calling emit for every resolved fix. It
// stops at the first malformed record, missing flight date, emit error or
// context cancellation.
func Convert(ctx context.Context, r io.Reader, emit func(Row) error) (Stats, error) {
	var (
		st     Stats
		folder Folder
	)
	s := newScanner(r)
	for s.Scan() {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		st.Lines++

		rec, err := igc.ClassifyLine(s.Text())
		if err != nil {
			return st, &LineError{Line: st.Lines, Err: err}
		}
		st.count(rec)

		row, ok, err := folder.Step(rec)
		if err != nil {
			return st, &LineError{Line: st.Lines, Err: err}
		}
		if !ok {
			continue
		}
		st.addRow(row)
		if err := emit(row); err != nil {
			return st, err
		}
	}
	if err := s.Err(); err != nil {
		return st, scanErr(err)
	}
	return st, nil
}
