// Package csvout renders track rows as CSV.
package csvout

import (
	"encoding/csv"
	"io"
	"strconv"

	"igc2csv/internal/igc"
	"igc2csv/internal/track"
)

// TimeLayout renders the naive flight date-time, e.g. "2019-11-16 23:11:51".
const TimeLayout = "2006-01-02 15:04:05"

var Header = []string{"time", "lat", "lng", "alt_baro", "alt_gps"}

type Writer struct {
	w      *csv.Writer
	header bool
	wrote  bool
	rec    []string
}

// NewWriter returns a Writer that emits Header before the first row (or on
// Flush when no row was written) unless header is false.
func NewWriter(w io.Writer, header bool) *Writer {
	return &Writer{w: csv.NewWriter(w), header: header, rec: make([]string, len(Header))}
}

// FormatDegrees renders a coordinate in decimal degrees with float32
// precision and the shortest digits that round-trip.
func FormatDegrees(c igc.Coordinate) string {
	return strconv.FormatFloat(float64(c.Degrees()), 'f', -1, 32)
}

func (cw *Writer) writeHeader() error {
	if cw.wrote {
		return nil
	}
	cw.wrote = true
	if !cw.header {
		return nil
	}
	return cw.w.Write(Header)
}

func (cw *Writer) Write(r track.Row) error {
	if err := cw.writeHeader(); err != nil {
		return err
	}
	cw.rec[0] = r.Time.Format(TimeLayout)
	cw.rec[1] = FormatDegrees(r.Fix.Position.Lat)
	cw.rec[2] = FormatDegrees(r.Fix.Position.Lng)
	cw.rec[3] = strconv.Itoa(r.Fix.AltBaro)
	cw.rec[4] = strconv.Itoa(r.Fix.AltGPS)
	return cw.w.Write(cw.rec)
}

func (cw *Writer) Flush() error {
	if err := cw.writeHeader(); err != nil {
		return err
	}
	cw.w.Flush()
	return cw.w.Error()
}
