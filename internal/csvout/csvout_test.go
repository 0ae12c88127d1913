package csvout

import (
	"errors"
	"strings"
	"testing"
	"time"

	"igc2csv/internal/igc"
	"igc2csv/internal/track"
)

func sampleRow() track.Row {
	return track.Row{
		Time: time.Date(2019, time.November, 16, 23, 11, 51, 0, time.UTC),
		Fix: igc.FixRecord{
			Time:     igc.TimeOfDay{Hour: 23, Minute: 11, Second: 51},
			Position: igc.Position{Lat: 2807828, Lng: 7225941},
			AltBaro:  839,
			AltGPS:   950,
			Validity: 'A',
		},
	}
}

func TestWriter_Row(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb, true)
	if err := w.Write(sampleRow()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	want := "time,lat,lng,alt_baro,alt_gps\n2019-11-16 23:11:51,46.797134,120.43235,839,950\n"
	if sb.String() != want {
		t.Fatalf("got=%q want %q", sb.String(), want)
	}
}

func TestWriter_HeaderOnlyWhenEmpty(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb, true)
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	if sb.String() != "time,lat,lng,alt_baro,alt_gps\n" {
		t.Fatalf("got=%q", sb.String())
	}
}

func TestWriter_NoHeader(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb, false)
	r := sampleRow()
	r.Fix.Position.Lng = -r.Fix.Position.Lng
	r.Fix.AltGPS = -12
	if err := w.Write(r); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	want := "2019-11-16 23:11:51,46.797134,-120.43235,839,-12\n"
	if sb.String() != want {
		t.Fatalf("got=%q want %q", sb.String(), want)
	}
}

func TestFormatDegrees(t *testing.T) {
	cases := []struct {
		in   igc.Coordinate
		want string
	}{
		{0, "0"},
		{60000, "1"},
		{-2790000, "-46.5"},
		{2807828, "46.797134"},
	}
	for _, tc := range cases {
		if got := FormatDegrees(tc.in); got != tc.want {
			t.Fatalf("FormatDegrees(%d)=%q want %q", tc.in, got, tc.want)
		}
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_FlushSurfacesError(t *testing.T) {
	w := NewWriter(failWriter{}, true)
	if err := w.Write(sampleRow()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := w.Flush(); err == nil {
		t.Fatalf("expected flush error")
	}
}
