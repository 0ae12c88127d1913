package igc

import (
	"errors"
	"testing"
	"time"
)

const sampleFix = "B2311514647828N12025941WA0083900950"

func TestClassifyFix(t *testing.T) {
	got, err := ClassifyFix(sampleFix)
	if err != nil {
		t.Fatalf("ClassifyFix() error: %v", err)
	}
	want := FixRecord{
		Time: TimeOfDay{Hour: 23, Minute: 11, Second: 51},
		Position: Position{
			Lat: 46*60000 + 47828,
			Lng: 120*60000 + 25941,
		},
		AltBaro:  839,
		AltGPS:   950,
		Validity: 'A',
	}
	if got != want {
		t.Fatalf("ClassifyFix()=%+v want %+v", got, want)
	}
	if got.Position.Lat != 2807828 || got.Position.Lng != 7225941 {
		t.Fatalf("lat=%d lng=%d", got.Position.Lat, got.Position.Lng)
	}
}

func TestClassifyFix_IgnoresExtensions(t *testing.T) {
	got, err := ClassifyFix(sampleFix + "0120359")
	if err != nil {
		t.Fatalf("ClassifyFix() error: %v", err)
	}
	if got.AltGPS != 950 {
		t.Fatalf("AltGPS=%d want 950", got.AltGPS)
	}
}

func TestClassifyFix_ValidityNotEnforced(t *testing.T) {
	line := sampleFix[:24] + "V" + sampleFix[25:]
	got, err := ClassifyFix(line)
	if err != nil {
		t.Fatalf("ClassifyFix() error: %v", err)
	}
	if got.Validity != 'V' {
		t.Fatalf("Validity=%q want 'V'", got.Validity)
	}
}

func TestClassifyFix_Errors(t *testing.T) {
	cases := []struct {
		name string
		line string
		want error
	}{
		{name: "Short", line: sampleFix[:34], want: ErrShortRecord},
		{name: "OnlyB", line: "B", want: ErrShortRecord},
		{name: "BadTime", line: "B2511514647828N12025941WA0083900950", want: ErrInvalidTime},
		{name: "BadLat", line: "B23115146X7828N12025941WA0083900950", want: ErrMalformedField},
		{name: "BadLng", line: "B2311514647828N120259X1WA0083900950", want: ErrMalformedField},
		{name: "BadBaro", line: "B2311514647828N12025941WA00X3900950", want: ErrMalformedField},
		{name: "BadGPS", line: "B2311514647828N12025941WA008390095 ", want: ErrMalformedField},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ClassifyFix(tc.line)
			if !errors.Is(err, tc.want) {
				t.Fatalf("ClassifyFix(%q) err=%v want %v", tc.line, err, tc.want)
			}
		})
	}
}

func TestClassifyHeader(t *testing.T) {
	got, err := ClassifyHeader("HFDTE161119")
	if err != nil {
		t.Fatalf("ClassifyHeader() error: %v", err)
	}
	want := HeaderRecord{Kind: HeaderDate, Date: Date{Year: 2019, Month: time.November, Day: 16}}
	if got != want {
		t.Fatalf("ClassifyHeader()=%+v want %+v", got, want)
	}
}

func TestClassifyHeader_DateLabel(t *testing.T) {
	got, err := ClassifyHeader("HFDTEDATE:161119,01")
	if err != nil {
		t.Fatalf("ClassifyHeader() error: %v", err)
	}
	if got.Kind != HeaderDate || got.Date != (Date{Year: 2019, Month: time.November, Day: 16}) {
		t.Fatalf("ClassifyHeader()=%+v", got)
	}
}

func TestClassifyHeader_OtherSubtypes(t *testing.T) {
	for _, line := range []string{
		"HFPLTPILOTINCHARGE: Jane Doe",
		"HFGTYGLIDERTYPE:ASK21",
		"HFSIT",
		"HPDTE",
	} {
		got, err := ClassifyHeader(line)
		if line == "HPDTE" {
			// DTE subtype with no date is malformed, not Other.
			if !errors.Is(err, ErrShortRecord) {
				t.Fatalf("ClassifyHeader(%q) err=%v want ErrShortRecord", line, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ClassifyHeader(%q) error: %v", line, err)
		}
		if got.Kind != HeaderOther {
			t.Fatalf("ClassifyHeader(%q).Kind=%v want HeaderOther", line, got.Kind)
		}
	}
}

func TestClassifyHeader_Errors(t *testing.T) {
	if _, err := ClassifyHeader("HF"); !errors.Is(err, ErrShortRecord) {
		t.Fatalf("short header err=%v want ErrShortRecord", err)
	}
	if _, err := ClassifyHeader("HFDTE321119"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("day 32 err=%v want ErrInvalidDate", err)
	}
	if _, err := ClassifyHeader("HFDTE16AB19"); !errors.Is(err, ErrMalformedField) {
		t.Fatalf("non-numeric err=%v want ErrMalformedField", err)
	}
}

func TestClassifyLine(t *testing.T) {
	rec, err := ClassifyLine(sampleFix)
	if err != nil {
		t.Fatalf("ClassifyLine(fix) error: %v", err)
	}
	if _, ok := rec.(FixRecord); !ok {
		t.Fatalf("ClassifyLine(fix)=%T want FixRecord", rec)
	}

	rec, err = ClassifyLine("HFDTE161119")
	if err != nil {
		t.Fatalf("ClassifyLine(header) error: %v", err)
	}
	if h, ok := rec.(HeaderRecord); !ok || h.Kind != HeaderDate {
		t.Fatalf("ClassifyLine(header)=%#v", rec)
	}

	for _, line := range []string{"", "L", "LXXXcomment", "AXXXABCFLIGHT:1", "E231151PEV", "G1234", "b2311514647828N12025941WA0083900950"} {
		rec, err := ClassifyLine(line)
		if err != nil {
			t.Fatalf("ClassifyLine(%q) error: %v", line, err)
		}
		if _, ok := rec.(OtherRecord); !ok {
			t.Fatalf("ClassifyLine(%q)=%T want OtherRecord", line, rec)
		}
	}
}

func TestClassifyLine_TotalOverFirstByte(t *testing.T) {
	for b := 0; b < 256; b++ {
		if b == 'H' || b == 'B' {
			continue
		}
		rec, err := ClassifyLine(string([]byte{byte(b)}))
		if err != nil {
			t.Fatalf("byte %#x: %v", b, err)
		}
		if _, ok := rec.(OtherRecord); !ok {
			t.Fatalf("byte %#x: %T want OtherRecord", b, rec)
		}
	}
}

func TestClassifyLine_PropagatesErrors(t *testing.T) {
	if _, err := ClassifyLine("B231151"); !errors.Is(err, ErrShortRecord) {
		t.Fatalf("err=%v want ErrShortRecord", err)
	}
	if _, err := ClassifyLine("HFDTE999999"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("err=%v want ErrInvalidDate", err)
	}
}
