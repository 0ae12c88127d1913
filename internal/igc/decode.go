package igc

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	ErrMalformedField = errors.New("malformed field")
	ErrShortRecord    = errors.New("record too short")
	ErrInvalidTime    = errors.New("invalid time of day")
	ErrInvalidDate    = errors.New("invalid date")
)

// FieldError reports which fixed-width field failed to decode.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("igc: %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Coordinate is an angle in thousandths of an arc-minute (1/60000 degree).
//
// The sign comes straight from the hemisphere letter: 'S' and 'E' are
// negative, anything else is positive. Latitude reads the usual way, but
// longitude is positive to the WEST. Callers that need conventional
// east-positive longitude must flip it themselves.
type Coordinate int32

// Degrees returns the coordinate in decimal degrees, computed in float32.
func (c Coordinate) Degrees() float32 {
	return float32(c) / 60000
}

// Split returns the whole degrees and the thousandths of a minute of |c|.
func (c Coordinate) Split() (deg int, milliMin int) {
	v := int(c)
	if v < 0 {
		v = -v
	}
	return v / 60000, v % 60000
}

type Position struct {
	Lat Coordinate
	Lng Coordinate
}

type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Date is a calendar date without zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// At composes d and t naively; the result is expressed in UTC only because
// time.Time needs some location.
func (d Date) At(t TimeOfDay) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, t.Second, 0, time.UTC)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// DecodeCoordinate decodes a sexagesimal coordinate field.
//
// Layout (w = wholeDegreeWidth, 2 for latitude, 3 for longitude):
//
//	[0:w]     whole degrees
//	[w:w+5]   minutes * 1000 (MMmmm, no decimal point)
//	[w+5]     hemisphere letter
//
// The hemisphere letter is not validated; see Coordinate for the sign rule.
func DecodeCoordinate(wholeDegreeWidth int, field string) (Coordinate, error) {
	if wholeDegreeWidth != 2 && wholeDegreeWidth != 3 {
		return 0, fmt.Errorf("igc: unsupported degree width %d", wholeDegreeWidth)
	}
	w := wholeDegreeWidth
	if len(field) != w+6 {
		return 0, &FieldError{Field: "coordinate", Value: field, Err: ErrMalformedField}
	}

	degPart := field[:w]
	minPart := field[w : w+5]
	if !isDigits(degPart) || !isDigits(minPart) {
		return 0, &FieldError{Field: "coordinate", Value: field, Err: ErrMalformedField}
	}
	deg, err := strconv.Atoi(degPart)
	if err != nil {
		return 0, &FieldError{Field: "coordinate", Value: field, Err: ErrMalformedField}
	}
	milliMin, err := strconv.Atoi(minPart)
	if err != nil {
		return 0, &FieldError{Field: "coordinate", Value: field, Err: ErrMalformedField}
	}

	v := Coordinate(milliMin + deg*60000)
	switch field[w+5] {
	case 'S', 'E':
		v = -v
	}
	return v, nil
}

// DecodeAltitude parses a zero-padded altitude in meters. A leading sign is
// accepted since recorders write negative GNSS altitudes as "-0012".
func DecodeAltitude(field string) (int, error) {
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, &FieldError{Field: "altitude", Value: field, Err: ErrMalformedField}
	}
	return v, nil
}

// DecodeTimeOfDay parses HHMMSS.
func DecodeTimeOfDay(field string) (TimeOfDay, error) {
	if len(field) != 6 || !isDigits(field) {
		return TimeOfDay{}, &FieldError{Field: "time", Value: field, Err: ErrMalformedField}
	}
	t, err := time.Parse("150405", field)
	if err != nil {
		return TimeOfDay{}, &FieldError{Field: "time", Value: field, Err: ErrInvalidTime}
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

// yearPivot splits two-digit years: below it is 20xx, at or above it 19xx.
const yearPivot = 70

// DecodeDate parses DDMMYY. Two-digit years 70-99 map to 19xx and 00-69 to 20xx.
func DecodeDate(field string) (Date, error) {
	if len(field) != 6 || !isDigits(field) {
		return Date{}, &FieldError{Field: "date", Value: field, Err: ErrMalformedField}
	}
	yy, _ := strconv.Atoi(field[4:6])
	century := "20"
	if yy >= yearPivot {
		century = "19"
	}
	// Go's own 06 layout pivots at 69, so parse with the century spelled out.
	t, err := time.Parse("02012006", field[:4]+century+field[4:6])
	if err != nil {
		return Date{}, &FieldError{Field: "date", Value: field, Err: ErrInvalidDate}
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}
