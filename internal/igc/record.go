package igc

import "strings"

// Record is one classified log line: HeaderRecord, FixRecord or OtherRecord.
type Record interface {
	isRecord()
}

type HeaderKind int

const (
	HeaderOther HeaderKind = iota
	HeaderDate
)

// HeaderRecord is an H line. Date is only set when Kind is HeaderDate.
type HeaderRecord struct {
	Kind HeaderKind
	Date Date
}

// FixRecord is a B line.
type FixRecord struct {
	Time     TimeOfDay
	Position Position
	AltBaro  int
	AltGPS   int
	// Validity is the raw flag column ('A' 3D fix, 'V' 2D or no fix).
	// It is carried along but never used to drop fixes.
	Validity byte
}

// OtherRecord is any line that is neither H nor B.
type OtherRecord struct{}

func (HeaderRecord) isRecord() {}
func (FixRecord) isRecord()    {}
func (OtherRecord) isRecord()  {}

// B record columns.
const (
	fixTimeStart     = 1
	fixLatStart      = 7
	fixLngStart      = 15
	fixValidity      = 24
	fixAltBaroStart  = 25
	fixAltGPSStart   = 30
	fixRecordMinSize = 35
)

// ClassifyLine dispatches on the first character of line. It never fails for
// unknown prefixes; those, and the empty line, are OtherRecord.
func ClassifyLine(line string) (Record, error) {
	if line == "" {
		return OtherRecord{}, nil
	}
	switch line[0] {
	case 'H':
		return ClassifyHeader(line)
	case 'B':
		return ClassifyFix(line)
	default:
		return OtherRecord{}, nil
	}
}

// ClassifyHeader decodes an H line. Only the DTE subtype is understood; both
// "HFDTE161119" and the newer "HFDTEDATE:161119,01" spellings are accepted.
func ClassifyHeader(line string) (HeaderRecord, error) {
	if len(line) < 5 {
		return HeaderRecord{}, &FieldError{Field: "header", Value: line, Err: ErrShortRecord}
	}
	if line[2:5] != "DTE" {
		return HeaderRecord{Kind: HeaderOther}, nil
	}

	rest := strings.TrimPrefix(line[5:], "DATE:")
	if len(rest) < 6 {
		return HeaderRecord{}, &FieldError{Field: "date", Value: line, Err: ErrShortRecord}
	}
	d, err := DecodeDate(rest[:6])
	if err != nil {
		return HeaderRecord{}, err
	}
	return HeaderRecord{Kind: HeaderDate, Date: d}, nil
}

// ClassifyFix decodes a B line:
//
//	[0]      'B'
//	[1:7]    HHMMSS
//	[7:15]   latitude  DDMMmmmN
//	[15:24]  longitude DDDMMmmmE
//	[24]     validity flag
//	[25:30]  pressure altitude
//	[30:35]  GNSS altitude
//
// Anything past column 35 (extension fields) is ignored.
func ClassifyFix(line string) (FixRecord, error) {
	if len(line) < fixRecordMinSize {
		return FixRecord{}, &FieldError{Field: "fix", Value: line, Err: ErrShortRecord}
	}

	t, err := DecodeTimeOfDay(line[fixTimeStart:fixLatStart])
	if err != nil {
		return FixRecord{}, err
	}
	lat, err := DecodeCoordinate(2, line[fixLatStart:fixLngStart])
	if err != nil {
		return FixRecord{}, err
	}
	lng, err := DecodeCoordinate(3, line[fixLngStart:fixValidity])
	if err != nil {
		return FixRecord{}, err
	}
	altBaro, err := DecodeAltitude(line[fixAltBaroStart:fixAltGPSStart])
	if err != nil {
		return FixRecord{}, err
	}
	altGPS, err := DecodeAltitude(line[fixAltGPSStart:fixRecordMinSize])
	if err != nil {
		return FixRecord{}, err
	}

	return FixRecord{
		Time:     t,
		Position: Position{Lat: lat, Lng: lng},
		AltBaro:  altBaro,
		AltGPS:   altGPS,
		Validity: line[fixValidity],
	}, nil
}
