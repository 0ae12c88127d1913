// Package nmea renders track rows as NMEA 0183 sentences so a replayed IGC
// track can feed moving-map and flight computer software.
package nmea

import (
	"fmt"
	"strings"

	"igc2csv/internal/igc"
	"igc2csv/internal/track"
)

const talker = "GP"

// Sentence wraps payload (without '$' and checksum) as "$payload*CS".
func Sentence(payload string) string {
	ck := byte(0)
	for i := 0; i < len(payload); i++ {
		ck ^= payload[i]
	}
	return fmt.Sprintf("$%s*%02X", payload, ck)
}

// latField renders ddmm.mmm plus N/S.
func latField(c igc.Coordinate) (string, string) {
	deg, mm := c.Split()
	hemi := "N"
	if c < 0 {
		hemi = "S"
	}
	return fmt.Sprintf("%02d%02d.%03d", deg, mm/1000, mm%1000), hemi
}

// lngField renders dddmm.mmm plus E/W. Decoded longitudes are positive to
// the west, so the letter is the reverse of the usual convention.
func lngField(c igc.Coordinate) (string, string) {
	deg, mm := c.Split()
	hemi := "W"
	if c < 0 {
		hemi = "E"
	}
	return fmt.Sprintf("%03d%02d.%03d", deg, mm/1000, mm%1000), hemi
}

func timeField(r track.Row) string {
	return fmt.Sprintf("%02d%02d%02d.00", r.Time.Hour(), r.Time.Minute(), r.Time.Second())
}

// GGA: Global Positioning System Fix Data
//
//	1: time, 2-5: position, 6: fix quality (1 when validity is 'A'),
//	7: satellites (unknown), 8: HDOP (unknown), 9-10: GNSS altitude in meters,
//	11-14: geoid separation and DGPS (empty)
func GGA(r track.Row) string {
	lat, ns := latField(r.Fix.Position.Lat)
	lng, ew := lngField(r.Fix.Position.Lng)
	quality := "0"
	if r.Fix.Validity == 'A' {
		quality = "1"
	}
	fields := []string{
		talker + "GGA",
		timeField(r),
		lat, ns,
		lng, ew,
		quality,
		"", "",
		fmt.Sprintf("%.1f", float64(r.Fix.AltGPS)), "M",
		"", "M",
		"", "",
	}
	return Sentence(strings.Join(fields, ","))
}

// RMC: Recommended Minimum Specific GNSS Data
//
//	1: time, 2: status, 3-6: position, 7: speed, 8: course (both unknown),
//	9: date (ddmmyy), 10-11: magnetic variation (empty)
func RMC(r track.Row) string {
	lat, ns := latField(r.Fix.Position.Lat)
	lng, ew := lngField(r.Fix.Position.Lng)
	status := "V"
	if r.Fix.Validity == 'A' {
		status = "A"
	}
	fields := []string{
		talker + "RMC",
		timeField(r),
		status,
		lat, ns,
		lng, ew,
		"", "",
		fmt.Sprintf("%02d%02d%02d", r.Time.Day(), int(r.Time.Month()), r.Time.Year()%100),
		"", "",
	}
	return Sentence(strings.Join(fields, ","))
}

// Lines returns the GGA and RMC sentences for r, CRLF terminated.
func Lines(r track.Row) []byte {
	return []byte(GGA(r) + "\r\n" + RMC(r) + "\r\n")
}
