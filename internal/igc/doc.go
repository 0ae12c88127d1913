// Package igc decodes the fixed-column record lines of IGC flight-recorder logs.
//
// Only the parts needed to build a track are understood:
// - H records, of which only the DTE (flight date) subtype carries data
// - B records (fixes): time, position, validity flag and both altitudes
//
// Every other line is classified as Other and carries no payload.
package igc
