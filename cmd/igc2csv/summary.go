package main

import (
	"context"
	"fmt"
	"io"

	"igc2csv/internal/config"
	"igc2csv/internal/csvout"
)

func printSummary(ctx context.Context, opts options, cfg config.Config, stdin io.Reader, out io.Writer) error {
	_, st, err := loadRows(ctx, opts, cfg, stdin)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "path: %s\n", opts.input)
	fmt.Fprintf(out, "lines: %d\n", st.Lines)
	fmt.Fprintf(out, "headers: %d\n", st.Headers)
	fmt.Fprintf(out, "fixes: %d\n", st.Fixes)
	fmt.Fprintf(out, "other: %d\n", st.Other)
	if st.Fixes == 0 {
		fmt.Fprintf(out, "first: -\nlast: -\n")
		return nil
	}
	fmt.Fprintf(out, "first: %s\n", st.First.Format(csvout.TimeLayout))
	fmt.Fprintf(out, "last: %s\n", st.Last.Format(csvout.TimeLayout))
	fmt.Fprintf(out, "duration: %s\n", st.Duration())
	fmt.Fprintf(out, "alt_baro: %d..%d\n", st.MinAltBaro, st.MaxAltBaro)
	fmt.Fprintf(out, "alt_gps: %d..%d\n", st.MinAltGPS, st.MaxAltGPS)
	return nil
}
