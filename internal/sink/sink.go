// Package sink delivers replayed track rows to external consumers.
package sink

import (
	"errors"

	"igc2csv/internal/track"
)

type Sink interface {
	Send(r track.Row) error
	Close() error
}

// Multi sends every row to each sink in order and stops at the first error.
type Multi []Sink

func (m Multi) Send(r track.Row) error {
	for _, s := range m {
		if err := s.Send(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all sinks and joins their errors.
func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
