// Package timex provides a JSON-friendly wrapper around time.Duration.
package timex

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Duration wraps time.Duration so JSON configs can specify intervals either
// as strings like "300ms" or as integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return errors.New("empty duration value")
	}

	if b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return fmt.Errorf("invalid duration string: %w", err)
		}
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		d.Duration = v
		return nil
	}

	ns, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid duration value %q: %w", string(b), err)
	}
	d.Duration = time.Duration(ns)
	return nil
}
