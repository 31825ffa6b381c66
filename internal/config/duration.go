package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Duration is a time.Duration that reads from JSON as either a Go duration
// string ("10s", "1m30s") or a number of seconds.
type Duration time.Duration

// ParseDuration accepts a Go duration string or a bare number of seconds.
func ParseDuration(s string) (Duration, error) {
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("duration must not be negative: %q", s)
		}
		return Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must not be negative: %q", s)
	}
	return Duration(d), nil
}

// Std returns d as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// MarshalJSON writes d as a duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON reads a duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		parsed, err := ParseDuration(strconv.FormatFloat(v, 'f', -1, 64))
		if err != nil {
			return err
		}
		*d = parsed
	case string:
		parsed, err := ParseDuration(v)
		if err != nil {
			return err
		}
		*d = parsed
	default:
		return fmt.Errorf("invalid duration %s", string(data))
	}
	return nil
}
