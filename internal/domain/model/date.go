package model

import (
	"bytes"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// DateTime is a moment in UTC. It decodes RFC 3339 timestamps and zone-less
// ISO 8601 date-times such as "2025-01-01T10:00:00", which are read as UTC.
// It encodes as RFC 3339.
type DateTime struct {
	time.Time
}

// NewDateTime converts t to UTC.
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t.UTC()}
}

// ParseDateTime parses s as RFC 3339 or as a zone-less date-time.
func ParseDateTime(s string) (DateTime, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return NewDateTime(t), nil
	}
	dt, err := civil.ParseDateTime(s)
	if err != nil {
		return DateTime{}, fmt.Errorf("invalid date-time %q: want RFC 3339 or YYYY-MM-DDThh:mm:ss", s)
	}
	return DateTime{Time: dt.In(time.UTC)}, nil
}

// MarshalJSON implements json.Marshaler.
func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.UTC().Format(time.RFC3339Nano) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. null leaves d zero.
func (d *DateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = DateTime{}
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid date-time %s: want a string", b)
	}
	parsed, err := ParseDateTime(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateOf returns the calendar day of t in UTC.
func DateOf(t time.Time) civil.Date {
	return civil.DateOf(t.UTC())
}
