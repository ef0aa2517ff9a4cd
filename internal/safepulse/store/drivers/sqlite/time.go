package sqlite

import (
	"fmt"
	"time"
)

// Timestamps are written as RFC 3339 text. Depending on the column's
// declared type the driver hands them back either parsed or raw, so reads
// go through sqlTime.
const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

type sqlTime struct{ t *time.Time }

var readLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (s sqlTime) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*s.t = x.UTC()
		return nil
	case string:
		return s.parse(x)
	case []byte:
		return s.parse(string(x))
	default:
		return fmt.Errorf("sqlite: cannot scan %T into time", v)
	}
}

func (s sqlTime) parse(v string) error {
	for _, layout := range readLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			*s.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("sqlite: unrecognized timestamp %q", v)
}
