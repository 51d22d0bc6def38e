package cmd

import (
	"fmt"
	"time"
)

// window is the inclusive [Start, End] instant range that time-distributed
// rows (orders) are sampled into. The downstream pipeline loads the same
// window incrementally, so both bounds are part of the contract.
type window struct {
	Start time.Time
	End   time.Time
}

func (w window) String() string {
	return w.Start.Format(time.RFC3339) + " -> " + w.End.Format(time.RFC3339)
}

var windowLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseWindowTime parses an ISO-8601 date or datetime. Naive values carry no
// offset and are interpreted as UTC.
func parseWindowTime(s string) (time.Time, error) {
	for _, layout := range windowLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse %q as a date/time", ErrMalformedWindow, s)
}

// resolveWindow resolves the sampling window from optional flag values.
// An omitted bound defaults to the corresponding edge of now's UTC day.
// A reversed window is rejected rather than swapped.
func resolveWindow(startStr, endStr string, now time.Time) (window, error) {
	now = now.UTC()
	w := window{
		Start: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		End:   time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC),
	}

	var err error
	if startStr != "" {
		if w.Start, err = parseWindowTime(startStr); err != nil {
			return window{}, err
		}
	}
	if endStr != "" {
		if w.End, err = parseWindowTime(endStr); err != nil {
			return window{}, err
		}
	}
	if w.Start.After(w.End) {
		return window{}, fmt.Errorf("%w: start %s is after end %s",
			ErrMalformedWindow, w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
	}
	return w, nil
}
