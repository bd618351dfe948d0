package clock

import "time"

// Clock abstracts time so streak and achievement rules stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location. A nil Location means time.Local.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	// Round(0) drops the monotonic reading so persisted timestamps compare cleanly.
	return time.Now().In(loc).Round(0)
}
