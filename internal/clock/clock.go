package clock

import "time"

// Clock abstracts time.Now so services and tests can agree on "now".
type Clock interface {
	Now() time.Time
}

type system struct{}

// NewSystem returns a UTC wall clock.
func NewSystem() Clock {
	return system{}
}

func (system) Now() time.Time {
	return time.Now().UTC()
}

type fixed struct {
	at time.Time
}

// NewFixed returns a clock pinned to a single instant, for tests.
func NewFixed(at time.Time) Clock {
	return fixed{at: at.UTC()}
}

func (f fixed) Now() time.Time {
	return f.at
}
