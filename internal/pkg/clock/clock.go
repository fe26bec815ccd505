package clock

import "time"

// Clock decides "now" for reservation rules such as "cannot start in the past".
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func NewRealClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now().UTC() }

// FixedClock always returns the instant it was built with.
type FixedClock struct {
	at time.Time
}

func NewFixedClock(at time.Time) *FixedClock { return &FixedClock{at: at} }

func (c *FixedClock) Now() time.Time { return c.at }
