// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import "time"

// Clock hands out creation dates in milliseconds since the epoch. Every call
// returns a value strictly greater than the previous one, even when the wall
// clock stalls or steps backwards.
type Clock struct {
	now  func() time.Time
	last int64
}

// NewClock returns a Clock reading from now, or from time.Now when now is nil.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Now returns the next date.
func (c *Clock) Now() int64 {
	ms := c.now().UnixMilli()
	if ms <= c.last {
		ms = c.last + 1
	}
	c.last = ms
	return ms
}
