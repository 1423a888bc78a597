package task

import "time"

// JST is the fixed +09:00 zone every timestamp is expressed in.
var JST = time.FixedZone("JST", 9*60*60)

// Clock supplies the current instant for timestamping records.
type Clock interface {
	Now() time.Time
}

// JSTClock reads the system clock in JST with sub-second precision dropped.
type JSTClock struct{}

// Now returns the current time in JST truncated to whole seconds.
func (JSTClock) Now() time.Time {
	return time.Now().In(JST).Truncate(time.Second)
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}
