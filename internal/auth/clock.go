package auth

import "time"

// Clock provides time to the token manager.
// Tests swap in a fixed clock to exercise expiry deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock returns the current wall-clock time in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
