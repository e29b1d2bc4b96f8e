package apiclient

import "time"

// TimeoutSpec describes a timeout configuration: a single duration covering
// both the connect and read phases, an explicit (connect, read) pair, an
// explicit "no timeout", or unset. The zero value is unset, which is
// distinct from NoTimeout: unset defers to the next level of configuration,
// NoTimeout overrides it.
type TimeoutSpec struct {
	set     bool
	none    bool
	pair    bool
	connect time.Duration
	read    time.Duration
}

// Timeout returns a spec applying d to both the connect and read phases.
func Timeout(d time.Duration) TimeoutSpec {
	return TimeoutSpec{set: true, connect: d, read: d}
}

// ConnectRead returns a spec with separate connect and read durations. A
// pair stays a pair even when both durations are equal; it never collapses
// into the scalar form.
func ConnectRead(connect, read time.Duration) TimeoutSpec {
	return TimeoutSpec{set: true, pair: true, connect: connect, read: read}
}

// NoTimeout returns the explicit "no timeout" spec. Unlike the zero value
// it wins against a session default.
func NoTimeout() TimeoutSpec {
	return TimeoutSpec{set: true, none: true}
}

// IsSet reports whether the spec was explicitly provided.
func (t TimeoutSpec) IsSet() bool { return t.set }

// IsNone reports whether the spec disables the timeout entirely. Both the
// explicit NoTimeout and the unset zero value resolve to none.
func (t TimeoutSpec) IsNone() bool { return !t.set || t.none }

// Connect returns the connect-phase duration and whether one applies.
func (t TimeoutSpec) Connect() (time.Duration, bool) {
	if t.IsNone() {
		return 0, false
	}
	return t.connect, true
}

// Read returns the read-phase duration and whether one applies.
func (t TimeoutSpec) Read() (time.Duration, bool) {
	if t.IsNone() {
		return 0, false
	}
	return t.read, true
}

// Total returns the deadline budget for a whole exchange and whether one
// applies: the scalar itself, or connect+read for a pair.
func (t TimeoutSpec) Total() (time.Duration, bool) {
	if t.IsNone() {
		return 0, false
	}
	if t.pair {
		return t.connect + t.read, true
	}
	return t.read, true
}

// ResolveTimeout merges a per-call spec with the session default: an
// explicitly provided per-call value wins, including an explicit NoTimeout;
// otherwise the session default applies; otherwise there is no timeout.
// Pure function, no clock involved.
func ResolveTimeout(perCall, sessionDefault TimeoutSpec) TimeoutSpec {
	if perCall.IsSet() {
		return perCall
	}
	if sessionDefault.IsSet() {
		return sessionDefault
	}
	return NoTimeout()
}
