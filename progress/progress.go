// Package progress carries per-invocation progress updates from a pipeline to
// whoever is watching it.
package progress

// Reporter receives progress of a single operation.
//
// Implementations must not block the caller for long; the pipeline treats
// every call as fire-and-forget.
type Reporter interface {
	// Update reports a checkpoint. percent is in [0, 100]; label may be empty.
	Update(percent int, label string)
	// Success reports that the operation finished and its output is written.
	Success(message string)
	// Error reports that the operation failed.
	Error(message string)
}

// Factory creates a fresh Reporter for an operation with the given title.
type Factory func(title string) Reporter

// Nop discards every update.
type Nop struct{}

// Update does nothing.
func (Nop) Update(int, string) {}

// Success does nothing.
func (Nop) Success(string) {}

// Error does nothing.
func (Nop) Error(string) {}

// Func adapts a plain callback into a Reporter. Terminal calls are delivered
// with percent 100 and done set.
type Func func(percent int, label string, done bool, err bool)

// Update calls f with done unset.
func (f Func) Update(percent int, label string) { f(percent, label, false, false) }

// Success calls f with percent 100 and done set.
func (f Func) Success(message string) { f(100, message, true, false) }

// Error calls f with percent 100 and both done and err set.
func (f Func) Error(message string) { f(100, message, true, true) }

// Tracker wraps a Reporter and guarantees that exactly one terminal call
// (Success or Error) reaches it. Updates after termination are dropped.
// A Tracker belongs to one invocation and is not safe for concurrent use.
type Tracker struct {
	reporter Reporter
	last     int
	done     bool
}

// Track returns a Tracker forwarding to r. A nil r discards everything.
func Track(r Reporter) *Tracker {
	if r == nil {
		r = Nop{}
	}
	return &Tracker{reporter: r}
}

// Update forwards a checkpoint, clamping percent into [0, 100].
func (t *Tracker) Update(percent int, label string) {
	percent = min(max(percent, 0), 100)
	if t.done {
		return
	}
	t.last = percent
	t.reporter.Update(percent, label)
}

// Succeed terminates the tracker successfully. It reports whether this call
// was the terminal one.
func (t *Tracker) Succeed(message string) bool {
	if t.done {
		return false
	}
	t.done = true
	t.reporter.Success(message)
	return true
}

// Fail terminates the tracker with an error. It reports whether this call
// was the terminal one.
func (t *Tracker) Fail(message string) bool {
	if t.done {
		return false
	}
	t.done = true
	t.reporter.Error(message)
	return true
}

// Done reports whether a terminal call has been made.
func (t *Tracker) Done() bool {
	return t.done
}

// Percent returns the last checkpoint forwarded.
func (t *Tracker) Percent() int {
	return t.last
}
