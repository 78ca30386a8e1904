// Package progress is the observability side channel for long-running
// fetches. Reporters receive a human-readable label when a step starts
// and its outcome when it finishes; they never influence the fetch
// itself, and a misbehaving reporter must not abort one.
package progress

// Done marks a started step as finished. A nil error means success.
type Done func(err error)

// Reporter receives progress notifications during a fetch.
type Reporter interface {
	Step(label string) Done
}

// Nop is a Reporter that discards all notifications.
type Nop struct{}

// Step implements Reporter.
func (Nop) Step(string) Done { return func(error) {} }

// Func adapts a plain message callback to a Reporter. The callback is
// invoked once with the label when the step starts.
type Func func(message string)

// Step implements Reporter.
func (f Func) Step(label string) Done {
	f(label)
	return func(error) {}
}

// Guard wraps r so a panicking reporter cannot abort the fetch. A nil
// reporter is replaced with Nop.
func Guard(r Reporter) Reporter {
	if r == nil {
		return Nop{}
	}
	return guarded{r: r}
}

type guarded struct {
	r Reporter
}

func (g guarded) Step(label string) (done Done) {
	done = func(error) {}
	defer func() { recover() }()
	inner := g.r.Step(label)
	if inner == nil {
		return done
	}
	done = func(err error) {
		defer func() { recover() }()
		inner(err)
	}
	return done
}

// StepResult is one recorded step outcome.
type StepResult struct {
	Label string
	Err   error
}

// Recorder is a Reporter for tests. It records started steps and their
// outcomes in order.
type Recorder struct {
	Started  []string
	Finished []StepResult
}

// Step implements Reporter.
func (r *Recorder) Step(label string) Done {
	r.Started = append(r.Started, label)
	return func(err error) {
		r.Finished = append(r.Finished, StepResult{Label: label, Err: err})
	}
}
