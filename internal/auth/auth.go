// Package auth implements the multi-step login flow shared by banks
// that confirm logins out-of-band (Smart-ID, Mobile-ID): submit
// credentials, show the returned challenge code to the user, then poll
// a status endpoint until the bank reports the login confirmed.
//
// Banks that exchange a username and password synchronously skip this
// package and authenticate inline in their fetcher.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/bankfeed-dev/bankfeed/internal/bankerr"
	"github.com/bankfeed-dev/bankfeed/internal/progress"
)

// State is the position of a login flow in its lifecycle.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateChallengeIssued State = "challenge_issued"
	StatePolling         State = "polling_confirmation"
	StateAuthenticated   State = "authenticated"
	StateFailed          State = "failed"
)

// Challenge is what the bank returns after credentials are submitted:
// a code the user must verify on their device, plus opaque identifiers
// for the pending login session.
type Challenge struct {
	Code       string
	SessionID  string
	SecurityID string
}

// Confirmation is the proof of a completed login. At least one field
// is populated; which one depends on the bank.
type Confirmation struct {
	Hash     string
	Identity string
}

// Poller checks whether the user has confirmed the login. It returns
// (nil, nil) while the confirmation is still pending.
type Poller interface {
	Poll(ctx context.Context) (*Confirmation, error)
}

// Starter submits credentials and returns the challenge together with
// the poller for that login attempt.
type Starter interface {
	Start(ctx context.Context) (*Challenge, Poller, error)
}

const (
	// DefaultInterval is the pause between confirmation polls.
	DefaultInterval = 3 * time.Second
	// DefaultMaxAttempts bounds the poll loop. Exhausting it fails the
	// whole run; the challenge is never restarted automatically.
	DefaultMaxAttempts = 10
)

// Options tune the confirmation poll loop. Zero values select the
// defaults. Sleep exists so tests can run the loop without waiting.
type Options struct {
	Interval    time.Duration
	MaxAttempts int
	Sleep       func(ctx context.Context, d time.Duration) error
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.Sleep == nil {
		o.Sleep = sleep
	}
	return o
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Confirm polls until the login is confirmed. Polling on attempt k
// succeeds after exactly k polls with the fixed interval slept between
// them. When MaxAttempts polls all come back pending, Confirm fails
// with bankerr.ErrAuthTimeout.
func Confirm(ctx context.Context, p Poller, opts Options) (*Confirmation, error) {
	opts = opts.withDefaults()

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := opts.Sleep(ctx, opts.Interval); err != nil {
				return nil, err
			}
		}
		conf, err := p.Poll(ctx)
		if err != nil {
			return nil, fmt.Errorf("confirmation poll %d: %w", attempt, err)
		}
		if conf != nil {
			return conf, nil
		}
	}
	return nil, bankerr.AuthTimeoutf("login not confirmed after %d polls", opts.MaxAttempts)
}

// Flow runs one login attempt through the full state machine:
// Unauthenticated -> ChallengeIssued -> PollingConfirmation ->
// Authenticated, or Failed. A Flow is single-use.
type Flow struct {
	starter Starter
	opts    Options
	state   State
}

// NewFlow creates a Flow around a bank-specific Starter.
func NewFlow(starter Starter, opts Options) *Flow {
	return &Flow{starter: starter, opts: opts, state: StateUnauthenticated}
}

// State returns the flow's current state.
func (f *Flow) State() State { return f.state }

// Run drives the flow to completion. The challenge code is surfaced
// through the reporter so the user knows what to confirm.
func (f *Flow) Run(ctx context.Context, r progress.Reporter) (*Confirmation, error) {
	r = progress.Guard(r)

	challenge, poller, err := f.starter.Start(ctx)
	if err != nil {
		f.state = StateFailed
		return nil, fmt.Errorf("starting login: %w", err)
	}
	f.state = StateChallengeIssued

	done := r.Step(fmt.Sprintf("Confirm login on your device, code is %s", challenge.Code))
	f.state = StatePolling

	conf, err := Confirm(ctx, poller, f.opts)
	done(err)
	if err != nil {
		f.state = StateFailed
		return nil, err
	}
	f.state = StateAuthenticated
	return conf, nil
}
