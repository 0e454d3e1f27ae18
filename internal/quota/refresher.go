package quota

import (
	"context"
	"sync/atomic"
	"time"
)

// ErrNoCredentials is the user-facing message when no access token could be
// obtained from any source.
const ErrNoCredentials = "No credentials found"

// Fetcher retrieves a usage snapshot from the remote endpoint. A nil
// snapshot with a nil error means the fetch failed in a handled way
// (timeout, bad status, malformed payload) and there is simply no data.
type Fetcher interface {
	FetchUsage(ctx context.Context, token string) (*Snapshot, error)
}

// CredentialSource produces an access token, or reports that none exists.
type CredentialSource interface {
	Credential() (string, bool)
}

// Result is delivered on the results channel once per completed refresh
// cycle, whether it succeeded or failed.
type Result struct {
	Snapshot *Snapshot     // nil when the fetch yielded no data
	Err      string        // user-facing error, "" for handled fetch failures
	Took     time.Duration // wall time of the refresh cycle
}

// Refresher is the {idle, in-flight} refresh state machine. Triggers
// arriving while a refresh is in flight are dropped, so at most one fetch
// runs at a time and each completed cycle emits exactly one Result.
type Refresher struct {
	creds    CredentialSource
	fetcher  Fetcher
	timeout  time.Duration
	now      func() time.Time
	inFlight atomic.Bool
	results  chan Result
}

// Option configures a Refresher.
type Option func(*Refresher)

// WithTimeout sets the per-fetch hard timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Refresher) { r.timeout = d }
}

// WithClock injects a clock for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Refresher) { r.now = now }
}

// NewRefresher builds a Refresher around a credential source and a fetcher.
func NewRefresher(creds CredentialSource, fetcher Fetcher, opts ...Option) *Refresher {
	r := &Refresher{
		creds:   creds,
		fetcher: fetcher,
		timeout: 5 * time.Second,
		now:     time.Now,
		results: make(chan Result, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Results returns the channel completed refresh cycles are delivered on.
func (r *Refresher) Results() <-chan Result {
	return r.results
}

// Busy reports whether a refresh is currently in flight.
func (r *Refresher) Busy() bool {
	return r.inFlight.Load()
}

// Trigger starts a refresh cycle unless one is already in flight. It
// returns whether a cycle was started; a dropped trigger is a no-op by
// contract, not an error.
func (r *Refresher) Trigger(ctx context.Context) bool {
	if !r.inFlight.CompareAndSwap(false, true) {
		return false
	}
	go r.run(ctx)
	return true
}

// run performs one refresh cycle and emits its Result. Failures are
// collapsed per the error taxonomy: a missing credential becomes a
// user-facing message, a failed fetch becomes "no data".
func (r *Refresher) run(ctx context.Context) {
	start := r.now()
	defer r.inFlight.Store(false)

	token, ok := r.creds.Credential()
	if !ok {
		r.results <- Result{Err: ErrNoCredentials, Took: r.now().Sub(start)}
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	snap, err := r.fetcher.FetchUsage(fetchCtx, token)
	if err != nil {
		snap = nil
	}
	r.results <- Result{Snapshot: snap, Took: r.now().Sub(start)}
}
