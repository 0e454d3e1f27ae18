package quota

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type stubCreds struct {
	token string
	ok    bool
}

func (s stubCreds) Credential() (string, bool) { return s.token, s.ok }

type stubFetcher struct {
	calls    atomic.Int32
	snapshot *Snapshot
	err      error
	block    chan struct{} // when set, FetchUsage waits for close or ctx
}

func (f *stubFetcher) FetchUsage(ctx context.Context, token string) (*Snapshot, error) {
	f.calls.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.snapshot, f.err
}

func testSnapshot() *Snapshot {
	reset := time.Now().Add(2 * time.Hour)
	return &Snapshot{
		Windows: map[WindowKey]Window{
			WindowFiveHour: {Utilization: 42, ResetsAt: &reset},
		},
		FetchedAt: time.Now(),
	}
}

func TestRefresherDeliversSnapshot(t *testing.T) {
	fetcher := &stubFetcher{snapshot: testSnapshot()}
	r := NewRefresher(stubCreds{token: "tok", ok: true}, fetcher)

	if !r.Trigger(context.Background()) {
		t.Fatal("Trigger returned false on idle refresher")
	}

	res := <-r.Results()
	if res.Err != "" {
		t.Fatalf("unexpected error: %q", res.Err)
	}
	if res.Snapshot == nil || len(res.Snapshot.Windows) != 1 {
		t.Fatalf("snapshot not delivered: %+v", res.Snapshot)
	}
}

func TestRefresherNoCredentials(t *testing.T) {
	fetcher := &stubFetcher{snapshot: testSnapshot()}
	r := NewRefresher(stubCreds{ok: false}, fetcher)

	r.Trigger(context.Background())
	res := <-r.Results()

	if res.Err != ErrNoCredentials {
		t.Errorf("Err = %q, want %q", res.Err, ErrNoCredentials)
	}
	if res.Snapshot != nil {
		t.Errorf("snapshot should be nil without credentials")
	}
	if fetcher.calls.Load() != 0 {
		t.Errorf("fetcher called %d times without credentials", fetcher.calls.Load())
	}
}

func TestRefresherFetchFailureIsNoData(t *testing.T) {
	fetcher := &stubFetcher{err: context.DeadlineExceeded}
	r := NewRefresher(stubCreds{token: "tok", ok: true}, fetcher)

	r.Trigger(context.Background())
	res := <-r.Results()

	if res.Err != "" {
		t.Errorf("handled fetch failure surfaced an error: %q", res.Err)
	}
	if res.Snapshot != nil {
		t.Errorf("failed fetch must yield nil snapshot")
	}
}

func TestRefresherOverlapGuard(t *testing.T) {
	fetcher := &stubFetcher{snapshot: testSnapshot(), block: make(chan struct{})}
	r := NewRefresher(stubCreds{token: "tok", ok: true}, fetcher)

	if !r.Trigger(context.Background()) {
		t.Fatal("first trigger should start a cycle")
	}

	// Wait until the fetch is actually in flight.
	deadline := time.After(time.Second)
	for fetcher.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("fetch never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if r.Trigger(context.Background()) {
		t.Error("second trigger started a concurrent cycle")
	}
	if !r.Busy() {
		t.Error("Busy() = false while a fetch is in flight")
	}

	close(fetcher.block)
	<-r.Results()

	if got := fetcher.calls.Load(); got != 1 {
		t.Errorf("fetcher called %d times, want 1", got)
	}
}

func TestRefresherTimeout(t *testing.T) {
	fetcher := &stubFetcher{snapshot: testSnapshot(), block: make(chan struct{})}
	r := NewRefresher(stubCreds{token: "tok", ok: true}, fetcher,
		WithTimeout(10*time.Millisecond))

	r.Trigger(context.Background())

	select {
	case res := <-r.Results():
		if res.Snapshot != nil {
			t.Error("timed-out fetch delivered a snapshot")
		}
		if res.Err != "" {
			t.Errorf("timeout surfaced an error: %q", res.Err)
		}
	case <-time.After(time.Second):
		t.Fatal("refresh did not complete after timeout")
	}
}

func TestSnapshotWindowLookup(t *testing.T) {
	snap := testSnapshot()

	if _, ok := snap.Window(WindowFiveHour); !ok {
		t.Error("reported window not found")
	}
	if _, ok := snap.Window(WindowSevenDay); ok {
		t.Error("absent window reported as present")
	}

	var nilSnap *Snapshot
	if _, ok := nilSnap.Window(WindowFiveHour); ok {
		t.Error("nil snapshot reported a window")
	}
	if !nilSnap.Empty() {
		t.Error("nil snapshot not empty")
	}
}
