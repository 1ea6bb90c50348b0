package browser

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
)

// networkTracker follows CDP network events for one tab. It records script
// responses and the requests still in flight.
type networkTracker struct {
	mu           sync.Mutex
	now          func() time.Time
	inflight     map[network.RequestID]struct{}
	scripts      map[network.RequestID]*Script
	order        []network.RequestID
	lastActivity time.Time
}

func newNetworkTracker() *networkTracker {
	return &networkTracker{
		now:          time.Now,
		inflight:     make(map[network.RequestID]struct{}),
		scripts:      make(map[network.RequestID]*Script),
		lastActivity: time.Now(),
	}
}

// handle is registered with chromedp.ListenTarget and must not block.
func (t *networkTracker) handle(ev any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch e := ev.(type) {
	case *network.EventRequestWillBeSent:
		t.inflight[e.RequestID] = struct{}{}
		t.lastActivity = t.now()
	case *network.EventResponseReceived:
		if e.Type != network.ResourceTypeScript || e.Response == nil {
			return
		}
		if _, seen := t.scripts[e.RequestID]; !seen {
			t.order = append(t.order, e.RequestID)
		}
		t.scripts[e.RequestID] = &Script{URL: e.Response.URL, Bytes: e.Response.EncodedDataLength}
		t.lastActivity = t.now()
	case *network.EventLoadingFinished:
		delete(t.inflight, e.RequestID)
		// The finished event carries the full encoded length, body included.
		if s, ok := t.scripts[e.RequestID]; ok && e.EncodedDataLength > 0 {
			s.Bytes = e.EncodedDataLength
		}
		t.lastActivity = t.now()
	case *network.EventLoadingFailed:
		delete(t.inflight, e.RequestID)
		t.lastActivity = t.now()
	}
}

// idle reports whether no request has been in flight for at least d.
func (t *networkTracker) idle(d time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inflight) == 0 && t.now().Sub(t.lastActivity) >= d
}

// scriptsSnapshot returns the observed scripts in arrival order and their total size.
func (t *networkTracker) scriptsSnapshot() ([]Script, float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Script, 0, len(t.order))
	var total float64
	for _, id := range t.order {
		s := *t.scripts[id]
		out = append(out, s)
		total += s.Bytes
	}
	return out, total
}

// waitIdle polls t until the network has been quiet for d or ctx ends.
func waitIdle(ctx context.Context, t *networkTracker, d time.Duration) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		if t.idle(d) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
