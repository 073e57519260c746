// Copyright (c) 2024-2026 Neomantra Corp
//
// Feed/Publisher external interfaces (spec §6) and an in-process
// implementation tying Subscription, the last-event cache and an
// Executor together. Grounded on the teacher's live/live.go dispatch
// loop, generalized from a single DBN stream to many symbol/kind
// subscriptions fed by an arbitrary event source.
//

package feed

import (
	"sync"

	mdfeed "github.com/NimbleMarkets/mdfeed-go"
)

// Feed is the consumer-facing surface: create subscriptions, attach or
// detach them, and read the last cached event per (kind, symbol).
type Feed interface {
	CreateSubscription(cfg SubscriptionConfig) (*Subscription, error)
	Attach(sub *Subscription) error
	Detach(sub *Subscription) error
	GetLastEvent(kind mdfeed.EventKind, symbol string) (mdfeed.Event, bool)
	Close() error
}

// Publisher is the producer-facing surface: push decoded events into
// every attached subscription whose kind/symbol filter matches.
type Publisher interface {
	Publish(events []mdfeed.Event) error
	Close() error
}

type lastEventKey struct {
	kind   mdfeed.EventKind
	symbol string
}

// LocalFeed is an in-process Feed+Publisher: it holds the set of
// attached subscriptions, a last-event cache, and fans out each
// Publish call to every matching subscription via its own Executor
// (spec §4.7, §6).
type LocalFeed struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	last   map[lastEventKey]mdfeed.Event
	closed bool
}

// NewLocalFeed returns a ready-to-use LocalFeed.
func NewLocalFeed() *LocalFeed {
	return &LocalFeed{
		subs: make(map[*Subscription]struct{}),
		last: make(map[lastEventKey]mdfeed.Event),
	}
}

// CreateSubscription builds and returns a new Subscription; it is not
// attached until Attach is called.
func (f *LocalFeed) CreateSubscription(cfg SubscriptionConfig) (*Subscription, error) {
	return NewSubscription(cfg)
}

// Attach registers sub to receive future Publish calls and wires its
// Close to automatically Detach it.
func (f *LocalFeed) Attach(sub *Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return mdfeed.ErrPublisherClosed
	}
	if sub.IsClosed() {
		return mdfeed.ErrSubscriptionClosed
	}
	f.subs[sub] = struct{}{}
	sub.setOnClose(func() { f.Detach(sub) })
	return nil
}

// Detach removes sub from the feed; idempotent.
func (f *LocalFeed) Detach(sub *Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.subs, sub)
	return nil
}

// GetLastEvent returns the most recently published event of kind for
// symbol, if any has been seen.
func (f *LocalFeed) GetLastEvent(kind mdfeed.EventKind, symbol string) (mdfeed.Event, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	e, ok := f.last[lastEventKey{kind: kind, symbol: symbol}]
	return e, ok
}

// Publish updates the last-event cache and dispatches events to every
// attached, matching subscription. Each subscription receives only the
// subset of events whose kind and symbol it is subscribed to, in the
// input order.
func (f *LocalFeed) Publish(events []mdfeed.Event) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return mdfeed.ErrPublisherClosed
	}
	for _, e := range events {
		f.last[lastEventKey{kind: e.Kind(), symbol: e.Symbol()}] = e
	}
	subs := make([]*Subscription, 0, len(f.subs))
	for s := range f.subs {
		subs = append(subs, s)
	}
	f.mu.Unlock()

	for _, sub := range subs {
		matched := matchingEvents(sub, events)
		if len(matched) > 0 {
			sub.Dispatch(matched)
		}
	}
	return nil
}

func matchingEvents(sub *Subscription, events []mdfeed.Event) []mdfeed.Event {
	symbols := sub.Symbols()
	if len(symbols) == 0 {
		return nil
	}
	wanted := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		wanted[s] = struct{}{}
	}
	out := make([]mdfeed.Event, 0, len(events))
	for _, e := range events {
		if !sub.HasEventType(e.Kind()) {
			continue
		}
		if _, ok := wanted[e.Symbol()]; !ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Close detaches every subscription (without closing them) and marks
// the feed closed; idempotent.
func (f *LocalFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.subs = make(map[*Subscription]struct{})
	return nil
}

var (
	_ Feed      = (*LocalFeed)(nil)
	_ Publisher = (*LocalFeed)(nil)
)
