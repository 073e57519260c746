// Copyright (c) 2024-2026 Neomantra Corp
//
// Subscription & listener plumbing (spec §4.7), grounded on the
// teacher's Config/validate idiom and dispatch loop (live/live.go),
// with listener ids replaced by opaque guards per spec §9's redesign
// note ("Listener management via raw ids... replace numeric listener
// ids with opaque guards whose drop detaches the listener").
//

package feed

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	mdfeed "github.com/NimbleMarkets/mdfeed-go"
)

// EventListener receives events directly from a Subscription (spec
// §4.7's "event listener").
type EventListener func(events []mdfeed.Event)

// ListenerGuard is an opaque handle returned when attaching a listener;
// calling Remove detaches it. The zero value is a no-op.
type ListenerGuard struct {
	id     uuid.UUID
	remove func(uuid.UUID)
}

// Remove detaches the listener this guard was issued for. Safe to call
// more than once.
func (g ListenerGuard) Remove() {
	if g.remove != nil {
		g.remove(g.id)
	}
}

// ObservableSubscriptionListener observes a Subscription's symbol set
// and lifecycle rather than its event traffic (spec §4.7's third
// listener kind).
type ObservableSubscriptionListener interface {
	SymbolsAdded(symbols []string)
	SymbolsRemoved(symbols []string)
	SubscriptionClosed()
}

// Subscription owns a listener collection and a feed attachment
// (spec §4.7, §3.5). Closing it detaches and releases all listeners
// exactly once.
type Subscription struct {
	mu        sync.Mutex
	kinds     map[mdfeed.EventKind]struct{}
	symbols   map[string]struct{}
	listeners map[uuid.UUID]EventListener
	observers map[uuid.UUID]ObservableSubscriptionListener
	executor  Executor
	logger    *slog.Logger
	closed    bool
	closeOnce sync.Once
	onClose   func()
}

// SubscriptionConfig configures a new Subscription; NewSubscription is
// the single validating step.
type SubscriptionConfig struct {
	EventKinds []mdfeed.EventKind
	Executor   Executor
	Logger     *slog.Logger
}

func (c *SubscriptionConfig) validate() error {
	if len(c.EventKinds) == 0 {
		return mdfeed.NewInvalidArgumentError("feed.SubscriptionConfig: EventKinds must not be empty")
	}
	if c.Executor == nil {
		c.Executor = InlineExecutor{}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return nil
}

// NewSubscription builds a Subscription from cfg, validating it first.
func NewSubscription(cfg SubscriptionConfig) (*Subscription, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	kinds := make(map[mdfeed.EventKind]struct{}, len(cfg.EventKinds))
	for _, k := range cfg.EventKinds {
		kinds[k] = struct{}{}
	}
	return &Subscription{
		kinds:     kinds,
		symbols:   make(map[string]struct{}),
		listeners: make(map[uuid.UUID]EventListener),
		observers: make(map[uuid.UUID]ObservableSubscriptionListener),
		executor:  cfg.Executor,
		logger:    cfg.Logger,
	}, nil
}

// AddSymbols adds symbols to the subscription's symbol set.
func (s *Subscription) AddSymbols(symbols ...string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return mdfeed.ErrSubscriptionClosed
	}
	for _, sym := range symbols {
		s.symbols[sym] = struct{}{}
	}
	observers := s.snapshotObserversLocked()
	s.mu.Unlock()

	for _, o := range observers {
		o.SymbolsAdded(symbols)
	}
	return nil
}

// RemoveSymbols removes symbols from the subscription's symbol set.
func (s *Subscription) RemoveSymbols(symbols ...string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return mdfeed.ErrSubscriptionClosed
	}
	for _, sym := range symbols {
		delete(s.symbols, sym)
	}
	observers := s.snapshotObserversLocked()
	s.mu.Unlock()

	for _, o := range observers {
		o.SymbolsRemoved(symbols)
	}
	return nil
}

func (s *Subscription) snapshotObserversLocked() []ObservableSubscriptionListener {
	out := make([]ObservableSubscriptionListener, 0, len(s.observers))
	for _, o := range s.observers {
		out = append(out, o)
	}
	return out
}

// AddObservableListener attaches an observer of this subscription's
// symbol set and lifecycle, and returns a guard that detaches it.
func (s *Subscription) AddObservableListener(l ObservableSubscriptionListener) (ListenerGuard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ListenerGuard{}, mdfeed.ErrSubscriptionClosed
	}
	id := uuid.New()
	s.observers[id] = l
	return ListenerGuard{id: id, remove: s.removeObservableListener}, nil
}

func (s *Subscription) removeObservableListener(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.observers, id)
}

// SetSymbols replaces the subscription's symbol set entirely.
func (s *Subscription) SetSymbols(symbols ...string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return mdfeed.ErrSubscriptionClosed
	}
	removed := make([]string, 0, len(s.symbols))
	for sym := range s.symbols {
		removed = append(removed, sym)
	}
	s.symbols = make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		s.symbols[sym] = struct{}{}
	}
	observers := s.snapshotObserversLocked()
	s.mu.Unlock()

	for _, o := range observers {
		if len(removed) > 0 {
			o.SymbolsRemoved(removed)
		}
		if len(symbols) > 0 {
			o.SymbolsAdded(symbols)
		}
	}
	return nil
}

// Symbols returns a snapshot of the current symbol set.
func (s *Subscription) Symbols() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.symbols))
	for sym := range s.symbols {
		out = append(out, sym)
	}
	return out
}

// AddEventType adds an event kind to the subscription.
func (s *Subscription) AddEventType(kind mdfeed.EventKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return mdfeed.ErrSubscriptionClosed
	}
	s.kinds[kind] = struct{}{}
	return nil
}

// RemoveEventType removes an event kind from the subscription.
func (s *Subscription) RemoveEventType(kind mdfeed.EventKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return mdfeed.ErrSubscriptionClosed
	}
	delete(s.kinds, kind)
	return nil
}

// HasEventType reports whether kind is currently subscribed.
func (s *Subscription) HasEventType(kind mdfeed.EventKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.kinds[kind]
	return ok
}

// AddEventListener attaches l and returns a guard that detaches it.
func (s *Subscription) AddEventListener(l EventListener) (ListenerGuard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ListenerGuard{}, mdfeed.ErrSubscriptionClosed
	}
	id := uuid.New()
	s.listeners[id] = l
	return ListenerGuard{id: id, remove: s.removeEventListener}, nil
}

func (s *Subscription) removeEventListener(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, id)
}

// Dispatch is called by the owning feed with a freshly decoded batch;
// it fans the batch out to every listener through the subscription's
// executor. No-op once the subscription is closed.
func (s *Subscription) Dispatch(events []mdfeed.Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	listeners := make([]EventListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	executor := s.executor
	s.mu.Unlock()

	for _, l := range listeners {
		listener := l
		executor.Submit(func() {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("[Subscription.Dispatch] listener panicked", "recovered", fmt.Sprint(r))
				}
			}()
			if s.IsClosed() {
				return
			}
			listener(events)
		})
	}
}

// IsClosed reports whether Close has been called.
func (s *Subscription) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close detaches the subscription and releases all listeners exactly
// once; idempotent. No callback fires for this subscription after
// Close returns (spec §5).
func (s *Subscription) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.listeners = make(map[uuid.UUID]EventListener)
		observers := s.snapshotObserversLocked()
		s.observers = make(map[uuid.UUID]ObservableSubscriptionListener)
		onClose := s.onClose
		s.mu.Unlock()

		for _, o := range observers {
			o.SubscriptionClosed()
		}
		if onClose != nil {
			onClose()
		}
	})
	return nil
}

// setOnClose registers a callback invoked exactly once, the first time
// Close is called. Used by Feed.Attach to wire automatic detach.
func (s *Subscription) setOnClose(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClose = fn
}
