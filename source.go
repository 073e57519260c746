// Copyright (c) 2024-2026 Neomantra Corp
//
// Adapted from dxFeed's order source registry:
//   _examples/original_source/include/dxfeed_graal_cpp_api/event/market/OrderSource.hpp
//   _examples/original_source/src/event/market/OrderSource.cpp
// and from the teacher's enum-registry idiom (String()/FromString()/interning):
//   _examples/NimbleMarkets-dbn-go/publishers.go
//

package mdfeed

import (
	"sort"
	"sync"
)

// publish-capability bits (§4.2's publishes()).
const (
	pubOrder uint32 = 1 << iota
	pubAnalyticOrder
	pubOtcMarketsOrder
	pubSpreadOrder
	fullOrderBook
)

// Source identifies an order source: an interned record with a 32-bit
// id, a short printable name, and a capability mask (spec §3.2). It is
// a small value type, safe to copy and compare with ==.
type Source struct {
	id      int32
	name    string
	pubMask uint32
}

// ID returns the source's numeric id.
func (s Source) ID() int32 { return s.id }

// Name returns the source's printable name.
func (s Source) Name() string { return s.name }

func (s Source) String() string { return s.name }

// Publishes reports whether this source may publish the given
// concrete indexed-event kind (spec §4.2's `publishes`).
func (s Source) Publishes(kind EventKind) bool {
	switch kind {
	case EventKind_Order:
		return s.pubMask&pubOrder != 0
	case EventKind_AnalyticOrder:
		return s.pubMask&pubAnalyticOrder != 0
	case EventKind_OtcMarketsOrder:
		return s.pubMask&pubOtcMarketsOrder != 0
	case EventKind_SpreadOrder:
		return s.pubMask&pubSpreadOrder != 0
	default:
		return false
	}
}

// HasFullOrderBook reports whether this source supports a Full Order Book.
func (s Source) HasFullOrderBook() bool { return s.pubMask&fullOrderBook != 0 }

// IsSpecialSourceID reports whether id falls in the reserved range of synthetic
// sources (COMPOSITE_BID .. AGGREGATE, spec §3.2).
func IsSpecialSourceID(id int32) bool {
	return id >= specialSourceMin && id <= specialSourceMax
}

const (
	specialSourceMin = 1
	specialSourceMax = 9
)

// Predefined special (synthetic) sources.
var (
	CompositeBid = Source{id: 1, name: "COMPOSITE_BID"}
	CompositeAsk = Source{id: 2, name: "COMPOSITE_ASK"}
	RegionalBid  = Source{id: 3, name: "REGIONAL_BID"}
	RegionalAsk  = Source{id: 4, name: "REGIONAL_ASK"}
	AggregateBid = Source{id: 5, name: "AGGREGATE_BID"}
	AggregateAsk = Source{id: 6, name: "AGGREGATE_ASK"}
	Composite    = Source{id: 7, name: "COMPOSITE"}
	Regional     = Source{id: 8, name: "REGIONAL"}
	Aggregate    = Source{id: 9, name: "AGGREGATE"}
)

// DefaultSource is the default source for publishing custom order books;
// Order, AnalyticOrder, OtcMarketsOrder and SpreadOrder are all publishable.
var DefaultSource = Source{id: 0, name: "DEFAULT", pubMask: pubOrder | pubAnalyticOrder | pubOtcMarketsOrder | pubSpreadOrder | fullOrderBook}

func regular(name string, pubMask uint32) Source {
	id, err := composeSourceID(name)
	if err != nil {
		panic(err) // predefined table; programmer error if it ever fails
	}
	return Source{id: id, name: name, pubMask: pubMask}
}

// Built-in regular (publishable) sources, grounded on OrderSource.cpp's
// predefined table.
var (
	NTV  = regular("NTV", pubOrder|fullOrderBook)
	NFX  = regular("NFX", pubOrder)
	ISE  = regular("ISE", pubOrder|pubSpreadOrder)
	GLBX = regular("GLBX", pubOrder|pubAnalyticOrder)
	BYX  = regular("BYX", pubOrder)
	BZX  = regular("BZX", pubOrder)
	ARCA = regular("ARCA", pubOrder)
	Pink = regular("pink", pubOrder|pubOtcMarketsOrder)
	IEX  = regular("iex", pubOrder)
	MEMX = regular("MEMX", pubOrder)
)

var predefinedSources = map[int32]Source{}
var predefinedByName = map[string]Source{}

func registerPredefined(sources ...Source) {
	for _, s := range sources {
		predefinedSources[s.id] = s
		predefinedByName[s.name] = s
	}
}

func init() {
	registerPredefined(
		CompositeBid, CompositeAsk, RegionalBid, RegionalAsk,
		AggregateBid, AggregateAsk, Composite, Regional, Aggregate,
		DefaultSource,
		NTV, NFX, ISE, GLBX, BYX, BZX, ARCA, Pink, IEX, MEMX,
	)
}

// sourceRegistry interns user-named order sources in one global map
// behind a mutex. Lookups take the same mutex as inserts, so reads are
// not lock-free.
type sourceRegistry struct {
	mu   sync.Mutex
	byID map[int32]Source
}

var userSources = &sourceRegistry{byID: make(map[int32]Source)}

func (r *sourceRegistry) lookup(id int32) (Source, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	return s, ok
}

func (r *sourceRegistry) insert(s Source) Source {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byID[s.id]; ok {
		return existing
	}
	r.byID[s.id] = s
	return s
}

// PredefinedSources returns every built-in special and regular source,
// sorted by id, for listing/discovery callers (e.g. the MCP tool server).
func PredefinedSources() []Source {
	sources := make([]Source, 0, len(predefinedSources))
	for _, s := range predefinedSources {
		sources = append(sources, s)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].id < sources[j].id })
	return sources
}

// SourceByID resolves a Source by its numeric id (spec §4.2). If the id
// is not one of the predefined sources, it is decoded into an
// alphanumeric name and interned on first lookup.
func SourceByID(id int32) (Source, error) {
	if s, ok := predefinedSources[id]; ok {
		return s, nil
	}
	if s, ok := userSources.lookup(id); ok {
		return s, nil
	}
	name, err := decodeSourceName(id)
	if err != nil {
		return Source{}, err
	}
	return userSources.insert(Source{id: id, name: name}), nil
}

// SourceByName resolves a Source by its printable name (spec §4.2),
// validating length 1-4 and alphanumeric characters, then composing its
// id and interning it on first lookup.
func SourceByName(name string) (Source, error) {
	if s, ok := predefinedByName[name]; ok {
		return s, nil
	}
	id, err := composeSourceID(name)
	if err != nil {
		return Source{}, err
	}
	if s, ok := userSources.lookup(id); ok {
		return s, nil
	}
	return userSources.insert(Source{id: id, name: name}), nil
}

// composeSourceID packs up to 4 ASCII bytes of name into an id:
// id = sum(name[i] << 8*(len-1-i)) (spec §3.2).
func composeSourceID(name string) (int32, error) {
	n := len(name)
	if n == 0 || n > 4 {
		return 0, invalidArgumentError("%w: %q", ErrInvalidSourceName, name)
	}
	var id int32
	for i := 0; i < n; i++ {
		c := name[i]
		if !isAlphanumericByte(c) {
			return 0, invalidArgumentError("%w: %q", ErrInvalidSourceName, name)
		}
		id = (id << 8) | int32(c)
	}
	return id, nil
}

// decodeSourceName decodes an id back into its name: 4 base-256 digits,
// leading zeros dropped, each byte validated alphanumeric.
func decodeSourceName(id int32) (string, error) {
	if id == 0 {
		return "", invalidArgumentError("%w: id 0 has no decodable name", ErrInvalidSourceName)
	}
	var buf [4]byte
	n := 0
	started := false
	for shift := 24; shift >= 0; shift -= 8 {
		b := byte(id >> shift)
		if !started {
			if b == 0 {
				continue
			}
			started = true
		}
		if !isAlphanumericByte(b) {
			return "", invalidArgumentError("%w: id %d", ErrInvalidSourceName, id)
		}
		buf[n] = b
		n++
	}
	return string(buf[:n]), nil
}

func isAlphanumericByte(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
