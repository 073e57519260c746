// Copyright (c) 2024-2026 Neomantra Corp
//
// Adapted from dxFeed's indexed-event headers:
//   _examples/original_source/include/dxfeed_graal_cpp_api/event/IndexedEvent.hpp
//   _examples/original_source/include/dxfeed_graal_cpp_api/event/TimeSeriesEvent.hpp
//   _examples/original_source/include/dxfeed_graal_cpp_api/event/market/OrderBase.hpp
//

package mdfeed

import "time"

// MarketEventHeader is the common header embedded by every event kind
// (spec §3.1): an event symbol and an event time, with no transactional
// or ordering semantics of its own.
type MarketEventHeader struct {
	EventSymbol string
	EventTime   time.Time
}

// Symbol returns the event symbol.
func (h MarketEventHeader) Symbol() string { return h.EventSymbol }

// Time returns the event time.
func (h MarketEventHeader) Time() time.Time { return h.EventTime }

// IndexedEventHeader is the common header embedded by every event that
// participates in the Indexed Transaction Model (spec §4.1): a packed
// index used for both ordering and identity, plus the transaction flags
// that drive the model's state machine.
type IndexedEventHeader struct {
	EventSymbol string
	EventTime   time.Time
	Index       int64
	EventFlags  EventFlags
}

// Symbol returns the event symbol.
func (h IndexedEventHeader) Symbol() string { return h.EventSymbol }

// Time returns the event time. TimeSeriesEventHeader overrides it with
// the time packed into Index; order-family events, Series and OptionSale
// use this method and report EventTime.
func (h IndexedEventHeader) Time() time.Time { return h.EventTime }

// Flags returns the event's transactional flags.
func (h IndexedEventHeader) Flags() EventFlags { return h.EventFlags }

// SetFlags overwrites the event's transactional flags.
func (h *IndexedEventHeader) SetFlags(f EventFlags) { h.EventFlags = f }

// TimeSeriesEventHeader specializes IndexedEventHeader for the Time-Series
// Model (spec §4.5): Index packs a millisecond timestamp and a sequence
// number, with a single implicit default source.
type TimeSeriesEventHeader struct {
	IndexedEventHeader
}

// Time returns the event time encoded in the packed index.
func (h TimeSeriesEventHeader) Time() time.Time {
	return TimeFromMillis(MillisFromIndex(h.Index))
}

// Sequence returns the low 22-bit sequence encoded in the packed index.
func (h TimeSeriesEventHeader) Sequence() int32 {
	return SequenceFromIndex(h.Index)
}

// SetTime rewrites the time portion of the packed index, preserving the
// current sequence: index = (seconds(t) << 32) | (millis(t) << 22) | sequence.
func (h *TimeSeriesEventHeader) SetTime(t time.Time) {
	h.Index = IndexFromMillis(MillisFromTime(t), h.Sequence())
}

// SetSequence rewrites the low 22-bit sequence portion of the packed
// index, rejecting a value outside 0..2^22-1.
func (h *TimeSeriesEventHeader) SetSequence(seq int32) error {
	if err := validateSequence(seq); err != nil {
		return err
	}
	h.Index = (h.Index &^ sequenceMask) | int64(seq)
	return nil
}

// source-id encoding widths for OrderBaseHeader.Index (spec §4.1): a
// special (synthetic) source id occupies the top 16 bits, leaving the
// low 48 bits free for exchange code and time/sequence sub-fields; a
// regular source id occupies the top 32 bits, leaving the low 32 bits
// free.
const (
	specialSourceIDShift    = 48
	nonSpecialSourceIDShift = 32
)

func sourceShiftFor(id int32) uint {
	if IsSpecialSourceID(id) {
		return specialSourceIDShift
	}
	return nonSpecialSourceIDShift
}

// OrderBaseHeader specializes IndexedEventHeader for the order-book
// family (Order, AnalyticOrder, OtcMarketsOrder, SpreadOrder): the
// source is not a separate field but is packed into the high bits of
// Index, so that a single int64 comparison totally orders all orders
// within a source (spec §4.1, §4.6).
type OrderBaseHeader struct {
	IndexedEventHeader
}

// Source decodes the source packed into the header's index. It first
// tries the special (16-bit) encoding; if those bits do not name a
// special source, it falls back to the regular (32-bit) encoding.
func (h OrderBaseHeader) Source() Source {
	if specialID := int32(h.Index >> specialSourceIDShift); IsSpecialSourceID(specialID) {
		if s, err := SourceByID(specialID); err == nil {
			return s
		}
	}
	regularID := int32(h.Index >> nonSpecialSourceIDShift)
	s, err := SourceByID(regularID)
	if err != nil {
		return DefaultSource
	}
	return s
}

// SetSource rewrites the source packed into the header's index,
// preserving whatever sub-index bits fall below the chosen shift.
func (h *OrderBaseHeader) SetSource(s Source) {
	shift := sourceShiftFor(s.id)
	mask := int64(1)<<shift - 1
	h.Index = (h.Index & mask) | (int64(s.id) << shift)
}
