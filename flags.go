// Copyright (c) 2024-2026 Neomantra Corp
//
// Adapted from dxFeed's event-flags bit layout:
//   _examples/original_source/include/dxfeed_graal_cpp_api/event/EventFlag.hpp
//

package mdfeed

import "strings"

// EventFlags is the 8-bit transactional mask carried by every indexed
// and time-series event (spec §3.3).
type EventFlags uint8

const (
	// TxPending marks an event as part of an in-progress multi-event transaction.
	TxPending EventFlags = 0x01
	// RemoveEvent marks that the event with this index must be removed.
	RemoveEvent EventFlags = 0x02
	// SnapshotBegin marks the first event of a snapshot load.
	SnapshotBegin EventFlags = 0x04
	// SnapshotEnd marks the last event of a complete snapshot load.
	SnapshotEnd EventFlags = 0x08
	// SnapshotSnip marks the last event of a truncated snapshot load.
	SnapshotSnip EventFlags = 0x10
	// bit 5 (0x20) is reserved and must be preserved on round-trip.
	flagsReserved EventFlags = 0x20
	// SnapshotMode is a publisher hint to activate snapshot mode; it is
	// not itself a protocol transition for a consumer.
	SnapshotMode EventFlags = 0x40
	// RemoveSymbol is an internal unsubscribe marker.
	RemoveSymbol EventFlags = 0x80
)

var flagNames = []struct {
	flag EventFlags
	name string
}{
	{TxPending, "TX_PENDING"},
	{RemoveEvent, "REMOVE_EVENT"},
	{SnapshotBegin, "SNAPSHOT_BEGIN"},
	{SnapshotEnd, "SNAPSHOT_END"},
	{SnapshotSnip, "SNAPSHOT_SNIP"},
	{SnapshotMode, "SNAPSHOT_MODE"},
	{RemoveSymbol, "REMOVE_SYMBOL"},
}

// Has reports whether every bit of other is set in f (membership test).
func (f EventFlags) Has(other EventFlags) bool {
	return f&other == other
}

// Any reports whether any bit of other is set in f.
func (f EventFlags) Any(other EventFlags) bool {
	return f&other != 0
}

// With returns the union of f and other.
func (f EventFlags) With(other EventFlags) EventFlags {
	return f | other
}

// Without returns f with every bit of other cleared.
func (f EventFlags) Without(other EventFlags) EventFlags {
	return f &^ other
}

// And returns the intersection of f and other.
func (f EventFlags) And(other EventFlags) EventFlags {
	return f & other
}

// String renders a pipe-joined list of set flag names with a trailing
// hex literal, e.g. "TX_PENDING|SNAPSHOT_BEGIN (0x05)".
func (f EventFlags) String() string {
	var names []string
	for _, fn := range flagNames {
		if f.Any(fn.flag) {
			names = append(names, fn.name)
		}
	}
	if len(names) == 0 {
		return "(0x00)"
	}
	return strings.Join(names, "|") + " (" + hexByte(uint8(f)) + ")"
}

func hexByte(b uint8) string {
	const digits = "0123456789abcdef"
	return "0x" + string([]byte{digits[b>>4], digits[b&0xF]})
}
