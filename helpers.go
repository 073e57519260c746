// Copyright (c) 2024-2026 Neomantra Corp

package mdfeed

import "time"

// Bit layout constants for the packed index used by time-series events
// and by order/trade sub-times (spec §3.4).
const (
	secondsShift = 32
	millisShift  = 22
	sequenceBits = 22
	sequenceMask = int64(1)<<sequenceBits - 1
	millisMask   = int64(0x3FF) // 10 bits
	maxSequence  = 1<<sequenceBits - 1
)

// MillisFromIndex extracts the millisecond timestamp encoded in a
// time-series index: high 32 bits are seconds (signed arithmetic
// shift), next 10 bits are milliseconds within the second.
func MillisFromIndex(index int64) int64 {
	seconds := index >> secondsShift
	millis := (index >> millisShift) & millisMask
	return seconds*1000 + millis
}

// SequenceFromIndex extracts the low 22-bit sequence from a time-series index.
func SequenceFromIndex(index int64) int32 {
	return int32(index & sequenceMask)
}

// IndexFromMillis packs a millisecond timestamp and a sequence into a
// time-series index, per spec §3.4.
func IndexFromMillis(timeMillis int64, sequence int32) int64 {
	seconds := timeMillis / 1000
	millisPart := timeMillis % 1000
	if millisPart < 0 {
		millisPart += 1000
		seconds--
	}
	return (seconds << secondsShift) | (millisPart << millisShift) | int64(sequence)
}

// TimeFromMillis converts a millisecond UNIX timestamp to time.Time in UTC.
// A zero value returns the zero time.
func TimeFromMillis(millis int64) time.Time {
	if millis == 0 {
		return time.Time{}
	}
	return time.UnixMilli(millis).UTC()
}

// MillisFromTime converts a time.Time to a millisecond UNIX timestamp.
// A zero time returns zero.
func MillisFromTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// validateSequence rejects a sequence outside 0..2^22-1 (spec §3.4).
func validateSequence(sequence int32) error {
	if sequence < 0 || sequence > maxSequence {
		return invalidArgumentError("%w: got %d", ErrInvalidSequence, sequence)
	}
	return nil
}

// isASCII7Bit reports whether r is a valid 7-bit ASCII exchange code.
func isASCII7Bit(r rune) bool {
	return r >= 0 && r <= 0x7F
}
