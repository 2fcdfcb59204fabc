// Package interval decides whether two half-open time intervals conflict.
// The same predicate is expressed as a Mongo range filter in the booking
// repository so the check runs on the storage engine, not in memory.
package interval

import "time"

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share at
// least one instant. Exact adjacency (aEnd == bStart) is not an overlap,
// so back-to-back bookings are allowed. Callers guarantee start < end.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
