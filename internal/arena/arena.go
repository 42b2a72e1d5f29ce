// Package arena implements a bump-allocated, virtually-reserved,
// incrementally-committed byte buffer. It is the low-level allocator
// beneath the AST arena (package ast): decoded string literals and other
// raw byte payloads are pushed onto it directly.
package arena

import "fmt"

// DefaultReservation is the address space the source implementation
// reserves per compile unit (1 GiB). Reserving the full amount up front
// means growth never needs to move already-returned slices, which is the
// invariant Push's callers rely on.
const DefaultReservation = 1 << 30

// DefaultCommissionRate is the page granularity committed memory grows by.
const DefaultCommissionRate = 64 * 1024

// Buffer is a bump allocator: Push carves an aligned, zeroed region off
// the end of the committed region, growing the commitment by whole pages
// as needed. It has no per-allocation free; the whole region is released
// when the Buffer is garbage collected at the end of a compile unit.
type Buffer struct {
	reservationSize int
	commissionRate  int
	commissionSize  int
	offset          int
	data            []byte
}

// New reserves reservationSize bytes of backing storage (committing
// nothing until the first Push) and commits in commissionRate increments.
func New(reservationSize, commissionRate int) *Buffer {
	if reservationSize <= 0 {
		reservationSize = DefaultReservation
	}
	if commissionRate <= 0 {
		commissionRate = DefaultCommissionRate
	}
	return &Buffer{
		reservationSize: reservationSize,
		commissionRate:  commissionRate,
		// data starts with zero length; capacity is reserved up front so
		// that growth below never reallocates and never moves a slice
		// already returned from Push.
		data: make([]byte, 0, reservationSize),
	}
}

// ReservationSize returns the configured reservation limit.
func (b *Buffer) ReservationSize() int { return b.reservationSize }

// CommissionSize returns how many bytes are currently committed.
func (b *Buffer) CommissionSize() int { return b.commissionSize }

// Offset returns the current write offset (bytes allocated so far).
func (b *Buffer) Offset() int { return b.offset }

// alignUp rounds off up to the next multiple of alignment, which must be
// a power of two.
func alignUp(off, alignment int) int {
	return (off + alignment - 1) &^ (alignment - 1)
}

// Push returns a zero-filled region of size bytes aligned to alignment,
// growing committed memory by whole pages as needed. alignment must be a
// power of two; Push panics otherwise, since that is a programmer error
// in the caller, not a recoverable input condition.
func (b *Buffer) Push(size, alignment int) []byte {
	if alignment <= 0 || alignment&(alignment-1) != 0 {
		panic(fmt.Sprintf("arena: alignment %d is not a power of two", alignment))
	}

	start := alignUp(b.offset, alignment)
	end := start + size
	if end > b.reservationSize {
		panic(fmt.Sprintf("arena: exhausted reservation of %d bytes (requested offset %d, size %d)", b.reservationSize, start, size))
	}

	b.ensureCommitted(end)
	b.offset = end

	region := b.data[start:end:end]
	for i := range region {
		region[i] = 0
	}
	return region
}

// ensureCommitted grows b.data (within the fixed-capacity reservation) so
// that at least upTo bytes are committed, in commissionRate increments.
// Lazy first-touch: nothing is committed until the first Push call.
func (b *Buffer) ensureCommitted(upTo int) {
	if upTo <= b.commissionSize {
		return
	}
	newCommission := alignUp(upTo, b.commissionRate)
	if newCommission > b.reservationSize {
		newCommission = b.reservationSize
	}
	// The backing array's capacity was reserved in New; growing len
	// in place never moves already-issued slices.
	b.data = b.data[:newCommission]
	b.commissionSize = newCommission
}

// Bytes returns the data committed so far, for diagnostics/testing only;
// callers must not retain it across further Push calls without copying.
func (b *Buffer) Bytes() []byte { return b.data[:b.offset] }
