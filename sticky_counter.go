package waitless

import (
	"github.com/llxisdsh/waitless/internal/opt"
)

// StickyCounter is a wait-free 62-bit reference counter whose zero is sticky:
// once the count has dropped to zero and any caller has observed it, the
// counter stays at zero forever and no Increment can bring it back.
//
// Guarantees:
//   - Exactly one Decrement over the lifetime of the counter returns true,
//     the one that took the count from 1 to 0.
//   - Once Read returns 0, every later Read returns 0.
//   - Every operation finishes in a bounded number of atomic instructions.
//     Nothing spins, blocks or allocates.
//
// Preconditions (undefined behavior when violated; checked only with the
// waitless_debug build tag):
//   - A counter starts at 1, as if its creator had called Increment.
//   - Decrement is never called without a matching successful Increment.
//   - The count never exceeds 1<<62 - 1.
//
// The zero value is not ready for use; create counters with
// NewStickyCounter, or call Init before sharing an embedded one.
//
// Size: 8 bytes (one cache line with waitless_enable_padding).
type StickyCounter struct {
	_ noCopy
	// state 64-bit:
	//   Bit 63:   Zero (1 = dead, count is no longer interpreted)
	//   Bit 62:   Help (a Read parked a zero claim for a Decrement to take)
	//   Bit 0-61: Count
	state opt.Word_
}

const (
	stickyZero      = uint64(1) << 63
	stickyHelp      = uint64(1) << 62
	stickyValueMask = stickyHelp - 1
)

// NewStickyCounter returns a counter holding one reference.
func NewStickyCounter() *StickyCounter {
	c := &StickyCounter{}
	c.Init()
	return c
}

// Init sets the counter to one reference.
// It must be called before the counter is shared and never again after.
func (c *StickyCounter) Init() {
	c.state.V.Store(1)
}

// Increment takes a reference. It returns false if the counter is already
// zero, in which case the caller holds nothing and must not Decrement.
func (c *StickyCounter) Increment() bool {
	// The add lands even on a dead counter; its count bits are garbage from
	// then on and nothing reads them.
	prev := c.state.V.Add(1) - 1
	if prev&stickyZero != 0 {
		return false
	}
	// Each call adds one, so the increment that crosses 1<<62 - 1 is the one
	// that starts from exactly the maximum.
	if opt.Debug_ && prev == stickyValueMask {
		panic("waitless: StickyCounter overflow")
	}
	return true
}

// Decrement drops a reference. It returns true for the single call that
// released the last reference; every other call returns false.
func (c *StickyCounter) Decrement() bool {
	prev := c.state.V.Add(^uint64(0)) + 1
	if prev != 1 {
		if opt.Debug_ && prev&stickyValueMask == 0 {
			panic("waitless: StickyCounter.Decrement without a matching Increment")
		}
		return false
	}
	return c.claimZero()
}

// claimZero finalizes a 1 -> 0 transition made by the caller.
//
// Between the subtraction and this call:
//   - An Increment may have revived the count. Neither the CAS nor the help
//     bit matches, and the reviving holder owns the next transition.
//   - A Read may have seen the bare 0 and set Zero|Help. The CAS fails, and
//     whichever candidate clears Help first owns the transition. Rejected
//     increments may have dirtied the count bits by then, so Help is taken
//     with an AND rather than a CAS on the exact word.
func (c *StickyCounter) claimZero() bool {
	if c.state.V.CompareAndSwap(0, stickyZero) {
		return true
	}
	return c.state.V.And(^stickyHelp)&stickyHelp != 0
}

// Read returns the current count, or 0 once the counter is dead.
func (c *StickyCounter) Read() uint64 {
	v := c.state.V.Load()
	if v == 0 {
		// A Decrement is between its subtraction and claimZero. Returning 0
		// here without marking the word would let an Increment revive the
		// count under a later Read, so park the claim instead.
		if c.state.V.CompareAndSwap(0, stickyZero|stickyHelp) {
			return 0
		}
		return c.readAfterPark()
	}
	return decodeSticky(v)
}

// readAfterPark is Read after its CAS from 0 failed, i.e. after the word was
// seen non-zero.
func (c *StickyCounter) readAfterPark() uint64 {
	v := c.state.V.Load()
	if v == 0 {
		// A dead word never returns to a bare 0, so the CAS saw a live count
		// and this load sees 0 again: the count was 1 in between.
		return 1
	}
	return decodeSticky(v)
}

func decodeSticky(v uint64) uint64 {
	if v&stickyZero != 0 {
		return 0
	}
	return v & stickyValueMask
}
