//go:build !waitless_enable_padding

package opt

import "sync/atomic"

const Padding_ = false

// Word_ is the state word of a sticky counter.
// Padding is disabled by default: counters are usually embedded in the
// objects they guard, and a cache line per object costs more than it saves.
type Word_ struct {
	V atomic.Uint64
}
