//go:build waitless_enable_padding

package opt

import (
	"sync/atomic"
	"unsafe"
)

const Padding_ = true

// Word_ is the state word of a sticky counter.
// Padding is force-enabled via the waitless_enable_padding build tag, so
// that counters laid out in an array do not share cache lines.
// Use: go build -tags=waitless_enable_padding
type Word_ struct {
	V atomic.Uint64
	_ [(CacheLineSize_ - unsafe.Sizeof(atomic.Uint64{})%CacheLineSize_) % CacheLineSize_]byte
}
