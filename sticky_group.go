package waitless

import (
	"fmt"

	"github.com/llxisdsh/pb"
)

// stickyRef is one reference-counted value of a StickyGroup.
type stickyRef[V any] struct {
	rc  StickyCounter
	val V
}

// StickyGroup shares one value per key between any number of holders and
// releases it when the last holder lets go.
//
// Acquire opens the value on first use and takes a reference; Release drops
// the reference, and the call that drops the last one removes the key and
// passes the value to the release callback. An Acquire racing with that last
// Release either joins the value before it dies or opens a fresh one; it
// never receives a value that is being released.
//
// The map is a pb.MapOf, which reads bucket metadata with plain loads on
// TSO architectures such as amd64. Those reads are correct there, but the
// race detector reports them when goroutines Acquire and Release
// concurrently, so concurrent use cannot be checked with -race.
//
// Example:
//
//	files := NewStickyGroup(
//		func(name string) (*os.File, error) { return os.Open(name) },
//		func(_ string, f *os.File) { f.Close() },
//	)
//	f, err := files.Acquire("a.log")
//	...
//	files.Release("a.log")
type StickyGroup[K comparable, V any] struct {
	_       noCopy
	m       pb.MapOf[K, *stickyRef[V]]
	open    func(K) (V, error)
	release func(K, V)
}

// NewStickyGroup returns a group that creates values with open and disposes
// of them with release. open must not be nil; release may be.
//
// open runs while the key's map bucket is locked: it must not call back into
// the group, and slow opens delay other keys of the same bucket.
func NewStickyGroup[K comparable, V any](
	open func(K) (V, error),
	release func(K, V),
) *StickyGroup[K, V] {
	if open == nil {
		panic("waitless: NewStickyGroup with nil open")
	}
	return &StickyGroup[K, V]{open: open, release: release}
}

// Acquire returns the value for key and takes a reference on it, opening the
// value if the key has none. Every successful Acquire must be paired with one
// Release. On error nothing is held.
func (g *StickyGroup[K, V]) Acquire(key K) (V, error) {
	var err error
	r, _ := g.m.ProcessEntry(
		key,
		func(l *pb.EntryOf[K, *stickyRef[V]]) (*pb.EntryOf[K, *stickyRef[V]], *stickyRef[V], bool) {
			if l != nil && l.Value.rc.Increment() {
				return l, l.Value, true
			}
			// Missing, or dead and waiting for its last Release to unlink it.
			v, e := g.open(key)
			if e != nil {
				err = e
				return l, nil, false
			}
			nr := &stickyRef[V]{val: v}
			nr.rc.Init()
			return &pb.EntryOf[K, *stickyRef[V]]{Value: nr}, nr, false
		},
	)
	if err != nil {
		var zero V
		return zero, fmt.Errorf("waitless: open %v: %w", key, err)
	}
	return r.val, nil
}

// Release drops a reference taken by Acquire. It returns true for the call
// that dropped the last reference; that call has removed the key and run the
// release callback. Releasing a key that has no value returns false.
func (g *StickyGroup[K, V]) Release(key K) bool {
	// A holder keeps its ref alive, so the ref stored under key is the one
	// the caller acquired.
	r, ok := g.m.Load(key)
	if !ok || !r.rc.Decrement() {
		return false
	}
	_, _ = g.m.ProcessEntry(
		key,
		func(l *pb.EntryOf[K, *stickyRef[V]]) (*pb.EntryOf[K, *stickyRef[V]], *stickyRef[V], bool) {
			if l != nil && l.Value == r {
				return nil, nil, false
			}
			// Already replaced by a fresh value.
			return l, nil, false
		},
	)
	if g.release != nil {
		g.release(key, r.val)
	}
	return true
}

// Refs returns the number of references held on key, or 0 if it has no
// live value.
func (g *StickyGroup[K, V]) Refs(key K) uint64 {
	r, ok := g.m.Load(key)
	if !ok {
		return 0
	}
	return r.rc.Read()
}

// Len returns the number of keys, including ones whose last Release is in
// progress.
func (g *StickyGroup[K, V]) Len() int {
	return g.m.Size()
}

// Range calls f for each live value with its reference count, until f
// returns false. The count is a snapshot and may be stale by the time f runs.
func (g *StickyGroup[K, V]) Range(f func(key K, value V, refs uint64) bool) {
	g.m.Range(func(key K, r *stickyRef[V]) bool {
		n := r.rc.Read()
		if n == 0 {
			return true
		}
		return f(key, r.val, n)
	})
}
