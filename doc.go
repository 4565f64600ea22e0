// Package waitless provides wait-free reference counting built on a sticky
// zero counter.
//
// [StickyCounter] is the primitive: a counter that, once released to zero,
// stays at zero, so that "the last holder closes the resource" can be decided
// without locks even when late Increment calls race with the final Decrement.
//
// [StickyGroup] keys sticky counters by an arbitrary comparable key and opens
// and releases one shared value per key.
//
// Build tags:
//   - waitless_debug: panic on precondition violations (unbalanced
//     Decrement, count overflow).
//   - waitless_enable_padding: pad each counter to a cache line.
package waitless
