//go:build race

package opt

// Race_ is set when built with -race. The race detector slows atomics down
// by an order of magnitude, so stress loops scale with it.
const Race_ = true
