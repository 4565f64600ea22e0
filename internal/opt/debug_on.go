//go:build waitless_debug

package opt

// Debug_ enables the counter's precondition assertions: a Decrement whose
// previous count bits were 0, and the Increment that takes the count past
// 1<<62 - 1.
// Use: go test -tags=waitless_debug
const Debug_ = true
