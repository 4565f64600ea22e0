//go:build waitless_debug

package waitless

import (
	"strings"
	"testing"
)

func mustPanic(t *testing.T, want string, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", want)
		}
		if s, _ := r.(string); !strings.Contains(s, want) {
			t.Fatalf("panic = %v, want it to contain %q", r, want)
		}
	}()
	f()
}

func TestStickyCounter_DebugUnbalancedDecrement(t *testing.T) {
	c := NewStickyCounter()
	c.Decrement()
	mustPanic(t, "without a matching Increment", func() { c.Decrement() })

	var live StickyCounter
	live.state.V.Store(0)
	mustPanic(t, "without a matching Increment", func() { live.Decrement() })
}

func TestStickyCounter_DebugOverflow(t *testing.T) {
	var c StickyCounter
	c.state.V.Store(stickyValueMask)
	mustPanic(t, "overflow", func() { c.Increment() })
}
