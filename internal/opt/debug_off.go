//go:build !waitless_debug

package opt

const Debug_ = false
