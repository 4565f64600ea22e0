package waitless_test

import (
	"fmt"

	"github.com/llxisdsh/waitless"
)

func ExampleStickyCounter() {
	c := waitless.NewStickyCounter() // the creator holds one reference

	c.Increment() // a reader joins
	fmt.Println(c.Read())

	fmt.Println(c.Decrement()) // the creator leaves
	fmt.Println(c.Decrement()) // the last reader leaves and owns the cleanup

	fmt.Println(c.Increment(), c.Read())
	// Output:
	// 2
	// false
	// true
	// false 0
}

func ExampleStickyGroup() {
	conns := waitless.NewStickyGroup(
		func(addr string) (string, error) {
			fmt.Println("dial", addr)
			return "conn:" + addr, nil
		},
		func(addr, conn string) {
			fmt.Println("close", conn)
		},
	)

	a, _ := conns.Acquire("10.0.0.1:9000")
	b, _ := conns.Acquire("10.0.0.1:9000")
	fmt.Println(a == b, conns.Refs("10.0.0.1:9000"))

	conns.Release("10.0.0.1:9000")
	conns.Release("10.0.0.1:9000")
	fmt.Println(conns.Len())
	// Output:
	// dial 10.0.0.1:9000
	// true 2
	// close conn:10.0.0.1:9000
	// 0
}
