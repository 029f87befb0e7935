// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import "fmt"

// This example builds (x0+1)^2 over the rationals and prints its expansion.
func Example_basic() {
	m := New(1)
	defer m.Close()

	one := m.One()
	v0 := m.MkVar(0)

	sum, err := m.Add(v0, one)
	if err != nil {
		panic(err)
	}
	sq, err := m.Mul(sum, sum)
	if err != nil {
		panic(err)
	}

	m.DisplayHandle(exampleWriter{}, sq)
	// Output:
	// x0*x0 + 2*x0 + 1
}

// exampleWriter adapts fmt.Println to io.Writer for the Output-checked
// example above, the same trick the teacher's own example_test.go uses to
// keep Example functions free of direct os.Stdout plumbing.
type exampleWriter struct{}

func (exampleWriter) Write(p []byte) (int, error) {
	return fmt.Print(string(p))
}
