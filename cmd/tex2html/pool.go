package main

import (
	"fmt"

	tex2html "github.com/alnah/go-tex2html"
)

// poolAdapter adapts *tex2html.ConverterPool to the Pool interface.
type poolAdapter struct {
	pool *tex2html.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire() (CLIConverter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics on a converter the pool did not hand out (programmer
// error).
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*tex2html.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}
