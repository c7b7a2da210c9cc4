// Package scratch provides pools of reusable slices for temporary rows.
package scratch

import "sync"

// Pool is a pool of slices of T. The zero value is ready to use.
type Pool[T any] struct {
	pool sync.Pool
}

// Get returns a slice of length n. Its contents are undefined. The
// caller should call Put when done with it.
func (p *Pool[T]) Get(n int) []T {
	bp, ok := p.pool.Get().(*[]T)
	if !ok || cap(*bp) < n {
		return make([]T, n)
	}
	return (*bp)[:n]
}

// Put returns s to the pool.
func (p *Pool[T]) Put(s []T) {
	if cap(s) == 0 {
		return
	}
	s = s[:cap(s)]
	p.pool.Put(&s)
}
