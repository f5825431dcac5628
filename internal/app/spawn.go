package app

import "golang.org/x/sync/errgroup"

// spawnUnits runs work(pos) once per unit position in [0, n) as its
// own goroutine and waits for all of them, in the idiom of
// janpfeifer-go-highway's workerpool (a fixed set of goroutines joined
// through a shared group rather than ad hoc WaitGroup bookkeeping at
// every call site). Every unit goroutine here always succeeds — the
// solver's failure modes are assertion panics, not recoverable errors
// — so the returned error is always nil; errgroup.Group is used
// anyway for its join semantics: Wait returns once every goroutine has
// finished, reporting the first error if any.
func spawnUnits(n int, work func(pos int)) {
	var g errgroup.Group
	for pos := 0; pos < n; pos++ {
		pos := pos
		g.Go(func() error {
			work(pos)
			return nil
		})
	}
	_ = g.Wait()
}
