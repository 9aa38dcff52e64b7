package vm

import (
	"golang.org/x/sync/errgroup"
)

// Pool runs N independent workers against a shared CodeImage, each with its
// own register file and heap. Workers do not communicate: no heap is shared
// between them and the VM provides no message passing, so the read-only
// CodeImage is the only thing they have in common.
type Pool struct {
	Image    *CodeImage
	Workers  []*Worker
	Affinity bool
}

// NewPool creates n workers, all starting at function 0 (MAIN) against the
// same image snapshot.
func NewPool(image *CodeImage, n int, affinity bool) *Pool {
	workers := make([]*Worker, n)
	for i := range workers {
		workers[i] = NewWorker(uint64(i), image)
	}
	return &Pool{Image: image, Workers: workers, Affinity: affinity}
}

// WaitAll starts every worker concurrently and blocks until they all exit.
// errgroup replaces a hand-rolled WaitGroup+error-channel: the first
// worker's unexpected error (if any - Run itself only returns, it never
// errors) is what WaitAll would propagate, so here it is a join point.
func (p *Pool) WaitAll() error {
	var g errgroup.Group
	for i, w := range p.Workers {
		i, w := i, w
		g.Go(func() error {
			if p.Affinity {
				pinCurrentThread(i, len(p.Workers))
			}
			w.Run()
			return nil
		})
	}
	return g.Wait()
}
