package testutil

import (
	"errors"
	"sync"
	"sync/atomic"

	"toonpass/pkg/platform/sentinel"
)

// ErrDenied marks a business refusal, such as a grant turned down for
// insufficient points, so it is counted apart from real failures.
var ErrDenied = errors.New("denied")

// ConcurrentResult counts how each concurrent call ended.
type ConcurrentResult struct {
	Successes int32
	Denied    int32
	Conflicts int32
	NotFounds int32
	Errors    int32
}

func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Denied + r.Conflicts + r.NotFounds + r.Errors
}

func (r *ConcurrentResult) bucket(err error) *int32 {
	switch {
	case err == nil:
		return &r.Successes
	case errors.Is(err, ErrDenied):
		return &r.Denied
	case errors.Is(err, sentinel.ErrConflict):
		return &r.Conflicts
	case errors.Is(err, sentinel.ErrNotFound):
		return &r.NotFounds
	default:
		return &r.Errors
	}
}

// RunConcurrent starts n goroutines, releases them at once, and tallies the
// outcome of fn for each index.
func RunConcurrent(n int, fn func(idx int) error) *ConcurrentResult {
	result := &ConcurrentResult{}
	gate := make(chan struct{})
	var wg sync.WaitGroup
	for i := range n {
		wg.Go(func() {
			<-gate
			atomic.AddInt32(result.bucket(fn(i)), 1)
		})
	}
	close(gate)
	wg.Wait()
	return result
}
