package renderer

import (
	"context"
	"sync"
)

// WorkerConfig controls how a Worker splits and runs its items
type WorkerConfig struct {
	ChunkSize  int // Items processed between cancellation checks
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultWorkerConfig returns sensible default values
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		ChunkSize:  256,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Worker computes fn over a list of items in the background and streams
// results to a polling consumer.
//
// One orchestrating goroutine walks the items in consecutive chunks. Before
// each chunk it checks for cancellation without blocking; if none, it fans the
// chunk out over a WorkerPool and waits for it. Results arrive one by one in
// completion order, not grouped by chunk. Cancellation only takes effect at
// chunk boundaries, so every started item delivers its result exactly once.
type Worker[S, R any] struct {
	results    chan R
	cancel     chan struct{}
	cancelOnce sync.Once
	done       chan struct{}
	total      int
	numWorkers int
}

// NewWorker starts processing items. Cancelling ctx has the same effect as
// Finish without the wait.
func NewWorker[S, R any](ctx context.Context, items []S, fn func(S) R, config WorkerConfig) *Worker[S, R] {
	chunkSize := config.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultWorkerConfig().ChunkSize
	}

	// room for every result, so producers never wait on the consumer
	results := make(chan R, len(items))
	pool := NewWorkerPool(fn, results, config.NumWorkers, chunkSize)

	w := &Worker[S, R]{
		results:    results,
		cancel:     make(chan struct{}),
		done:       make(chan struct{}),
		total:      len(items),
		numWorkers: pool.GetNumWorkers(),
	}

	go w.run(ctx, items, pool, chunkSize)
	return w
}

func (w *Worker[S, R]) run(ctx context.Context, items []S, pool *WorkerPool[S, R], chunkSize int) {
	defer close(w.done)
	defer close(w.results)

	pool.Start()
	defer pool.Stop()

	for start := 0; start < len(items); start += chunkSize {
		select {
		case <-w.cancel:
			return
		case <-ctx.Done():
			return
		default:
		}

		end := min(start+chunkSize, len(items))
		for _, item := range items[start:end] {
			pool.SubmitTask(item)
		}
		pool.Wait()
	}
}

// Fetch drains every result available right now without blocking. ok is
// false once the worker has stopped and every result has been fetched;
// until then values may be empty. Results that arrive together with the
// shutdown are returned first, with ok true.
func (w *Worker[S, R]) Fetch() (values []R, ok bool) {
	for {
		select {
		case r, open := <-w.results:
			if !open {
				return values, len(values) > 0
			}
			values = append(values, r)
		default:
			return values, true
		}
	}
}

// Finish stops the worker at the next chunk boundary and waits for the
// orchestrating goroutine and its pool to exit. Results produced before the
// stop remain available to Fetch. Safe to call more than once.
func (w *Worker[S, R]) Finish() {
	w.cancelOnce.Do(func() { close(w.cancel) })
	<-w.done
}

// Done is closed once the worker has stopped producing results
func (w *Worker[S, R]) Done() <-chan struct{} {
	return w.done
}

// NumWorkers returns how many goroutines process each chunk
func (w *Worker[S, R]) NumWorkers() int {
	return w.numWorkers
}

// Total returns the number of items the worker was given
func (w *Worker[S, R]) Total() int {
	return w.total
}
