package renderer

import (
	"runtime"
	"sync"
)

// WorkerPool runs fn over submitted tasks on a fixed set of goroutines and
// pushes each result to resultQueue as soon as it is computed
type WorkerPool[S, R any] struct {
	taskQueue   chan S
	resultQueue chan<- R
	fn          func(S) R
	numWorkers  int
	wg          sync.WaitGroup // running workers
	pending     sync.WaitGroup // submitted but unfinished tasks
}

// NewWorkerPool creates a pool with the specified number of workers
// (0 = use CPU count). resultQueue must have room for every result or be
// drained concurrently.
func NewWorkerPool[S, R any](fn func(S) R, resultQueue chan<- R, numWorkers, queueSize int) *WorkerPool[S, R] {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool[S, R]{
		taskQueue:   make(chan S, max(queueSize, 0)),
		resultQueue: resultQueue,
		fn:          fn,
		numWorkers:  numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool[S, R]) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop shuts down all workers after queued tasks finish
func (wp *WorkerPool[S, R]) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()
}

// SubmitTask queues a task
func (wp *WorkerPool[S, R]) SubmitTask(task S) {
	wp.pending.Add(1)
	wp.taskQueue <- task
}

// Wait blocks until every submitted task has produced its result
func (wp *WorkerPool[S, R]) Wait() {
	wp.pending.Wait()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool[S, R]) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool[S, R]) run() {
	defer wp.wg.Done()
	for task := range wp.taskQueue {
		wp.resultQueue <- wp.fn(task)
		wp.pending.Done()
	}
}
