package analyzer

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs pixel-pass chunks on a fixed set of goroutines shared by
// all validation calls.
type WorkerPool struct {
	workers  int
	jobQueue chan func()
	wg       sync.WaitGroup
	once     sync.Once

	mu     sync.RWMutex
	closed bool

	totalJobs     atomic.Int64
	completedJobs atomic.Int64
	activeWorkers atomic.Int64
}

// PoolStats is a snapshot of pool counters
type PoolStats struct {
	Workers       int   `json:"workers"`
	TotalJobs     int64 `json:"totalJobs"`
	CompletedJobs int64 `json:"completedJobs"`
	ActiveWorkers int64 `json:"activeWorkers"`
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &WorkerPool{
		workers:  workers,
		jobQueue: make(chan func(), workers*2),
	}
}

// Start initializes and starts all workers in the pool
func (wp *WorkerPool) Start() {
	wp.once.Do(func() {
		for i := 0; i < wp.workers; i++ {
			go wp.worker()
		}
	})
}

// worker processes jobs from the job queue
func (wp *WorkerPool) worker() {
	for job := range wp.jobQueue {
		wp.activeWorkers.Add(1)
		job()
		wp.activeWorkers.Add(-1)
		wp.completedJobs.Add(1)
		wp.wg.Done()
	}
}

// Submit queues a job. It returns false once the pool is closed.
func (wp *WorkerPool) Submit(job func()) bool {
	wp.Start()

	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return false
	}

	wp.wg.Add(1)
	wp.totalJobs.Add(1)
	wp.jobQueue <- job
	return true
}

// Process calls fn(0..n-1) on the pool and returns when all calls finished.
// Indices the pool refuses run on the calling goroutine. A nil pool runs
// everything sequentially.
func (wp *WorkerPool) Process(n int, fn func(i int)) {
	if wp == nil || n <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		ok := wp.Submit(func() {
			defer wg.Done()
			fn(i)
		})
		if !ok {
			fn(i)
			wg.Done()
		}
	}
	wg.Wait()
}

// Wait waits for all submitted jobs to complete
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// GetStats returns the current counters
func (wp *WorkerPool) GetStats() PoolStats {
	return PoolStats{
		Workers:       wp.workers,
		TotalJobs:     wp.totalJobs.Load(),
		CompletedJobs: wp.completedJobs.Load(),
		ActiveWorkers: wp.activeWorkers.Load(),
	}
}

// Close shuts down the worker pool. Queued jobs still run.
func (wp *WorkerPool) Close() {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	if wp.closed {
		return
	}
	wp.closed = true
	close(wp.jobQueue)
}
