package ingestion

import (
	"context"
	"log/slog"
	"sync"
)

// Task represents a unit of work to be processed by the worker pool
type Task func(ctx context.Context) error

// WorkerPool manages concurrent processing of tasks
type WorkerPool struct {
	workerCount int
	taskQueue   chan Task
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	closed      bool
	closeMux    sync.Mutex
	logger      *slog.Logger
}

// NewWorkerPool creates a pool bound to ctx with the given number of workers
func NewWorkerPool(ctx context.Context, workerCount int, logger *slog.Logger) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	poolCtx, cancel := context.WithCancel(ctx)
	return &WorkerPool{
		workerCount: workerCount,
		taskQueue:   make(chan Task, workerCount*2),
		ctx:         poolCtx,
		cancel:      cancel,
		logger:      logger,
	}
}

// Start launches worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
	wp.logger.Debug("worker_pool_started", "workers", wp.workerCount)
}

// Submit queues a task; it returns false once the pool is cancelled.
func (wp *WorkerPool) Submit(task Task) bool {
	select {
	case wp.taskQueue <- task:
		return true
	case <-wp.ctx.Done():
		return false
	}
}

// Wait closes the queue and blocks until all queued tasks are done
func (wp *WorkerPool) Wait() {
	wp.closeMux.Lock()
	if !wp.closed {
		close(wp.taskQueue)
		wp.closed = true
	}
	wp.closeMux.Unlock()

	wp.wg.Wait()
	wp.cancel()
}

// Shutdown cancels the pool context and waits for the queue to drain
func (wp *WorkerPool) Shutdown() {
	wp.cancel()
	wp.Wait()
}

// worker runs queued tasks until the queue is closed. After cancellation the
// remaining tasks still run with the cancelled context, so each one can report
// its own outcome.
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		if err := task(wp.ctx); err != nil {
			wp.logger.Warn("worker_task_failed", "worker", id, "error", err)
		}
	}
}
