package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/sjperalta/marketplace-admin-api/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker runs queued jobs on a fixed pool and recurring jobs on tickers
type Worker struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	queue   chan Job
	closeMu sync.RWMutex
	closed  bool
	stats   WorkerStats
	statsMu sync.RWMutex
}

// WorkerStats holds statistics about the worker
type WorkerStats struct {
	ActiveJobs    int   `json:"active_jobs"`
	CompletedJobs int64 `json:"completed_jobs"` // finished, successful or not
	FailedJobs    int64 `json:"failed_jobs"`
	QueueLength   int   `json:"queue_length"`
}

// NewWorker creates a worker with N concurrent processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		ctx:    ctx,
		cancel: cancel,
		queue:  make(chan Job, 100),
	}

	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to the pool. When the queue is full the job runs on the caller's goroutine.
func (w *Worker) Enqueue(job Job) {
	w.closeMu.RLock()
	defer w.closeMu.RUnlock()

	if w.closed {
		logger.Warn("[Worker] Enqueue after shutdown, job dropped")
		return
	}

	select {
	case w.queue <- job:
	default:
		logger.Warn("[Worker] Queue full, running job synchronously")
		w.run(context.WithoutCancel(w.ctx), "queue-overflow", job)
	}
}

func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	// queued jobs are drained on shutdown, so they must not see the cancellation
	jobCtx := context.WithoutCancel(w.ctx)
	for job := range w.queue {
		w.run(jobCtx, "pool", job, "worker", workerID)
	}
}

// ScheduleEvery runs a job at fixed intervals. The first run happens after the interval.
func (w *Worker) ScheduleEvery(interval time.Duration, job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.run(w.ctx, "scheduler", job)
			}
		}
	}()
}

func (w *Worker) run(ctx context.Context, kind string, job Job, attrs ...any) {
	w.trackJobStart()
	defer w.trackJobEnd()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("[Worker] Job panic", append(attrs, "kind", kind, "panic", r)...)
			w.trackJobFailure()
		}
	}()

	start := time.Now()
	if err := job(ctx); err != nil {
		logger.Error("[Worker] Job error", append(attrs, "kind", kind, "error", err)...)
		w.trackJobFailure()
		return
	}
	logger.Debug("[Worker] Job completed", append(attrs, "kind", kind, "elapsed", time.Since(start))...)
}

// Shutdown drains queued jobs, stops the schedulers and waits for everything to finish
func (w *Worker) Shutdown() {
	w.closeMu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.closeMu.Unlock()

	w.cancel()
	w.wg.Wait()
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

func (w *Worker) trackJobEnd() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
}

func (w *Worker) trackJobFailure() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.FailedJobs++
}
