package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/propdoc/propdoc/constants"
	"github.com/propdoc/propdoc/internal/processor"
	"github.com/propdoc/propdoc/internal/store"
)

// ProcessorQueue fans queued documents out to a fixed pool of workers, each
// running process + save. One file is still processed sequentially inside a
// worker; only cross-file work runs in parallel.
type ProcessorQueue struct {
	proc    *processor.Processor
	store   *store.Store
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*ProcessorQueue)

func WithWorkers(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithProcessTimeout(d time.Duration) Option {
	return func(q *ProcessorQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewProcessorQueue(proc *processor.Processor, st *store.Store, logger *slog.Logger, opts ...Option) *ProcessorQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &ProcessorQueue{
		proc:    proc,
		store:   st,
		logger:  logger,
		workers: 2,
		timeout: 5 * time.Minute,
		ch:      make(chan Job, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *ProcessorQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("async.worker.start", "worker_id", workerID)

				for job := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					q.run(ctx, workerID, job)
					cancel()
				}

				q.logger.Info("async.worker.stop", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *ProcessorQueue) run(ctx context.Context, workerID int, job Job) {
	q.logger.Debug("async.job.status",
		"worker_id", workerID,
		"trace_id", job.TraceID,
		"job_status", string(constants.JobStatusRunning))

	res := q.proc.Process(ctx, job.Path)
	if res.ProcessingStatus == constants.StatusError {
		q.logger.Warn("async.process.failed",
			"worker_id", workerID,
			"trace_id", job.TraceID,
			"path", job.Path,
			"job_status", string(constants.JobStatusFailed),
			"error", res.ErrorMessage)
	}
	if _, err := q.store.Save(ctx, res); err != nil {
		// extraction is still good in memory; only the save needs a retry
		q.logger.Error("async.save.failed",
			"worker_id", workerID,
			"trace_id", job.TraceID,
			"path", job.Path,
			"error", err)
		return
	}

	jobStatus := constants.JobStatusExtractOK
	if res.ProcessingStatus == constants.StatusError {
		jobStatus = constants.JobStatusFailed
	}
	q.logger.Info("async.process.done",
		"worker_id", workerID,
		"trace_id", job.TraceID,
		"path", job.Path,
		"job_status", string(jobStatus),
		"wait_ms", time.Since(job.SubmittedAt).Milliseconds())
}

func (q *ProcessorQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("async.enqueue.rejected", "path", job.Path)
		return nil
	}
	select {
	case q.ch <- job:
		q.logger.Debug("async.job.status",
			"trace_id", job.TraceID,
			"job_status", string(constants.JobStatusQueued))
	default:
		q.logger.Warn("async.enqueue.backpressure", "path", job.Path)
		q.ch <- job
	}
	return nil
}

func (q *ProcessorQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("async.shutdown.interrupted")
	case <-done:
		q.logger.Info("async.shutdown.drained")
	}
}
