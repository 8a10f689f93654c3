// Package ingest feeds newly arrived documents into the processing pipeline,
// either from a one-shot directory scan or a filesystem watch.
package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/propdoc/propdoc/internal/async"
)

// Service forwards watch events to the processing queue.
type Service struct {
	queue  async.Queue
	logger *slog.Logger
}

func NewService(queue async.Queue, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{queue: queue, logger: logger}
}

// Run consumes events until the context is cancelled or the watcher closes
// its channels. Watcher errors are logged and do not stop the loop.
func (s *Service) Run(ctx context.Context, events <-chan string, watchErrs <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-watchErrs:
			if !ok {
				return
			}
			s.logger.Error("ingest.run.watch_error", "error", err)
		case path, ok := <-events:
			if !ok {
				return
			}
			job := async.Job{
				Path:        path,
				SubmittedAt: time.Now(),
				TraceID:     uuid.New().String(),
			}
			if err := s.queue.Enqueue(ctx, job); err != nil {
				s.logger.Error("ingest.run.enqueue_failed", "path", path, "error", err)
			}
		}
	}
}
