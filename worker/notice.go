package worker

import (
	"context"
	"fmt"
	"time"

	"payexsync/dto/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	NoticeLevelError   = "error"
	NoticeLevelWarning = "warning"
)

type NoticeStore interface {
	Create(ctx context.Context, notice *model.AdminNotice) error
}

type NoticeJob struct {
	Level     string
	Message   string
	CreatedAt time.Time
}

// NoticeQueue persists admin notices in the background. Enqueueing never
// blocks; when the queue is full the notice is logged and dropped.
type NoticeQueue struct {
	jobs       chan NoticeJob
	store      NoticeStore
	logger     *zap.Logger
	Retries    int
	RetryDelay time.Duration
}

func NewNoticeQueue(store NoticeStore, size int, logger *zap.Logger) *NoticeQueue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoticeQueue{
		jobs:       make(chan NoticeJob, size),
		store:      store,
		logger:     logger,
		Retries:    3,
		RetryDelay: time.Second,
	}
}

func (q *NoticeQueue) ReportError(message string) {
	q.enqueue(NoticeLevelError, message)
}

func (q *NoticeQueue) ReportWarning(message string) {
	q.enqueue(NoticeLevelWarning, message)
}

func (q *NoticeQueue) enqueue(level, message string) {
	job := NoticeJob{Level: level, Message: message, CreatedAt: time.Now()}
	select {
	case q.jobs <- job:
	default:
		q.logger.Error("admin notice queue full, dropping notice",
			zap.String("level", level),
			zap.String("message", message))
	}
}

// Run stores queued notices until ctx is done, then drains what is left.
func (q *NoticeQueue) Run(ctx context.Context) {
	for {
		select {
		case job := <-q.jobs:
			q.process(ctx, job)
		case <-ctx.Done():
			q.drain()
			return
		}
	}
}

func (q *NoticeQueue) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case job := <-q.jobs:
			q.process(ctx, job)
		default:
			return
		}
	}
}

func (q *NoticeQueue) process(ctx context.Context, job NoticeJob) {
	if err := q.storeWithRetry(ctx, job); err != nil {
		q.logger.Error("failed to store admin notice",
			zap.String("level", job.Level),
			zap.String("message", job.Message),
			zap.Error(err))
	}
}

func (q *NoticeQueue) storeWithRetry(ctx context.Context, job NoticeJob) error {
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	notice := &model.AdminNotice{
		ID:        id.String(),
		Level:     job.Level,
		Message:   job.Message,
		CreatedAt: job.CreatedAt,
	}

	attempts := q.Retries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if lastErr = q.store.Create(ctx, notice); lastErr == nil {
			return nil
		}
		select {
		case <-time.After(q.RetryDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}
