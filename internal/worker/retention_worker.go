package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/service"
)

// RetentionWorker runs the periodic audit purge. The sweep needs no
// coordination with readers: only rows already past retention are
// deleted.
type RetentionWorker struct {
	cron   *cron.Cron
	audits *service.AuditService
	logger *zap.Logger
}

// NewRetentionWorker schedules the daily sweep.
func NewRetentionWorker(schedule string, audits *service.AuditService, logger *zap.Logger) (*RetentionWorker, error) {
	w := &RetentionWorker{
		cron:   cron.New(),
		audits: audits,
		logger: logger,
	}
	if _, err := w.cron.AddFunc(schedule, w.sweep); err != nil {
		return nil, err
	}
	return w, nil
}

// Start begins scheduled execution.
func (w *RetentionWorker) Start() {
	w.cron.Start()
}

// Stop halts the scheduler, waiting for a running sweep to finish.
func (w *RetentionWorker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
}

func (w *RetentionWorker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	deleted, err := w.audits.PurgeExpired(ctx)
	if err != nil {
		w.logger.Warn("audit retention sweep failed", zap.Error(err))
		return
	}
	w.logger.Info("audit retention sweep complete", zap.Int64("deleted", deleted))
}
