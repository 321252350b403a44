package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-platform/internal/model"
	"github.com/d60-Lab/blog-platform/pkg/logger"
)

// ScheduledPublisher promotes due scheduled posts to published. It is owned
// and started by the server process; nothing registers itself on import.
type ScheduledPublisher struct {
	db       *gorm.DB
	interval time.Duration
}

func NewScheduledPublisher(db *gorm.DB, interval time.Duration) *ScheduledPublisher {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ScheduledPublisher{db: db, interval: interval}
}

// Start launches the ticker loop and returns a stop function.
func (p *ScheduledPublisher) Start() func(context.Context) error {
	stop := make(chan struct{})
	go p.loop(stop)
	return func(ctx context.Context) error { close(stop); return nil }
}

func (p *ScheduledPublisher) loop(stop <-chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if _, err := p.RunOnce(context.Background()); err != nil {
				logger.Error("scheduled publish run failed", zap.Error(err))
			}
		}
	}
}

// RunOnce publishes every post whose scheduled time has elapsed, as one
// atomic batch stamped with the reconciliation time. Re-running is a no-op:
// published rows no longer match the predicate. On error the batch rolls
// back and the next tick retries.
func (p *ScheduledPublisher) RunOnce(ctx context.Context) (int64, error) {
	now := time.Now()
	var published int64

	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Post{}).
			Where("status = ? AND published_at <= ?", model.StatusScheduled, now).
			Updates(map[string]interface{}{
				"status":       model.StatusPublished,
				"published_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		published = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	if published > 0 {
		logger.Info("published scheduled posts", zap.Int64("count", published))
	}
	return published, nil
}
