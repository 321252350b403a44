package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/blog-platform/internal/repository"
	"github.com/d60-Lab/blog-platform/pkg/logger"
)

// ViewCounter batches post view increments off the request path. Events go
// through a buffered channel; when it is full the view is dropped rather
// than blocking a handler.
type ViewCounter struct {
	posts    repository.PostRepository
	ch       chan string
	interval time.Duration
}

func NewViewCounter(posts repository.PostRepository, queueSize int, interval time.Duration) *ViewCounter {
	if queueSize <= 0 {
		queueSize = 10000
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &ViewCounter{posts: posts, ch: make(chan string, queueSize), interval: interval}
}

// Record notes one view of the post. Never blocks.
func (v *ViewCounter) Record(postID string) {
	select {
	case v.ch <- postID:
	default:
		logger.Warn("view counter queue full, drop view", zap.String("post", postID))
	}
}

// Start launches the flush loop and returns a stop function that drains
// pending views before returning.
func (v *ViewCounter) Start() func(context.Context) error {
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(v.interval)
		defer ticker.Stop()
		pending := make(map[string]int64)
		for {
			select {
			case id := <-v.ch:
				pending[id]++
			case <-ticker.C:
				v.flush(pending)
				pending = make(map[string]int64)
			case <-stop:
				for {
					select {
					case id := <-v.ch:
						pending[id]++
					default:
						v.flush(pending)
						return
					}
				}
			}
		}
	}()
	return func(ctx context.Context) error {
		close(stop)
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	}
}

func (v *ViewCounter) flush(pending map[string]int64) {
	if len(pending) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for id, n := range pending {
		if err := v.posts.IncrementViews(ctx, id, n); err != nil {
			logger.Warn("flush views failed", zap.String("post", id), zap.Error(err))
		}
	}
}

// QueueLen returns the current queue length (sampled).
func (v *ViewCounter) QueueLen() int { return len(v.ch) }
