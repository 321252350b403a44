package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/blog-platform/internal/model"
	"github.com/d60-Lab/blog-platform/internal/repository"
)

func TestViewCounter_FlushOnStop(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "u1", model.RoleAuthor)
	seedPublishedPost(t, db, "p1", "u1")
	seedPublishedPost(t, db, "p2", "u1")

	vc := NewViewCounter(repository.NewPostRepository(db), 16, time.Minute)
	stop := vc.Start()

	vc.Record("p1")
	vc.Record("p1")
	vc.Record("p1")
	vc.Record("p2")

	require.NoError(t, stop(context.Background()))

	var p1, p2 model.Post
	require.NoError(t, db.First(&p1, "id = ?", "p1").Error)
	require.NoError(t, db.First(&p2, "id = ?", "p2").Error)
	assert.Equal(t, int64(3), p1.Views)
	assert.Equal(t, int64(1), p2.Views)
}

func TestViewCounter_DropsWhenFull(t *testing.T) {
	db := setupTestDB(t)
	vc := NewViewCounter(repository.NewPostRepository(db), 2, time.Minute)

	// not started, so the queue only drains on stop
	vc.Record("p1")
	vc.Record("p1")
	vc.Record("p1")
	assert.Equal(t, 2, vc.QueueLen())
}
