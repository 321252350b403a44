package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-platform/internal/model"
)

func seedScheduledPost(t *testing.T, db *gorm.DB, id string, publishedAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&model.Post{
		ID:          id,
		Title:       "p " + id,
		Slug:        "p-" + id,
		Content:     "<p>x</p>",
		Status:      model.StatusScheduled,
		PublishedAt: &publishedAt,
		AuthorID:    "u1",
	}).Error)
}

func TestScheduledPublisher_RunOnce(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "u1", model.RoleAuthor)

	now := time.Now()
	seedScheduledPost(t, db, "due1", now.Add(-2*time.Hour))
	seedScheduledPost(t, db, "due2", now.Add(-time.Minute))
	seedScheduledPost(t, db, "later", now.Add(time.Hour))

	p := NewScheduledPublisher(db, time.Hour)
	n, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	var due model.Post
	require.NoError(t, db.First(&due, "id = ?", "due1").Error)
	assert.Equal(t, model.StatusPublished, due.Status)
	require.NotNil(t, due.PublishedAt)
	// the stamp is the reconciliation time, not the requested time
	assert.WithinDuration(t, now, *due.PublishedAt, 5*time.Second)

	var later model.Post
	require.NoError(t, db.First(&later, "id = ?", "later").Error)
	assert.Equal(t, model.StatusScheduled, later.Status)
	assert.WithinDuration(t, now.Add(time.Hour), *later.PublishedAt, 5*time.Second)
}

func TestScheduledPublisher_RunOnceIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "u1", model.RoleAuthor)
	seedScheduledPost(t, db, "due", time.Now().Add(-time.Hour))

	p := NewScheduledPublisher(db, time.Hour)
	ctx := context.Background()

	n, err := p.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = p.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestScheduledPublisher_NoDuePosts(t *testing.T) {
	db := setupTestDB(t)
	p := NewScheduledPublisher(db, time.Hour)
	n, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
