package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-platform/internal/model"
	"github.com/d60-Lab/blog-platform/internal/repository"
)

func newReactionService(db *gorm.DB) *ReactionService {
	return NewReactionService(
		db,
		repository.NewPostRepository(db),
		repository.NewLikeRepository(db),
		repository.NewFavoriteRepository(db),
	)
}

func seedPublishedPost(t *testing.T, db *gorm.DB, id, authorID string) {
	t.Helper()
	require.NoError(t, db.Create(&model.Post{
		ID: id, Title: "p", Slug: "p-" + id, Content: "<p>x</p>",
		Status: model.StatusPublished, AuthorID: authorID,
	}).Error)
}

func TestToggleLike(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "u1", model.RoleAuthor)
	reader := seedUser(t, db, "u2", model.RoleUser)
	seedPublishedPost(t, db, "p1", "u1")
	svc := newReactionService(db)
	ctx := context.Background()

	res, err := svc.ToggleLike(ctx, reader.ID, "p1")
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, int64(1), res.LikeCount)

	res, err = svc.ToggleLike(ctx, reader.ID, "p1")
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Zero(t, res.LikeCount)
}

func TestToggleLike_CountsPerPost(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "u1", model.RoleAuthor)
	seedUser(t, db, "u2", model.RoleUser)
	seedUser(t, db, "u3", model.RoleUser)
	seedPublishedPost(t, db, "p1", "u1")
	seedPublishedPost(t, db, "p2", "u1")
	svc := newReactionService(db)
	ctx := context.Background()

	_, err := svc.ToggleLike(ctx, "u2", "p1")
	require.NoError(t, err)
	res, err := svc.ToggleLike(ctx, "u3", "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.LikeCount)

	res, err = svc.ToggleLike(ctx, "u2", "p2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.LikeCount)
}

func TestToggleFavorite(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "u1", model.RoleAuthor)
	reader := seedUser(t, db, "u2", model.RoleUser)
	seedPublishedPost(t, db, "p1", "u1")
	svc := newReactionService(db)
	ctx := context.Background()

	res, err := svc.ToggleFavorite(ctx, reader.ID, "p1")
	require.NoError(t, err)
	assert.True(t, res.Favorited)
	assert.Equal(t, int64(1), res.FavoriteCount)

	res, err = svc.ToggleFavorite(ctx, reader.ID, "p1")
	require.NoError(t, err)
	assert.False(t, res.Favorited)
	assert.Zero(t, res.FavoriteCount)
}

func TestToggleFavorite_UnknownPost(t *testing.T) {
	db := setupTestDB(t)
	reader := seedUser(t, db, "u2", model.RoleUser)
	svc := newReactionService(db)

	_, err := svc.ToggleFavorite(context.Background(), reader.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
