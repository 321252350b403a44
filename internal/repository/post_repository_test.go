package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-platform/internal/model"
)

func setupRepoDB(t testing.TB) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.Tag{}, &model.Post{},
		&model.Comment{}, &model.Like{}, &model.Favorite{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedPost(t testing.TB, db *gorm.DB, id, authorID, status string, createdAt time.Time) {
	p := model.Post{
		ID: id, Title: "post " + id, Slug: "post-" + id, Content: "<p>x</p>",
		Status: status, AuthorID: authorID,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	// CreatedAt is set by gorm on insert, backdate explicitly
	if err := db.Model(&model.Post{}).Where("id = ?", id).UpdateColumn("created_at", createdAt).Error; err != nil {
		t.Fatalf("backdate post: %v", err)
	}
}

func TestSlugExists(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	seedPost(t, db, "p1", "u1", model.StatusDraft, time.Now())

	exists, err := repo.SlugExists(ctx, "post-p1", "")
	require.NoError(t, err)
	assert.True(t, exists)

	// the post being edited does not collide with itself
	exists, err = repo.SlugExists(ctx, "post-p1", "p1")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.SlugExists(ctx, "other", "")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListPosts_Filters(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedPost(t, db, "a", "u1", model.StatusPublished, base)
	seedPost(t, db, "b", "u1", model.StatusDraft, base.AddDate(0, 0, 1))
	seedPost(t, db, "c", "u2", model.StatusPublished, base.AddDate(0, 0, 2))

	posts, total, err := repo.List(ctx, ListFilter{Page: 1, Size: 10, Status: model.StatusPublished})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	// default order is created_at DESC
	require.Len(t, posts, 2)
	assert.Equal(t, "c", posts[0].ID)

	_, total, err = repo.List(ctx, ListFilter{Page: 1, Size: 10, AuthorID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = repo.List(ctx, ListFilter{Page: 1, Size: 10, Title: "POST B"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	start := base.AddDate(0, 0, 1)
	end := base.AddDate(0, 0, 1)
	_, total, err = repo.List(ctx, ListFilter{Page: 1, Size: 10, StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	posts, _, err = repo.List(ctx, ListFilter{Page: 1, Size: 10, SortBy: "title", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "a", posts[0].ID)
}

func TestIncrementViews(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	seedPost(t, db, "p1", "u1", model.StatusPublished, time.Now())

	require.NoError(t, repo.IncrementViews(ctx, "p1", 3))
	require.NoError(t, repo.IncrementViews(ctx, "p1", 2))

	var p model.Post
	require.NoError(t, db.First(&p, "id = ?", "p1").Error)
	assert.Equal(t, int64(5), p.Views)
}

func TestCountByPostIDs(t *testing.T) {
	db := setupRepoDB(t)
	likes := NewLikeRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	seedPost(t, db, "p1", "u1", model.StatusPublished, time.Now())
	seedPost(t, db, "p2", "u1", model.StatusPublished, time.Now())
	require.NoError(t, likes.Create(ctx, db, "u2", "p1"))
	require.NoError(t, likes.Create(ctx, db, "u3", "p1"))
	require.NoError(t, comments.Create(ctx, &model.Comment{PostID: "p2", AuthorID: "u2", Content: "hi"}))

	likeCounts, err := likes.CountByPostIDs(ctx, []string{"p1", "p2"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), likeCounts["p1"])
	assert.Zero(t, likeCounts["p2"])

	commentCounts, err := comments.CountByPostIDs(ctx, []string{"p1", "p2"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), commentCounts["p2"])

	empty, err := likes.CountByPostIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func BenchmarkListPosts(b *testing.B) {
	db := setupRepoDB(b)
	repo := NewPostRepository(db)
	ctx := context.Background()

	users := make([]model.User, 20)
	for i := range users {
		id := fmt.Sprintf("u%03d", i)
		users[i] = model.User{ID: id, Name: id, Email: id + "@example.com", Password: "p", Role: model.RoleAuthor}
	}
	if err := db.Create(&users).Error; err != nil {
		b.Fatalf("seed users: %v", err)
	}
	for i := 0; i < 2000; i++ {
		id := fmt.Sprintf("p%05d", i)
		p := model.Post{
			ID: id, Title: "post " + id, Slug: "post-" + id, Content: "<p>x</p>",
			Status: model.StatusPublished, AuthorID: users[i%len(users)].ID,
		}
		if err := db.Create(&p).Error; err != nil {
			b.Fatalf("seed posts: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = repo.List(ctx, ListFilter{Page: 1 + i%10, Size: 20, Status: model.StatusPublished})
	}
}
