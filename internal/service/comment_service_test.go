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

func newCommentService(db *gorm.DB) *CommentService {
	return NewCommentService(repository.NewCommentRepository(db), repository.NewPostRepository(db))
}

func TestCreateComment(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "u1", model.RoleAuthor)
	reader := seedUser(t, db, "u2", model.RoleUser)
	seedPublishedPost(t, db, "p1", "u1")
	svc := newCommentService(db)
	ctx := context.Background()

	v, err := svc.Create(ctx, Actor{ID: reader.ID, Role: model.RoleUser}, "p1", "<p>nice <script>x</script>post</p>")
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, "p1", v.PostID)
	assert.NotContains(t, v.Content, "script")
}

func TestCreateComment_Validation(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "u1", model.RoleAuthor)
	reader := seedUser(t, db, "u2", model.RoleUser)
	seedPublishedPost(t, db, "p1", "u1")
	svc := newCommentService(db)
	ctx := context.Background()
	actor := Actor{ID: reader.ID, Role: model.RoleUser}

	_, err := svc.Create(ctx, actor, "", "hi")
	requireValidation(t, err, ReasonMissingField)

	_, err = svc.Create(ctx, actor, "p1", "<p>   </p>")
	requireValidation(t, err, ReasonEmptyContent)

	_, err = svc.Create(ctx, actor, "missing", "hi")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListComments_NewestFirstWithAuthorName(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "u1", model.RoleAuthor)
	reader := seedUser(t, db, "u2", model.RoleUser)
	seedPublishedPost(t, db, "p1", "u1")
	svc := newCommentService(db)
	ctx := context.Background()
	actor := Actor{ID: reader.ID, Role: model.RoleUser}

	first, err := svc.Create(ctx, actor, "p1", "first")
	require.NoError(t, err)
	second, err := svc.Create(ctx, actor, "p1", "second")
	require.NoError(t, err)

	list, err := svc.ListByPost(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	ids := []string{list[0].ID, list[1].ID}
	assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)
	assert.Equal(t, "user u2", list[0].AuthorName)

	// a comment from a vanished account falls back to a placeholder
	require.NoError(t, db.Create(&model.Comment{ID: "orphan", PostID: "p1", AuthorID: "gone", Content: "hi"}).Error)
	list, err = svc.ListByPost(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, c := range list {
		if c.ID == "orphan" {
			assert.Equal(t, "Unknown Author", c.AuthorName)
		}
	}
}
