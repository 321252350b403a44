package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/blog-platform/internal/model"
	"github.com/d60-Lab/blog-platform/internal/repository"
	"github.com/d60-Lab/blog-platform/pkg/sanitize"
)

type CommentView struct {
	ID         string    `json:"id"`
	PostID     string    `json:"postId"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

func (s *CommentService) Create(ctx context.Context, actor Actor, postID, content string) (*CommentView, error) {
	if postID == "" {
		return nil, errMissingPostID
	}
	body := sanitize.HTML(content)
	if sanitize.PlainText(body) == "" {
		return nil, errEmptyContent
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := &model.Comment{PostID: postID, AuthorID: actor.ID, Content: body}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return &CommentView{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]*CommentView, error) {
	if postID == "" {
		return nil, errMissingPostID
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	views := make([]*CommentView, len(comments))
	for i, c := range comments {
		name := "Unknown Author"
		if c.Author != nil && c.Author.Name != "" {
			name = c.Author.Name
		}
		views[i] = &CommentView{
			ID:         c.ID,
			PostID:     c.PostID,
			AuthorID:   c.AuthorID,
			AuthorName: name,
			Content:    c.Content,
			CreatedAt:  c.CreatedAt,
		}
	}
	return views, nil
}
