package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/blog-platform/internal/model"
)

// ListFilter narrows the post list query. Zero values mean "no filter".
type ListFilter struct {
	Page      int
	Size      int
	SortBy    string // createdAt or title
	SortOrder string // asc or desc
	Title     string
	StartDate *time.Time
	EndDate   *time.Time
	AuthorID  string
	Status    string
}

type PostRepository interface {
	Create(ctx context.Context, tx *gorm.DB, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	List(ctx context.Context, f ListFilter) ([]*model.Post, int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	CountByAuthor(ctx context.Context, tx *gorm.DB, authorID string) (int64, error)
	IncrementViews(ctx context.Context, id string, delta int64) error
}

type postRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, tx *gorm.DB, post *model.Post) error {
	return tx.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *postRepository) List(ctx context.Context, f ListFilter) ([]*model.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{})

	if f.AuthorID != "" {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Title != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(f.Title)+"%")
	}
	if f.StartDate != nil {
		q = q.Where("created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("created_at <= ?", *f.EndDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at"
	if f.SortBy == "title" {
		order = "title"
	}
	if f.SortOrder == "asc" {
		order += " ASC"
	} else {
		order += " DESC"
	}

	var posts []*model.Post
	err := q.Preload("Author").
		Order(order).
		Offset((f.Page - 1) * f.Size).
		Limit(f.Size).
		Find(&posts).Error
	return posts, total, err
}

func (r *postRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return tx.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{}).Error
}

func (r *postRepository) CountByAuthor(ctx context.Context, tx *gorm.DB, authorID string) (int64, error) {
	var cnt int64
	err := tx.WithContext(ctx).Model(&model.Post{}).Where("author_id = ?", authorID).Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) IncrementViews(ctx context.Context, id string, delta int64) error {
	return r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", delta)).Error
}
