package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/blog-platform/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetRole returns "" with no error when the account does not exist.
	GetRole(ctx context.Context, id string) (string, error)
	UpdatePostCount(ctx context.Context, tx *gorm.DB, id string, count int64) error
	// ListAuthors returns users that either hold an authoring role or have
	// written at least one post.
	ListAuthors(ctx context.Context) ([]*model.User, error)
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetRole(ctx context.Context, id string) (string, error) {
	var roles []string
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Limit(1).
		Pluck("role", &roles).Error
	if err != nil {
		return "", err
	}
	if len(roles) == 0 {
		return "", nil
	}
	return roles[0], nil
}

func (r *userRepository) UpdatePostCount(ctx context.Context, tx *gorm.DB, id string, count int64) error {
	return tx.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("post_count", count).Error
}

func (r *userRepository) ListAuthors(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	err := r.db.WithContext(ctx).
		Where("role IN ? OR id IN (?)",
			[]string{model.RoleAuthor, model.RoleAdmin},
			r.db.Model(&model.Post{}).Select("author_id"),
		).
		Order("name ASC").
		Find(&users).Error
	return users, err
}
