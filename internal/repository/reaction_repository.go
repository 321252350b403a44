package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-platform/internal/model"
)

type LikeRepository interface {
	Exists(ctx context.Context, tx *gorm.DB, userID, postID string) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, userID, postID string) error
	Delete(ctx context.Context, tx *gorm.DB, userID, postID string) error
	CountByPost(ctx context.Context, tx *gorm.DB, postID string) (int64, error)
	CountByPostIDs(ctx context.Context, postIDs []string) (map[string]int64, error)
}

type FavoriteRepository interface {
	Exists(ctx context.Context, tx *gorm.DB, userID, postID string) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, userID, postID string) error
	Delete(ctx context.Context, tx *gorm.DB, userID, postID string) error
	CountByPost(ctx context.Context, tx *gorm.DB, postID string) (int64, error)
}

type likeRepository struct{ db *gorm.DB }

func NewLikeRepository(db *gorm.DB) LikeRepository { return &likeRepository{db: db} }

func (r *likeRepository) Exists(ctx context.Context, tx *gorm.DB, userID, postID string) (bool, error) {
	return pairExists(ctx, tx, &model.Like{}, userID, postID)
}

func (r *likeRepository) Create(ctx context.Context, tx *gorm.DB, userID, postID string) error {
	l := &model.Like{ID: uuid.New().String(), UserID: userID, PostID: postID}
	return tx.WithContext(ctx).Create(l).Error
}

func (r *likeRepository) Delete(ctx context.Context, tx *gorm.DB, userID, postID string) error {
	return tx.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{}).Error
}

func (r *likeRepository) CountByPost(ctx context.Context, tx *gorm.DB, postID string) (int64, error) {
	var cnt int64
	err := tx.WithContext(ctx).Model(&model.Like{}).Where("post_id = ?", postID).Count(&cnt).Error
	return cnt, err
}

func (r *likeRepository) CountByPostIDs(ctx context.Context, postIDs []string) (map[string]int64, error) {
	return countByPost(ctx, r.db, &model.Like{}, postIDs)
}

type favoriteRepository struct{ db *gorm.DB }

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository { return &favoriteRepository{db: db} }

func (r *favoriteRepository) Exists(ctx context.Context, tx *gorm.DB, userID, postID string) (bool, error) {
	return pairExists(ctx, tx, &model.Favorite{}, userID, postID)
}

func (r *favoriteRepository) Create(ctx context.Context, tx *gorm.DB, userID, postID string) error {
	f := &model.Favorite{ID: uuid.New().String(), UserID: userID, PostID: postID}
	return tx.WithContext(ctx).Create(f).Error
}

func (r *favoriteRepository) Delete(ctx context.Context, tx *gorm.DB, userID, postID string) error {
	return tx.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Favorite{}).Error
}

func (r *favoriteRepository) CountByPost(ctx context.Context, tx *gorm.DB, postID string) (int64, error) {
	var cnt int64
	err := tx.WithContext(ctx).Model(&model.Favorite{}).Where("post_id = ?", postID).Count(&cnt).Error
	return cnt, err
}

func pairExists(ctx context.Context, tx *gorm.DB, m interface{}, userID, postID string) (bool, error) {
	var cnt int64
	err := tx.WithContext(ctx).Model(m).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}
