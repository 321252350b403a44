package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/blog-platform/internal/repository"
)

type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

type FavoriteResult struct {
	Favorited     bool  `json:"favorited"`
	FavoriteCount int64 `json:"favoriteCount"`
}

// ReactionService toggles likes and favorites. Each toggle reads the current
// state and flips it inside one transaction so the boolean and its count stay
// consistent; the composite unique index on (user_id, post_id) rejects the
// loser of a concurrent double-submission.
type ReactionService struct {
	db        *gorm.DB
	posts     repository.PostRepository
	likes     repository.LikeRepository
	favorites repository.FavoriteRepository
}

func NewReactionService(db *gorm.DB, posts repository.PostRepository, likes repository.LikeRepository, favorites repository.FavoriteRepository) *ReactionService {
	return &ReactionService{db: db, posts: posts, likes: likes, favorites: favorites}
}

func (s *ReactionService) ToggleLike(ctx context.Context, userID, postID string) (*LikeResult, error) {
	var out LikeResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		liked, err := s.likes.Exists(ctx, tx, userID, postID)
		if err != nil {
			return err
		}
		if liked {
			err = s.likes.Delete(ctx, tx, userID, postID)
		} else {
			err = s.likes.Create(ctx, tx, userID, postID)
		}
		if err != nil {
			return err
		}
		count, err := s.likes.CountByPost(ctx, tx, postID)
		if err != nil {
			return err
		}
		out = LikeResult{Liked: !liked, LikeCount: count}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ReactionService) ToggleFavorite(ctx context.Context, userID, postID string) (*FavoriteResult, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var out FavoriteResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		favorited, err := s.favorites.Exists(ctx, tx, userID, postID)
		if err != nil {
			return err
		}
		if favorited {
			err = s.favorites.Delete(ctx, tx, userID, postID)
		} else {
			err = s.favorites.Create(ctx, tx, userID, postID)
		}
		if err != nil {
			return err
		}
		count, err := s.favorites.CountByPost(ctx, tx, postID)
		if err != nil {
			return err
		}
		out = FavoriteResult{Favorited: !favorited, FavoriteCount: count}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
