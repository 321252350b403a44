package model

import "time"

// Like marks a user's like on a post.
// idx_like_pair = (user_id, post_id): the unique pair rejects the second of
// two concurrent toggle inserts from the same user.
type Like struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	UserID    string `gorm:"type:varchar(36);index:idx_like_pair,unique;not null"`
	PostID    string `gorm:"type:varchar(36);index:idx_like_post;index:idx_like_pair,unique;not null"`
	CreatedAt time.Time
}

func (Like) TableName() string { return "likes" }

// Favorite marks a post saved to a user's favorites.
// idx_favorite_pair = (user_id, post_id)
type Favorite struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	UserID    string `gorm:"type:varchar(36);index:idx_favorite_pair,unique;not null"`
	PostID    string `gorm:"type:varchar(36);index:idx_favorite_post;index:idx_favorite_pair,unique;not null"`
	CreatedAt time.Time
}

func (Favorite) TableName() string { return "favorites" }
