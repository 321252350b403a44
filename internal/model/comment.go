package model

import "time"

type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PostID    string    `gorm:"type:varchar(36);index:idx_comment_post;not null" json:"postId"`
	AuthorID  string    `gorm:"type:varchar(36);not null" json:"authorId"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"-"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (Comment) TableName() string { return "comments" }
