package model

import "time"

// Post statuses. Transitions are driven by author/admin updates and by the
// scheduled publisher (scheduled -> published only).
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusScheduled = "scheduled"
)

type Post struct {
	ID      string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Slug    string `gorm:"type:varchar(64);uniqueIndex;not null" json:"slug"`
	Content string `gorm:"type:text;not null" json:"content"`
	Status  string `gorm:"type:varchar(16);index;not null;default:draft" json:"status"`
	Views   int64  `gorm:"not null;default:0" json:"views"`
	// PublishedAt is set when scheduling (future time) and stamped to the
	// publication moment when a post leaves the scheduled state.
	PublishedAt *time.Time `json:"publishedAt"`
	AuthorID    string     `gorm:"type:varchar(36);index:idx_post_author;not null" json:"authorId"`
	Author      *User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Tags        []*Tag     `gorm:"many2many:post_tags" json:"tags,omitempty"`
	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Post) TableName() string { return "posts" }

// IsValidStatus reports whether s is a recognized post status.
func IsValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusScheduled:
		return true
	}
	return false
}
