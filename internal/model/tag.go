package model

import "time"

const (
	TagNameMinLength = 1
	TagNameMaxLength = 20
	MaxTagsPerPost   = 5
)

// PresetTagNames are seeded on startup so the tag picker is never empty.
var PresetTagNames = []string{
	"Travel", "Food", "Gym", "Tec", "Education",
	"Fashion", "Photography", "Music", "Movie", "Reading",
}

type Tag struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"name"`
	Posts     []*Post   `gorm:"many2many:post_tags" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Tag) TableName() string { return "tags" }
