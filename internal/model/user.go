package model

import "time"

// Roles mirror the identity provider's claims. AUTHOR and USER are subject
// to ownership checks; ADMIN bypasses them.
const (
	RoleAdmin  = "ADMIN"
	RoleAuthor = "AUTHOR"
	RoleUser   = "USER"
)

type User struct {
	ID       string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name     string `gorm:"type:varchar(64);index" json:"name"`
	Email    string `gorm:"type:varchar(128);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(128);not null" json:"-"`
	Role     string `gorm:"type:varchar(16);not null;default:USER" json:"role"`
	// PostCount is a derived cache, recomputed as an exact count after every
	// post create/delete so prior drift self-heals.
	PostCount int64     `gorm:"not null;default:0" json:"postCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }
