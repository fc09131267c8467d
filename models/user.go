package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values stored on users.role.
const (
	RoleInnovator = "INNOVATOR"
	RoleModerator = "MODERATOR"
	RoleExecutive = "EXECUTIVE"
	RoleAdmin     = "ADMIN"
)

type User struct {
	ID        string     `gorm:"primaryKey;column:id" json:"id"`
	Name      string     `gorm:"column:name" json:"name"`
	Email     string     `gorm:"column:email;unique" json:"email"`
	Password  string     `gorm:"column:password" json:"-"`
	Role      string     `gorm:"column:role" json:"role"`
	AvatarURL *string    `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Initial returns the uppercase first letter of the display name, "?" when empty.
func (u *User) Initial() string {
	for _, r := range u.Name {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		return string(r)
	}
	return "?"
}

func (User) TableName() string {
	return "users"
}
