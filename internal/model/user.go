package model

import (
	"gorm.io/gorm"
)

// User is an authenticated principal. Files are owned by exactly one user.
type User struct {
	gorm.Model
	Username string `gorm:"type:varchar(30);not null;uniqueIndex"`
	Password string `gorm:"type:varchar(100);not null"` // bcrypt hash
	Email    string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Avatar   string `gorm:"type:varchar(255)"`
}
