package model

import (
	"time"

	"github.com/google/uuid"
)

// Role represents an approval-chain role a user can hold. The built-in roles
// (admin, operator, kasi, kadis) are seeded at startup and protected from
// deletion via IsSystem.
type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsSystem    bool      `gorm:"default:false" json:"is_system"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
