package model

import (
	"time"

	"forestry-backend/internal/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the central user entity for logic and database structure.
// A user holds a set of approval-chain roles; the workflow engine decides per
// role what the user may do.
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username       string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email          string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password       string         `gorm:"type:varchar(255);not null" json:"-"` // Omit password from JSON requests/responses
	ForestOfficeID *uuid.UUID     `gorm:"type:uuid;index" json:"forest_office_id"`
	ForestOffice   *ForestOffice  `gorm:"foreignKey:ForestOfficeID" json:"forest_office,omitempty"`
	Roles          []Role         `gorm:"many2many:user_roles;" json:"roles"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"` // GORM soft delete
}

// RoleNames flattens the user's role set into workflow role names.
func (u *User) RoleNames() []workflow.Role {
	names := make([]workflow.Role, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, workflow.Role(r.Name))
	}
	return names
}

// RefreshToken stores long-lived tokens allowing users to request new access tokens
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
