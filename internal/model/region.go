package model

import (
	"time"

	"github.com/google/uuid"
)

// Province is reference data for regional grouping of forest offices.
type Province struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ForestOffice is a regional forestry office: the tenant every report belongs
// to and the unit operators are attached to.
type ForestOffice struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code       string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	Name       string    `gorm:"type:varchar(150);not null" json:"name"`
	ProvinceID uuid.UUID `gorm:"type:uuid;not null;index" json:"province_id"`
	Province   *Province `gorm:"foreignKey:ProvinceID" json:"province,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
