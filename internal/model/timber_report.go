package model

import "github.com/shopspring/decimal"

// TimberProductionReport records periodic log production per species for one
// forest office.
type TimberProductionReport struct {
	ReportBase
	Species  string          `gorm:"type:varchar(100);not null" json:"species" binding:"required"`
	LogGrade string          `gorm:"type:varchar(30)" json:"log_grade"`
	VolumeM3 decimal.Decimal `gorm:"column:volume_m3;type:decimal(18,4);not null" json:"volume_m3"`
}
