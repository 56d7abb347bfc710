package model

import "github.com/shopspring/decimal"

// ReforestationReport records planting activity and seedling survival for a
// reporting period.
type ReforestationReport struct {
	ReportBase
	PlantedAreaHa decimal.Decimal `gorm:"column:planted_area_ha;type:decimal(18,4);not null" json:"planted_area_ha"`
	SeedlingCount int             `gorm:"not null" json:"seedling_count" binding:"required"`
	Species       string          `gorm:"type:varchar(100)" json:"species"`
	SurvivalRate  decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"survival_rate"` // percentage
}
