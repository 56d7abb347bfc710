package model

import "github.com/shopspring/decimal"

// FireCause enum constants
const (
	FireCauseSlashAndBurn = "SLASH_AND_BURN"
	FireCauseLightning    = "LIGHTNING"
	FireCauseUnknown      = "UNKNOWN"
)

// ForestFireReport records fire incidents in a reporting period.
type ForestFireReport struct {
	ReportBase
	BurnedAreaHa  decimal.Decimal `gorm:"column:burned_area_ha;type:decimal(18,4);not null" json:"burned_area_ha"`
	HotspotCount  int             `gorm:"default:0" json:"hotspot_count"`
	IncidentCount int             `gorm:"default:0" json:"incident_count"`
	Cause         string          `gorm:"type:varchar(30);not null;default:'UNKNOWN'" json:"cause"`
}
