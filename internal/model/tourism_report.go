package model

import "github.com/shopspring/decimal"

// TourismVisitReport records visitor traffic and ticket revenue for forest
// parks managed by an office.
type TourismVisitReport struct {
	ReportBase
	SiteName         string          `gorm:"type:varchar(150);not null" json:"site_name" binding:"required"`
	DomesticVisitors int             `gorm:"default:0" json:"domestic_visitors"`
	ForeignVisitors  int             `gorm:"default:0" json:"foreign_visitors"`
	TicketRevenue    decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"ticket_revenue"`
}
