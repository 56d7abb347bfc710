package model

import "github.com/shopspring/decimal"

// ForestProductReport records non-timber forest product yields (rattan, resin,
// honey, bamboo, ...) with their estimated market value.
type ForestProductReport struct {
	ReportBase
	ProductName string          `gorm:"type:varchar(100);not null" json:"product_name" binding:"required"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantity"`
	Unit        string          `gorm:"type:varchar(20);not null" json:"unit" binding:"required"`
	MarketValue decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"market_value"`
}
