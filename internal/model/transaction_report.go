package model

import "github.com/shopspring/decimal"

// TransactionValueReport records the economic transaction value of forestry
// commodities traded in the reporting period.
type TransactionValueReport struct {
	ReportBase
	Commodity        string          `gorm:"type:varchar(100);not null" json:"commodity" binding:"required"`
	TransactionValue decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"transaction_value"`
	BuyerRegion      string          `gorm:"type:varchar(100)" json:"buyer_region"`
}
