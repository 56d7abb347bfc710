package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProvinceTimberVolume ranks finalized timber production per province.
type ProvinceTimberVolume struct {
	ProvinceID    uuid.UUID       `json:"province_id"`
	ProvinceName  string          `json:"province_name"`
	TotalVolumeM3 decimal.Decimal `json:"total_volume_m3"`
}

// StatisticsResponse aggregates finalized report data over a date range.
// Only reports in FINAL status count towards any total.
type StatisticsResponse struct {
	TimeRangeStartDate    time.Time              `json:"time_range_start_date"`
	TimeRangeEndDate      time.Time              `json:"time_range_end_date"`
	TotalTimberVolumeM3   decimal.Decimal        `json:"total_timber_volume_m3"`
	TotalBurnedAreaHa     decimal.Decimal        `json:"total_burned_area_ha"`
	TotalReforestedAreaHa decimal.Decimal        `json:"total_reforested_area_ha"`
	TotalVisitors         int64                  `json:"total_visitors"`
	TotalTransactionValue decimal.Decimal        `json:"total_transaction_value"`
	TimberByProvince      []ProvinceTimberVolume `json:"timber_by_province"`
}
