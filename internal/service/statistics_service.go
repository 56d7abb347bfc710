package service

import (
	"context"
	"time"

	"forestry-backend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StatisticsService interface {
	GetStatistics(ctx context.Context, startDate, endDate time.Time) (model.StatisticsResponse, error)
}

type statisticsService struct {
	db *gorm.DB
}

func NewStatisticsService(db *gorm.DB) StatisticsService {
	return &statisticsService{db: db}
}

// GetStatistics aggregates finalized reports inside the date range. Reports
// still in the approval pipeline never count towards any total.
func (s *statisticsService) GetStatistics(ctx context.Context, startDate, endDate time.Time) (model.StatisticsResponse, error) {
	response := model.StatisticsResponse{
		TimeRangeStartDate: startDate,
		TimeRangeEndDate:   endDate,
	}

	var timber struct {
		Value decimal.Decimal
	}
	if err := s.db.WithContext(ctx).Table("timber_production_reports").
		Select("COALESCE(SUM(volume_m3), 0) as value").
		Where("status = ? AND created_at >= ? AND created_at <= ?", model.StatusFinal, startDate, endDate).
		Scan(&timber).Error; err != nil {
		return response, err
	}
	response.TotalTimberVolumeM3 = timber.Value

	var burned struct {
		Value decimal.Decimal
	}
	if err := s.db.WithContext(ctx).Table("forest_fire_reports").
		Select("COALESCE(SUM(burned_area_ha), 0) as value").
		Where("status = ? AND created_at >= ? AND created_at <= ?", model.StatusFinal, startDate, endDate).
		Scan(&burned).Error; err != nil {
		return response, err
	}
	response.TotalBurnedAreaHa = burned.Value

	var reforested struct {
		Value decimal.Decimal
	}
	if err := s.db.WithContext(ctx).Table("reforestation_reports").
		Select("COALESCE(SUM(planted_area_ha), 0) as value").
		Where("status = ? AND created_at >= ? AND created_at <= ?", model.StatusFinal, startDate, endDate).
		Scan(&reforested).Error; err != nil {
		return response, err
	}
	response.TotalReforestedAreaHa = reforested.Value

	var visitors struct {
		Value int64
	}
	if err := s.db.WithContext(ctx).Table("tourism_visit_reports").
		Select("COALESCE(SUM(domestic_visitors + foreign_visitors), 0) as value").
		Where("status = ? AND created_at >= ? AND created_at <= ?", model.StatusFinal, startDate, endDate).
		Scan(&visitors).Error; err != nil {
		return response, err
	}
	response.TotalVisitors = visitors.Value

	var transactions struct {
		Value decimal.Decimal
	}
	if err := s.db.WithContext(ctx).Table("transaction_value_reports").
		Select("COALESCE(SUM(transaction_value), 0) as value").
		Where("status = ? AND created_at >= ? AND created_at <= ?", model.StatusFinal, startDate, endDate).
		Scan(&transactions).Error; err != nil {
		return response, err
	}
	response.TotalTransactionValue = transactions.Value

	var byProvince []model.ProvinceTimberVolume
	if err := s.db.WithContext(ctx).Table("timber_production_reports").
		Select("provinces.id as province_id, provinces.name as province_name, SUM(timber_production_reports.volume_m3) as total_volume_m3").
		Joins("JOIN forest_offices ON forest_offices.id = timber_production_reports.forest_office_id").
		Joins("JOIN provinces ON provinces.id = forest_offices.province_id").
		Where("timber_production_reports.status = ? AND timber_production_reports.created_at >= ? AND timber_production_reports.created_at <= ?", model.StatusFinal, startDate, endDate).
		Group("provinces.id, provinces.name").
		Order("total_volume_m3 DESC").
		Limit(10).
		Scan(&byProvince).Error; err != nil {
		return response, err
	}
	response.TimberByProvince = byProvince

	return response, nil
}
