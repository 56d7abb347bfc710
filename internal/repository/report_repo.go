package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportFilter narrows report listings.
type ReportFilter struct {
	ForestOfficeID *uuid.UUID
	Status         string
	PeriodYear     int
	PeriodMonth    int
	Page           int
	Limit          int
}

// ReportRepository defines data access for one report model type. One
// instance is wired per registered report type.
type ReportRepository[T any] interface {
	Create(ctx context.Context, rec *T) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	List(ctx context.Context, filter ReportFilter) ([]T, int64, error)
	Save(ctx context.Context, rec *T) error
}

type reportRepository[T any] struct {
	db *gorm.DB
}

func NewReportRepository[T any](db *gorm.DB) ReportRepository[T] {
	return &reportRepository[T]{db: db}
}

func (r *reportRepository[T]) Create(ctx context.Context, rec *T) error {
	return GetDB(ctx, r.db).Create(rec).Error
}

func (r *reportRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var rec T
	if err := GetDB(ctx, r.db).Preload("ForestOffice").Preload("Creator").First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *reportRepository[T]) List(ctx context.Context, filter ReportFilter) ([]T, int64, error) {
	var recs []T
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(new(T))
	query = applyReportFilter(query, filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	fetchQuery := applyReportFilter(db.Preload("ForestOffice").Preload("Creator"), filter)
	if err := fetchQuery.Order("period_year DESC, period_month DESC, created_at DESC").
		Offset(offset).Limit(filter.Limit).Find(&recs).Error; err != nil {
		return nil, 0, err
	}

	return recs, total, nil
}

func (r *reportRepository[T]) Save(ctx context.Context, rec *T) error {
	return GetDB(ctx, r.db).Save(rec).Error
}

func applyReportFilter(query *gorm.DB, filter ReportFilter) *gorm.DB {
	if filter.ForestOfficeID != nil {
		query = query.Where("forest_office_id = ?", *filter.ForestOfficeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PeriodYear > 0 {
		query = query.Where("period_year = ?", filter.PeriodYear)
	}
	if filter.PeriodMonth > 0 {
		query = query.Where("period_month = ?", filter.PeriodMonth)
	}
	return query
}
