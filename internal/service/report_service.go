package service

import (
	"context"
	"errors"

	"forestry-backend/internal/model"
	"forestry-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrNotDraft       = errors.New("only draft reports can be edited")
	ErrNotOwner       = errors.New("only the creator can edit a draft report")
	ErrInvalidPeriod  = errors.New("invalid reporting period")
)

// ReportService provides CRUD for one report model type. Status changes never
// go through here; they belong to the workflow engine.
type ReportService[T any, PT model.ReportPtr[T]] interface {
	Create(ctx context.Context, rec PT, createdBy uuid.UUID) (PT, error)
	Get(ctx context.Context, id uuid.UUID) (PT, error)
	List(ctx context.Context, filter repository.ReportFilter) ([]T, int64, error)
	UpdateDraft(ctx context.Context, id uuid.UUID, payload PT, actorID uuid.UUID) (PT, error)
}

type reportService[T any, PT model.ReportPtr[T]] struct {
	repo repository.ReportRepository[T]
}

func NewReportService[T any, PT model.ReportPtr[T]](repo repository.ReportRepository[T]) ReportService[T, PT] {
	return &reportService[T, PT]{repo: repo}
}

func (s *reportService[T, PT]) Create(ctx context.Context, rec PT, createdBy uuid.UUID) (PT, error) {
	base := rec.Base()
	// PeriodMonth 0 means a yearly report.
	if base.PeriodYear < 2000 || base.PeriodMonth < 0 || base.PeriodMonth > 12 {
		return nil, ErrInvalidPeriod
	}

	// Reports always start their lifecycle as the creator's draft.
	base.ID = uuid.Nil
	base.Status = model.StatusDraft
	base.CreatedBy = &createdBy
	base.KasiApprovedAt = nil
	base.KadisApprovedAt = nil
	base.RejectionNote = ""

	if err := s.repo.Create(ctx, (*T)(rec)); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *reportService[T, PT]) Get(ctx context.Context, id uuid.UUID) (PT, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return PT(rec), nil
}

func (s *reportService[T, PT]) List(ctx context.Context, filter repository.ReportFilter) ([]T, int64, error) {
	return s.repo.List(ctx, filter)
}

// UpdateDraft replaces the payload fields of a draft report. Lifecycle fields
// are preserved from the stored record; only the creator may edit.
func (s *reportService[T, PT]) UpdateDraft(ctx context.Context, id uuid.UUID, payload PT, actorID uuid.UUID) (PT, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	current := PT(existing).Base()
	if current.Status != model.StatusDraft {
		return nil, ErrNotDraft
	}
	if current.CreatedBy == nil || *current.CreatedBy != actorID {
		return nil, ErrNotOwner
	}

	next := payload.Base()
	next.ID = current.ID
	next.Status = current.Status
	next.CreatedBy = current.CreatedBy
	next.KasiApprovedAt = current.KasiApprovedAt
	next.KadisApprovedAt = current.KadisApprovedAt
	next.RejectionNote = current.RejectionNote
	next.CreatedAt = current.CreatedAt
	if next.ForestOfficeID == uuid.Nil {
		next.ForestOfficeID = current.ForestOfficeID
	}
	next.ForestOffice = nil
	next.Creator = nil

	if err := s.repo.Save(ctx, (*T)(payload)); err != nil {
		return nil, err
	}
	return payload, nil
}
