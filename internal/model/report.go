package model

import (
	"time"

	"forestry-backend/internal/workflow"

	"github.com/google/uuid"
)

// Report lifecycle statuses shared by every report type.
const (
	StatusDraft        = "DRAFT"
	StatusWaitingKasi  = "WAITING_KASI"
	StatusWaitingKadis = "WAITING_KADIS"
	StatusFinal        = "FINAL"
	StatusRejected     = workflow.StatusRejected
)

// Approval-chain roles. Operators at the regional forest offices create and
// submit reports, the section head (kasi) reviews first, the department head
// (kadis) finalizes.
const (
	RoleAdmin    = workflow.AdminRole
	RoleOperator workflow.Role = "operator"
	RoleKasi     workflow.Role = "kasi"
	RoleKadis    workflow.Role = "kadis"
)

// ReportBase carries the identity, reporting period and approval lifecycle
// fields shared by every report type. PeriodMonth is 0 for yearly reports.
type ReportBase struct {
	ID              uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ForestOfficeID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"forest_office_id"`
	ForestOffice    *ForestOffice `gorm:"foreignKey:ForestOfficeID" json:"forest_office,omitempty"`
	PeriodMonth     int           `gorm:"not null;index" json:"period_month"`
	PeriodYear      int           `gorm:"not null;index" json:"period_year"`
	Status          string        `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	CreatedBy       *uuid.UUID    `gorm:"type:uuid;index" json:"created_by"`
	Creator         *User         `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	KasiApprovedAt  *time.Time    `json:"kasi_approved_at"`
	KadisApprovedAt *time.Time    `json:"kadis_approved_at"`
	RejectionNote   string        `gorm:"type:text" json:"rejection_note"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Base exposes the shared lifecycle fields to generic report code.
func (b *ReportBase) Base() *ReportBase { return b }

// ReportPtr constrains pointers to report model types.
type ReportPtr[T any] interface {
	*T
	Base() *ReportBase
}
