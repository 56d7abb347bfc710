package service

import (
	"context"
	"encoding/json"
	"fmt"

	"forestry-backend/internal/model"
	"forestry-backend/internal/repository"
	ws "forestry-backend/internal/websocket"
	"forestry-backend/internal/workflow"

	"github.com/google/uuid"
)

// BulkActionInput is one bulk workflow request as the handler resolved it.
type BulkActionInput struct {
	ReportType string
	Action     workflow.Action
	IDs        []uuid.UUID
	Note       string // rejection note, forwarded on reject only
}

// BulkActor combines the workflow role set with the acting user's identity,
// which the audit trail needs.
type BulkActor interface {
	workflow.Actor
	ActorID() uuid.UUID
}

// WorkflowService runs bulk workflow actions: it resolves the report type,
// invokes the engine inside one transaction together with the audit entry,
// and notifies websocket subscribers after commit.
type WorkflowService interface {
	BulkAction(ctx context.Context, in BulkActionInput, actor BulkActor) (int64, error)
}

type workflowService struct {
	registry  *workflow.Registry
	engine    *workflow.Engine
	txManager repository.TransactionManager
	auditRepo repository.AuditRepository
	hub       *ws.Hub // optional
}

func NewWorkflowService(registry *workflow.Registry, engine *workflow.Engine, txManager repository.TransactionManager, auditRepo repository.AuditRepository, hub *ws.Hub) WorkflowService {
	return &workflowService{
		registry:  registry,
		engine:    engine,
		txManager: txManager,
		auditRepo: auditRepo,
		hub:       hub,
	}
}

func (s *workflowService) BulkAction(ctx context.Context, in BulkActionInput, actor BulkActor) (int64, error) {
	entity, err := s.registry.Resolve(in.ReportType)
	if err != nil {
		return 0, err
	}
	if len(in.IDs) == 0 {
		return 0, nil
	}

	extra := map[string]any{}
	if in.Action == workflow.ActionReject && in.Note != "" {
		extra["rejection_note"] = in.Note
	}

	var affected int64
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		n, execErr := s.engine.Execute(txCtx, entity, in.Action, in.IDs, actor, extra)
		if execErr != nil {
			return fmt.Errorf("bulk %s on %s failed: %w", in.Action, in.ReportType, execErr)
		}
		affected = n

		details, _ := json.Marshal(map[string]interface{}{
			"report_type": in.ReportType,
			"action":      in.Action,
			"requested":   len(in.IDs),
			"affected":    n,
		})
		actorID := actor.ActorID()
		audit := model.AuditLog{
			UserID:     &actorID,
			Action:     model.ActionBulkWorkflow,
			EntityID:   in.ReportType,
			EntityName: string(in.Action),
			Details:    string(details),
		}
		return s.auditRepo.Log(txCtx, &audit)
	})
	if err != nil {
		return 0, err
	}

	if s.hub != nil && affected > 0 {
		s.hub.Notify(map[string]interface{}{
			"event":       "report_workflow",
			"report_type": in.ReportType,
			"action":      in.Action,
			"affected":    affected,
		})
	}

	return affected, nil
}
