package model

import "forestry-backend/internal/workflow"

// ReportWorkflowMap is the transition table shared by every periodic report
// type: operators submit drafts, kasi then kadis approve in order, either
// reviewer tier (or an admin, unconditionally) rejects, operators delete their
// own drafts and admins delete anything.
func ReportWorkflowMap() workflow.Map {
	return workflow.Map{
		workflow.ActionSubmit: {
			{Role: RoleOperator, Rule: workflow.Rule{From: []string{StatusDraft, StatusRejected}, To: StatusWaitingKasi}},
		},
		workflow.ActionApprove: {
			{Role: RoleKasi, Rule: workflow.Rule{From: []string{StatusWaitingKasi}, To: StatusWaitingKadis, Timestamp: "kasi_approved_at"}},
			{Role: RoleKadis, Rule: workflow.Rule{From: []string{StatusWaitingKadis}, To: StatusFinal, Timestamp: "kadis_approved_at"}},
		},
		workflow.ActionReject: {
			{Role: RoleAdmin, Rule: workflow.Rule{}},
			{Role: RoleKasi, Rule: workflow.Rule{From: []string{StatusWaitingKasi}}},
			{Role: RoleKadis, Rule: workflow.Rule{From: []string{StatusWaitingKadis}}},
		},
		workflow.ActionDelete: {
			{Role: RoleAdmin, Rule: workflow.Rule{Delete: true}},
			{Role: RoleOperator, Rule: workflow.Rule{From: []string{StatusDraft}, Delete: true}},
		},
	}
}

// ReportTypeNames lists the route-level names of every registered report type.
var ReportTypeNames = []string{
	"timber", "forest-product", "fire", "reforestation", "tourism", "transaction",
}

// RegisterReportEntities wires every report type into the workflow registry
// under its route-level name. Called once from startup wiring.
func RegisterReportEntities(reg *workflow.Registry) {
	m := ReportWorkflowMap()
	reg.Register("timber", workflow.Entity[TimberProductionReport]{Transitions: m})
	reg.Register("forest-product", workflow.Entity[ForestProductReport]{Transitions: m})
	reg.Register("fire", workflow.Entity[ForestFireReport]{Transitions: m})
	reg.Register("reforestation", workflow.Entity[ReforestationReport]{Transitions: m})
	reg.Register("tourism", workflow.Entity[TourismVisitReport]{Transitions: m})
	reg.Register("transaction", workflow.Entity[TransactionValueReport]{Transitions: m})
}
