package model

import (
	"testing"

	"forestry-backend/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportWorkflowMapShape(t *testing.T) {
	m := ReportWorkflowMap()

	submit := m[workflow.ActionSubmit]
	require.Len(t, submit, 1)
	assert.Equal(t, RoleOperator, submit[0].Role)
	assert.ElementsMatch(t, []string{StatusDraft, StatusRejected}, submit[0].Rule.From)
	assert.Equal(t, StatusWaitingKasi, submit[0].Rule.To)

	approve := m[workflow.ActionApprove]
	require.Len(t, approve, 2)
	// Tier order matters: kasi consumes before kadis.
	assert.Equal(t, RoleKasi, approve[0].Role)
	assert.Equal(t, StatusWaitingKadis, approve[0].Rule.To)
	assert.Equal(t, "kasi_approved_at", approve[0].Rule.Timestamp)
	assert.Equal(t, RoleKadis, approve[1].Role)
	assert.Equal(t, StatusFinal, approve[1].Rule.To)
	assert.Equal(t, "kadis_approved_at", approve[1].Rule.Timestamp)

	reject := m[workflow.ActionReject]
	require.Len(t, reject, 3)
	assert.Equal(t, RoleAdmin, reject[0].Role)
	assert.Empty(t, reject[0].Rule.From)
	assert.Empty(t, reject[0].Rule.To) // engine falls back to REJECTED
	assert.Equal(t, []string{StatusWaitingKasi}, reject[1].Rule.From)
	assert.Equal(t, []string{StatusWaitingKadis}, reject[2].Rule.From)

	del := m[workflow.ActionDelete]
	require.Len(t, del, 2)
	assert.Equal(t, RoleAdmin, del[0].Role)
	assert.True(t, del[0].Rule.Delete)
	assert.Empty(t, del[0].Rule.From)
	assert.Equal(t, RoleOperator, del[1].Role)
	assert.True(t, del[1].Rule.Delete)
	assert.Equal(t, []string{StatusDraft}, del[1].Rule.From)

	for _, rules := range m {
		for _, rr := range rules {
			// No rule both stamps a timestamp and deletes.
			assert.False(t, rr.Rule.Delete && rr.Rule.Timestamp != "")
		}
	}
}

func TestRegisterReportEntities(t *testing.T) {
	reg := workflow.NewRegistry()
	RegisterReportEntities(reg)

	for _, name := range ReportTypeNames {
		entity, err := reg.Resolve(name)
		require.NoError(t, err, name)
		assert.Equal(t, ReportWorkflowMap(), entity.WorkflowMap(), name)
	}

	_, err := reg.Resolve("minerals")
	assert.Error(t, err)
}
