package workflow

import (
	"context"
	"testing"
	"time"

	"forestry-backend/internal/dbctx"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fieldReport is a minimal report record exercising every column the engine
// touches.
type fieldReport struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status          string    `gorm:"not null"`
	KasiApprovedAt  *time.Time
	KadisApprovedAt *time.Time
	RejectionNote   string
}

const (
	statusDraft        = "DRAFT"
	statusWaitingKasi  = "WAITING_KASI"
	statusWaitingKadis = "WAITING_KADIS"
	statusFinal        = "FINAL"
)

const (
	roleOperator Role = "operator"
	roleKasi     Role = "kasi"
	roleKadis    Role = "kadis"
)

func testMap() Map {
	return Map{
		ActionSubmit: {
			{Role: roleOperator, Rule: Rule{From: []string{statusDraft, StatusRejected}, To: statusWaitingKasi}},
		},
		ActionApprove: {
			{Role: roleKasi, Rule: Rule{From: []string{statusWaitingKasi}, To: statusWaitingKadis, Timestamp: "kasi_approved_at"}},
			{Role: roleKadis, Rule: Rule{From: []string{statusWaitingKadis}, To: statusFinal, Timestamp: "kadis_approved_at"}},
		},
		ActionReject: {
			{Role: AdminRole, Rule: Rule{}},
			{Role: roleKasi, Rule: Rule{From: []string{statusWaitingKasi}}},
			{Role: roleKadis, Rule: Rule{From: []string{statusWaitingKadis}}},
		},
		ActionDelete: {
			{Role: AdminRole, Rule: Rule{Delete: true}},
			{Role: roleOperator, Rule: Rule{From: []string{statusDraft}, Delete: true}},
		},
	}
}

func testEntity() Entity[fieldReport] {
	return Entity[fieldReport]{Transitions: testMap()}
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A pooled :memory: connection would open a second, empty database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&fieldReport{}))
	return db
}

func seedReports(t *testing.T, db *gorm.DB, statuses ...string) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, len(statuses))
	for _, status := range statuses {
		rec := fieldReport{ID: uuid.New(), Status: status}
		require.NoError(t, db.Create(&rec).Error)
		ids = append(ids, rec.ID)
	}
	return ids
}

func loadReport(t *testing.T, db *gorm.DB, id uuid.UUID) fieldReport {
	t.Helper()
	var rec fieldReport
	require.NoError(t, db.First(&rec, "id = ?", id).Error)
	return rec
}

func TestExecuteSubmitMatchesStatusFilter(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	ids := seedReports(t, db, statusDraft, statusWaitingKasi, StatusRejected)

	affected, err := engine.Execute(context.Background(), testEntity(), ActionSubmit, ids, NewRoleSet(roleOperator), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	assert.Equal(t, statusWaitingKasi, loadReport(t, db, ids[0]).Status)
	// Already submitted; did not match the from filter and stays untouched.
	assert.Equal(t, statusWaitingKasi, loadReport(t, db, ids[1]).Status)
	assert.Equal(t, statusWaitingKasi, loadReport(t, db, ids[2]).Status)
	assert.Nil(t, loadReport(t, db, ids[0]).KasiApprovedAt)
}

func TestExecuteAtMostOnceConsumption(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	ids := seedReports(t, db, statusWaitingKasi, statusWaitingKadis)

	// The actor holds both approver roles. The record at the kasi tier must
	// advance one step only; the kadis rule runs after it but may not pick up
	// the record the kasi rule just moved into its from status.
	affected, err := engine.Execute(context.Background(), testEntity(), ActionApprove, ids, NewRoleSet(roleKasi, roleKadis), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	first := loadReport(t, db, ids[0])
	assert.Equal(t, statusWaitingKadis, first.Status)
	assert.NotNil(t, first.KasiApprovedAt)
	assert.Nil(t, first.KadisApprovedAt)

	second := loadReport(t, db, ids[1])
	assert.Equal(t, statusFinal, second.Status)
	assert.Nil(t, second.KasiApprovedAt)
	assert.NotNil(t, second.KadisApprovedAt)
}

func TestExecuteAdminBypassesRoleGates(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	ids := seedReports(t, db, statusWaitingKasi, statusWaitingKadis)

	affected, err := engine.Execute(context.Background(), testEntity(), ActionApprove, ids, NewRoleSet(AdminRole), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.Equal(t, statusWaitingKadis, loadReport(t, db, ids[0]).Status)
	assert.Equal(t, statusFinal, loadReport(t, db, ids[1]).Status)
}

func TestExecuteAdminDeleteIgnoresStatus(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	ids := seedReports(t, db, statusDraft, statusFinal)

	affected, err := engine.Execute(context.Background(), testEntity(), ActionDelete, ids, NewRoleSet(AdminRole), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	var count int64
	require.NoError(t, db.Model(&fieldReport{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestExecuteOperatorDeletesDraftsOnly(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	ids := seedReports(t, db, statusDraft, statusFinal)

	affected, err := engine.Execute(context.Background(), testEntity(), ActionDelete, ids, NewRoleSet(roleOperator), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var survivors []fieldReport
	require.NoError(t, db.Find(&survivors).Error)
	require.Len(t, survivors, 1)
	assert.Equal(t, ids[1], survivors[0].ID)
	assert.Equal(t, statusFinal, survivors[0].Status)
}

func TestExecuteRejectDefaultsStatusAndMergesExtraFields(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	ids := seedReports(t, db, statusWaitingKasi)

	extra := map[string]any{"rejection_note": "volume does not match the harvest permit"}
	affected, err := engine.Execute(context.Background(), testEntity(), ActionReject, ids, NewRoleSet(roleKasi), extra)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	rec := loadReport(t, db, ids[0])
	assert.Equal(t, StatusRejected, rec.Status)
	assert.Equal(t, "volume does not match the harvest permit", rec.RejectionNote)
}

func TestExecuteAdminRejectMatchesAnyStatus(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	ids := seedReports(t, db, statusDraft, statusWaitingKadis, statusFinal)

	affected, err := engine.Execute(context.Background(), testEntity(), ActionReject, ids, NewRoleSet(AdminRole), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)
	for _, id := range ids {
		assert.Equal(t, StatusRejected, loadReport(t, db, id).Status)
	}
}

func TestExecuteStampsInjectedClock(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	fixed := time.Date(2026, 1, 15, 8, 30, 0, 0, time.UTC)
	engine.now = func() time.Time { return fixed }

	ids := seedReports(t, db, statusWaitingKasi)
	affected, err := engine.Execute(context.Background(), testEntity(), ActionApprove, ids, NewRoleSet(roleKasi), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	rec := loadReport(t, db, ids[0])
	require.NotNil(t, rec.KasiApprovedAt)
	assert.True(t, rec.KasiApprovedAt.Equal(fixed))
	assert.Nil(t, rec.KadisApprovedAt)
}

func TestExecuteSecondInvocationHasNoFurtherEffect(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	ids := seedReports(t, db, statusDraft, statusDraft)
	actor := NewRoleSet(roleOperator)

	affected, err := engine.Execute(context.Background(), testEntity(), ActionSubmit, ids, actor, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	affected, err = engine.Execute(context.Background(), testEntity(), ActionSubmit, ids, actor, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestExecuteUnknownActionAffectsNothing(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	ids := seedReports(t, db, statusDraft)

	affected, err := engine.Execute(context.Background(), testEntity(), Action("archive"), ids, NewRoleSet(AdminRole), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.Equal(t, statusDraft, loadReport(t, db, ids[0]).Status)
}

func TestExecuteEmptyIDsShortCircuits(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)

	affected, err := engine.Execute(context.Background(), testEntity(), ActionSubmit, nil, NewRoleSet(roleOperator), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestExecuteDuplicateIDsProcessedOnce(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	ids := seedReports(t, db, statusDraft)
	dup := []uuid.UUID{ids[0], ids[0], ids[0]}

	affected, err := engine.Execute(context.Background(), testEntity(), ActionSubmit, dup, NewRoleSet(roleOperator), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.Equal(t, statusWaitingKasi, loadReport(t, db, ids[0]).Status)
}

func TestExecuteActorWithoutQualifyingRole(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	ids := seedReports(t, db, statusWaitingKasi)

	affected, err := engine.Execute(context.Background(), testEntity(), ActionApprove, ids, NewRoleSet(roleOperator), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.Equal(t, statusWaitingKasi, loadReport(t, db, ids[0]).Status)
}

func TestExecuteDeleteIgnoresExtraFields(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	ids := seedReports(t, db, statusDraft, statusFinal)

	// Extra fields only apply to update rules; a delete rule must not try to
	// write them into rows it is removing.
	extra := map[string]any{"rejection_note": "duplicate submission"}
	affected, err := engine.Execute(context.Background(), testEntity(), ActionDelete, ids, NewRoleSet(roleOperator), extra)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var count int64
	require.NoError(t, db.Model(&fieldReport{}).Where("id = ?", ids[0]).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	survivor := loadReport(t, db, ids[1])
	assert.Equal(t, statusFinal, survivor.Status)
	assert.Empty(t, survivor.RejectionNote)
}

func TestExecuteJoinsCallerTransaction(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	ids := seedReports(t, db, statusDraft)

	outer := db.Begin()
	require.NoError(t, outer.Error)
	ctx := dbctx.Inject(context.Background(), outer)

	affected, err := engine.Execute(ctx, testEntity(), ActionSubmit, ids, NewRoleSet(roleOperator), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// Rolling back the caller's transaction discards the engine's writes too.
	require.NoError(t, outer.Rollback().Error)
	assert.Equal(t, statusDraft, loadReport(t, db, ids[0]).Status)
}

func TestExecuteScopesToRequestedIDs(t *testing.T) {
	db := openTestDB(t)
	engine := NewEngine(db)
	ids := seedReports(t, db, statusDraft, statusDraft)

	affected, err := engine.Execute(context.Background(), testEntity(), ActionSubmit, ids[:1], NewRoleSet(roleOperator), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.Equal(t, statusWaitingKasi, loadReport(t, db, ids[0]).Status)
	assert.Equal(t, statusDraft, loadReport(t, db, ids[1]).Status)
}
