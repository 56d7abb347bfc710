package workflow

import (
	"context"
	"time"

	"forestry-backend/internal/dbctx"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Engine applies one workflow action to a batch of record identifiers on
// behalf of one actor, enforcing the role-gated transition rules declared in
// the entity's workflow map.
//
// Rules are tried in the order the map declares them and a record is consumed
// by at most one rule per invocation: later roles only see the identifiers no
// earlier rule has already handled, even when the actor qualifies for several
// roles at once.
type Engine struct {
	db  *gorm.DB
	now func() time.Time
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db, now: time.Now}
}

// Execute runs the role loop for one action inside a single transaction and
// returns the total number of records updated or deleted.
//
// An action the map does not know, an empty identifier list, or an actor
// qualifying for no rule all resolve to 0 without error. Callers that need to
// distinguish "forbidden" from "nothing eligible" must authorize before
// calling. The extra fields are merged into every update this invocation
// performs and ignored on delete rules.
func (e *Engine) Execute(ctx context.Context, entity Workflowable, action Action, ids []uuid.UUID, actor Actor, extra map[string]any) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	rules := entity.WorkflowMap()[action]

	var affected int64
	err := dbctx.Get(ctx, e.db).Transaction(func(tx *gorm.DB) error {
		processed := make(map[uuid.UUID]struct{})
		now := e.now()

		for _, rr := range rules {
			if !actor.IsAdmin() && !actor.HasRole(rr.Role) {
				continue
			}

			candidates := remaining(ids, processed)
			if len(candidates) == 0 {
				break
			}

			query := entity.BaseQuery(tx, candidates)
			if tx.Dialector.Name() == "postgres" {
				// Lock candidate rows before the status check so two
				// concurrent invocations cannot both consume the same record.
				query = query.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			if len(rr.Rule.From) > 0 {
				query = query.Where("status IN ?", rr.Rule.From)
			}

			var matched []uuid.UUID
			if err := query.Pluck("id", &matched).Error; err != nil {
				return err
			}
			if len(matched) == 0 {
				continue
			}

			var res *gorm.DB
			if rr.Rule.Delete {
				res = entity.BaseQuery(tx, matched).Delete(entity.NewRecord())
			} else {
				fields := map[string]any{"status": rr.Rule.To}
				if rr.Rule.To == "" {
					fields["status"] = StatusRejected
				}
				if rr.Rule.Timestamp != "" {
					fields[rr.Rule.Timestamp] = now
				}
				for k, v := range extra {
					fields[k] = v
				}
				res = entity.BaseQuery(tx, matched).Updates(fields)
			}
			if res.Error != nil {
				return res.Error
			}
			affected += res.RowsAffected

			for _, id := range matched {
				processed[id] = struct{}{}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// remaining returns ids minus the already-processed set, deduplicated and in
// input order.
func remaining(ids []uuid.UUID, processed map[uuid.UUID]struct{}) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := processed[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
