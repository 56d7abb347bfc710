package workflow

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workflowable is implemented by every entity type that participates in the
// approval workflow. It decouples the engine from concrete report models.
type Workflowable interface {
	// BaseQuery returns a query scoped to exactly the records whose ID is in
	// ids, with the model set and no other filters applied.
	BaseQuery(tx *gorm.DB, ids []uuid.UUID) *gorm.DB
	// NewRecord returns an empty record used as the target of bulk deletes.
	NewRecord() any
	// WorkflowMap returns the entity's transition table. Must be pure and
	// return the same table on every call.
	WorkflowMap() Map
}

// Entity adapts a concrete gorm model type to the Workflowable contract.
type Entity[T any] struct {
	Transitions Map
}

func (e Entity[T]) BaseQuery(tx *gorm.DB, ids []uuid.UUID) *gorm.DB {
	var m T
	return tx.Model(&m).Where("id IN ?", ids)
}

func (e Entity[T]) NewRecord() any {
	return new(T)
}

func (e Entity[T]) WorkflowMap() Map {
	return e.Transitions
}

// Registry resolves route-level entity names to their Workflowable
// implementation. It is populated once during startup wiring and read-only
// afterwards.
type Registry struct {
	entities map[string]Workflowable
}

func NewRegistry() *Registry {
	return &Registry{entities: make(map[string]Workflowable)}
}

func (r *Registry) Register(name string, w Workflowable) {
	r.entities[name] = w
}

func (r *Registry) Resolve(name string) (Workflowable, error) {
	w, ok := r.entities[name]
	if !ok {
		return nil, fmt.Errorf("unknown report type: %s", name)
	}
	return w, nil
}
