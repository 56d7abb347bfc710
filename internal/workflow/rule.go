package workflow

// Action names a workflow operation a caller may request on a batch of records.
type Action string

// Role names a position in the approval chain.
type Role string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionDelete  Action = "delete"
)

// AdminRole bypasses every role gate in every workflow map.
const AdminRole Role = "admin"

// StatusRejected is the destination status the engine falls back to when a rule
// omits To. Only reject-shaped rules rely on this; every other rule spells out
// its destination explicitly.
const StatusRejected = "REJECTED"

// Rule is one role's entry in a workflow map for one action.
type Rule struct {
	From      []string // statuses the record must currently hold; nil matches any status
	To        string   // destination status; empty falls back to StatusRejected
	Timestamp string   // column stamped with the invocation time, if set
	Delete    bool     // delete matching records instead of updating them
}

// RoleRule pairs a role with the rule it is granted for an action.
type RoleRule struct {
	Role Role
	Rule Rule
}

// Map is a per-entity transition table: for each action, the role rules in the
// order they are tried. Earlier roles consume matching records first; a record
// handled by one rule is invisible to every later rule in the same invocation.
type Map map[Action][]RoleRule
