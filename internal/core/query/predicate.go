// Package query builds store-level filter predicates and page plans from
// request parameters. Predicates are a small expression tree; the db adapter
// compiles them to SQL, which keeps filter semantics out of string-built
// queries.
package query

// Field names are logical; the store adapter maps them to columns.
const (
	FieldOwner       = "owner"
	FieldCompleted   = "completed"
	FieldPriority    = "priority"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldTags        = "tags"
	FieldDueDate     = "dueDate"
	FieldCreatedAt   = "createdAt"
	FieldUpdatedAt   = "updatedAt"
)

type Predicate interface {
	pred()
}

// Eq constrains a field to an exact value.
type Eq struct {
	Field string
	Value any
}

// ContainsFold matches when the field contains Value case-insensitively.
// For the tags field it matches against any element.
type ContainsFold struct {
	Field string
	Value string
}

type And struct {
	Preds []Predicate
}

type Or struct {
	Preds []Predicate
}

func (Eq) pred()           {}
func (ContainsFold) pred() {}
func (And) pred()          {}
func (Or) pred()           {}

func AllOf(preds ...Predicate) Predicate {
	if len(preds) == 1 {
		return preds[0]
	}
	return And{Preds: preds}
}

func AnyOf(preds ...Predicate) Predicate {
	if len(preds) == 1 {
		return preds[0]
	}
	return Or{Preds: preds}
}
