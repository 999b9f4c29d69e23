package query

import (
	"strings"

	"todolist/internal/core/domain"
)

// BuildFilter translates listing parameters into a predicate. The owner
// constraint is always present and is the only multi-tenancy isolation
// mechanism; everything else composes on top of it with AND.
func BuildFilter(ownerID string, q domain.ListQuery) Predicate {
	preds := []Predicate{Eq{Field: FieldOwner, Value: ownerID}}

	switch q.Status {
	case domain.StatusCompleted:
		preds = append(preds, Eq{Field: FieldCompleted, Value: true})
	case domain.StatusActive:
		preds = append(preds, Eq{Field: FieldCompleted, Value: false})
	}

	// Unknown priority values are ignored rather than rejected, to stay
	// permissive on hand-typed query strings.
	if p := domain.Priority(q.Priority); p.Valid() {
		preds = append(preds, Eq{Field: FieldPriority, Value: string(p)})
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		preds = append(preds, AnyOf(
			ContainsFold{Field: FieldTitle, Value: search},
			ContainsFold{Field: FieldDescription, Value: search},
			ContainsFold{Field: FieldTags, Value: search},
		))
	}

	return AllOf(preds...)
}
