package db

import (
	"fmt"
	"strings"

	"todolist/internal/core/query"
)

// columnFor maps the logical field names used by predicates and page plans
// onto the tasks table columns.
var columnFor = map[string]string{
	query.FieldOwner:       "user_id",
	query.FieldCompleted:   "completed",
	query.FieldPriority:    "priority",
	query.FieldTitle:       "title",
	query.FieldDescription: "description",
	query.FieldTags:        "tags",
	query.FieldDueDate:     "due_date",
	query.FieldCreatedAt:   "created_at",
	query.FieldUpdatedAt:   "updated_at",
}

// compilePredicate renders a predicate tree as a SQL condition with
// placeholder arguments.
func compilePredicate(p query.Predicate) (string, []any, error) {
	switch node := p.(type) {
	case query.Eq:
		column, ok := columnFor[node.Field]
		if !ok {
			return "", nil, fmt.Errorf("unknown filter field %q", node.Field)
		}
		return column + " = ?", []any{node.Value}, nil

	case query.ContainsFold:
		return compileContainsFold(node)

	case query.And:
		return compileJunction(node.Preds, " AND ")

	case query.Or:
		return compileJunction(node.Preds, " OR ")

	default:
		return "", nil, fmt.Errorf("unknown predicate node %T", p)
	}
}

func compileContainsFold(node query.ContainsFold) (string, []any, error) {
	column, ok := columnFor[node.Field]
	if !ok {
		return "", nil, fmt.Errorf("unknown filter field %q", node.Field)
	}

	// Tags live in a JSON column; matching against its text form covers
	// "any element contains" without unrolling the array.
	expr := "LOWER(" + column + ")"
	if node.Field == query.FieldTags {
		expr = "LOWER(CAST(" + column + " AS CHAR))"
	}
	return expr + " LIKE ?", []any{"%" + escapeLike(strings.ToLower(node.Value)) + "%"}, nil
}

func compileJunction(preds []query.Predicate, op string) (string, []any, error) {
	if len(preds) == 0 {
		return "", nil, fmt.Errorf("empty predicate junction")
	}

	clauses := make([]string, 0, len(preds))
	var args []any
	for _, pred := range preds {
		clause, predArgs, err := compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		clauses = append(clauses, clause)
		args = append(args, predArgs...)
	}
	if len(clauses) == 1 {
		return clauses[0], args, nil
	}
	return "(" + strings.Join(clauses, op) + ")", args, nil
}

// escapeLike neutralizes LIKE metacharacters in user-supplied search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// orderClause renders a page plan as an ORDER BY ... LIMIT ... OFFSET
// suffix. The id tiebreaker keeps pagination deterministic when the sort
// column has duplicates.
func orderClause(page query.Page) (string, []any, error) {
	column, ok := columnFor[page.SortField]
	if !ok {
		return "", nil, fmt.Errorf("unknown sort field %q", page.SortField)
	}

	direction := "ASC"
	if page.Desc {
		direction = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id ASC LIMIT ? OFFSET ?", column, direction),
		[]any{page.Limit, page.Offset}, nil
}
