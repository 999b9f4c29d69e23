package query

import (
	"fmt"
	"strings"

	"todolist/internal/core/domain"
)

const (
	DefaultPageSize = 10

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// Only these fields may be sorted on; anything else is a validation error
// instead of being passed through to the store.
var sortableFields = map[string]struct{}{
	FieldTitle:     {},
	FieldCreatedAt: {},
	FieldUpdatedAt: {},
	FieldPriority:  {},
	FieldDueDate:   {},
}

// Page is a resolved ordering and slicing plan for one listing request.
type Page struct {
	Number    int
	SortField string
	Desc      bool
	Offset    int
	Limit     int
}

// PlanPage resolves sort and pagination parameters to their effective
// values: sortBy defaults to createdAt, order to descending, page to 1
// (minimum 1) and pageSize to 10.
func PlanPage(q domain.ListQuery) (Page, error) {
	sortField := q.SortBy
	if sortField == "" {
		sortField = FieldCreatedAt
	}
	if _, ok := sortableFields[sortField]; !ok {
		return Page{}, domain.NewValidationError(domain.FieldError{
			Field:   "sortBy",
			Message: fmt.Sprintf("sortBy must be one of: %s", strings.Join(sortableFieldNames(), ", ")),
		})
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	return Page{
		Number:    page,
		SortField: sortField,
		Desc:      q.SortOrder == "" || q.SortOrder == SortOrderDesc,
		Offset:    (page - 1) * pageSize,
		Limit:     pageSize,
	}, nil
}

// PageMeta derives the pagination envelope for a page plan against the
// total number of matching records.
func PageMeta(page Page, total int64) domain.Pagination {
	totalPages := int((total + int64(page.Limit) - 1) / int64(page.Limit))
	return domain.Pagination{
		CurrentPage: page.Number,
		TotalPages:  totalPages,
		TotalTasks:  total,
		HasNext:     int64(page.Offset+page.Limit) < total,
		HasPrev:     page.Number > 1,
	}
}

func sortableFieldNames() []string {
	return []string{FieldTitle, FieldCreatedAt, FieldUpdatedAt, FieldPriority, FieldDueDate}
}
