package repository

import (
	apperrors "todoapi/internal/errors"
	"todoapi/internal/model"
)

// SortField is the closed set of columns a task listing may be ordered by.
// Keeping it closed means no caller-supplied string ever reaches the query.
type SortField string

const (
	SortByID     SortField = "id"
	SortByTitle  SortField = "title"
	SortByStatus SortField = "status"
	SortByUser   SortField = "user_id"
)

// SortDir is the sort direction, asc or desc.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ListQuery describes one page of a filtered task listing.
type ListQuery struct {
	// OwnerID restricts results to one user's tasks when set.
	OwnerID *uint
	// Status restricts results to one status when set.
	Status *model.TaskStatus
	// Q is matched case-insensitively as a substring of title or description.
	Q string

	SortBy  SortField
	SortDir SortDir
	Page    int
	Limit   int
}

// Offset is the row offset implied by Page and Limit.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// BuildListQuery validates raw request parameters and produces a ListQuery.
// Zero page/limit take the defaults (1 and 10); out-of-range values are
// rejected rather than clamped. Empty sortBy defaults to id, empty sortDir
// to asc.
func BuildListQuery(ownerID *uint, status, q, sortBy, sortDir string, page, limit int) (ListQuery, error) {
	lq := ListQuery{
		OwnerID: ownerID,
		Q:       q,
		SortBy:  SortByID,
		SortDir: SortAsc,
		Page:    1,
		Limit:   defaultLimit,
	}

	if status != "" {
		parsed, err := model.ParseStatus(status)
		if err != nil {
			return ListQuery{}, apperrors.ErrInvalidStatus
		}
		lq.Status = &parsed
	}

	if sortBy != "" {
		switch SortField(sortBy) {
		case SortByID, SortByTitle, SortByStatus, SortByUser:
			lq.SortBy = SortField(sortBy)
		default:
			return ListQuery{}, apperrors.ErrInvalidSortField
		}
	}

	switch SortDir(sortDir) {
	case SortAsc, SortDesc:
		lq.SortDir = SortDir(sortDir)
	case "":
	default:
		return ListQuery{}, apperrors.ErrInvalidSortDir
	}

	if page != 0 {
		if page < 1 {
			return ListQuery{}, apperrors.ErrInvalidPage
		}
		lq.Page = page
	}

	if limit != 0 {
		if limit < 1 || limit > maxLimit {
			return ListQuery{}, apperrors.ErrInvalidLimit
		}
		lq.Limit = limit
	}

	return lq, nil
}
