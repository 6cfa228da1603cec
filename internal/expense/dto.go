package expense

import (
	"time"

	"github.com/rootslab/opsfinance/internal"
	"github.com/rootslab/opsfinance/internal/core/record"
	"github.com/rootslab/opsfinance/internal/dashboard"
)

// CreateExpenseDTO is the request payload for creating or editing an expense.
type CreateExpenseDTO struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Requester   string `json:"requester"`
	Amount      int64  `json:"amount"`
	Status      string `json:"status"`
	Note        string `json:"note"`
}

func (dto *CreateExpenseDTO) Validate() error {
	if _, err := time.Parse("2006-01-02", dto.Date); err != nil {
		return internal.NewValidationError("date must be in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
	}
	if dto.Description == "" {
		return internal.NewValidationError("description is required", internal.ErrCodeValidationFailed)
	}
	if dto.Requester == "" {
		return internal.NewValidationError("requester is required", internal.ErrCodeValidationFailed)
	}
	if dto.Amount < 0 {
		return internal.NewValidationError("amount cannot be negative", internal.ErrCodeInvalidAmount)
	}
	// blank or unrecognized statuses degrade to Default instead of failing
	dto.Status = string(record.Normalize(dto.Status))
	return nil
}

// UpdateStatusDTO is the payload for the status-only patch.
type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (dto *UpdateStatusDTO) Validate() error {
	if !record.IsValid(dto.Status) {
		return internal.NewValidationError("status must be one of Default, Pending, Approved, Rejected", internal.ErrCodeInvalidStatus)
	}
	return nil
}

// ListQuery carries the list endpoint's month scope, search text and page
// cursor. Zero values mean "no scoping" and first page of twenty.
type ListQuery struct {
	Month   string
	Search  string
	Page    int
	PerPage int
}

func (q *ListQuery) Validate() error {
	if q.Month != "" && !dashboard.ValidMonthKey(q.Month) {
		return internal.NewValidationError("month must be in YYYY-MM format", internal.ErrCodeInvalidMonth)
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 || q.PerPage > 100 {
		q.PerPage = dashboard.DefaultPageSize
	}
	return nil
}

// ListResult is the page of expenses plus the meta the dashboard shows
// ("N of M" and the page selector).
type ListResult struct {
	Expenses   []*Expense `json:"expenses"`
	Page       int        `json:"page"`
	PerPage    int        `json:"per_page"`
	TotalItems int        `json:"total_items"`
	TotalPages int        `json:"total_pages"`
}
