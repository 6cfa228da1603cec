package overtime

import (
	"time"

	"github.com/rootslab/opsfinance/internal"
	"github.com/rootslab/opsfinance/internal/core/record"
	"github.com/rootslab/opsfinance/internal/dashboard"
)

// CreateOvertimeDTO is the request payload for creating or editing an
// overtime entry.
type CreateOvertimeDTO struct {
	Date         string `json:"date"`
	EmployeeName string `json:"employee_name"`
	Days         int    `json:"days"`
	Rate         int64  `json:"rate"`
	Status       string `json:"status"`
	Note         string `json:"note"`
}

func (dto *CreateOvertimeDTO) Validate() error {
	if _, err := time.Parse("2006-01-02", dto.Date); err != nil {
		return internal.NewValidationError("date must be in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
	}
	if dto.EmployeeName == "" {
		return internal.NewValidationError("employee_name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Days <= 0 {
		return internal.NewValidationError("days must be positive", internal.ErrCodeInvalidDays)
	}
	if dto.Rate < 0 {
		return internal.NewValidationError("rate cannot be negative", internal.ErrCodeInvalidAmount)
	}
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

// OvertimeResponse is the API shape of an overtime row, with the derived
// amount filled in.
type OvertimeResponse struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`
	EmployeeName string    `json:"employee_name"`
	Days         int       `json:"days"`
	Rate         int64     `json:"rate"`
	Amount       int64     `json:"amount"`
	Status       string    `json:"status"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (o *Overtime) ToResponse() OvertimeResponse {
	return OvertimeResponse{
		ID:           o.ID,
		Date:         o.Date,
		EmployeeName: o.EmployeeName,
		Days:         o.Days,
		Rate:         o.Rate,
		Amount:       o.Amount(),
		Status:       o.Status,
		Note:         o.Note,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// ListQuery mirrors the expense list parameters.
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

// ListResult is one page of overtime rows plus page meta.
type ListResult struct {
	Overtimes  []OvertimeResponse `json:"overtimes"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
	TotalItems int                `json:"total_items"`
	TotalPages int                `json:"total_pages"`
}
