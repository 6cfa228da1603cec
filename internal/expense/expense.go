package expense

import (
	"time"

	"github.com/rootslab/opsfinance/internal/core/record"
)

// Expense is an operational expense entry. Dates are stored as plain
// YYYY-MM-DD strings and month scoping works by string prefix, so no
// timezone conversion ever applies.
type Expense struct {
	ID          string    `json:"id" gorm:"primaryKey;column:id"`
	Date        string    `json:"date" gorm:"column:date;not null"`
	Description string    `json:"description" gorm:"column:description;not null"`
	Requester   string    `json:"requester" gorm:"column:requester;not null"`
	Amount      int64     `json:"amount" gorm:"column:amount;not null"`
	Status      string    `json:"status" gorm:"column:status;default:Default"`
	Note        string    `json:"note" gorm:"column:note"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

// DateString implements the aggregation engine's record view.
func (e *Expense) DateString() string {
	return e.Date
}

// SearchText matches the dashboard's free-text filter: description and
// requester, both searchable.
func (e *Expense) SearchText() string {
	return e.Description + " " + e.Requester
}

func (e *Expense) StatusValue() record.Status {
	return record.Normalize(e.Status)
}

// Contribution is the amount an expense adds to monetary totals.
func (e *Expense) Contribution() int64 {
	return e.Amount
}
