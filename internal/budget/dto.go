package budget

import (
	"github.com/rootslab/opsfinance/internal"
)

type UpdateBudgetDTO struct {
	Amount int64 `json:"amount"`
}

func (d UpdateBudgetDTO) Validate() error {
	if d.Amount < 0 {
		return internal.NewValidationError("budget amount must not be negative", internal.ErrCodeInvalidAmount)
	}
	return nil
}

type BudgetResponse struct {
	Amount int64 `json:"amount"`
}
