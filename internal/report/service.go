package report

import (
	"log/slog"
	"time"

	"github.com/rootslab/opsfinance/internal"
	"github.com/rootslab/opsfinance/internal/dashboard"
	"github.com/rootslab/opsfinance/internal/expense"
	"github.com/rootslab/opsfinance/internal/overtime"
)

type ExpenseSource interface {
	GetAll() ([]*expense.Expense, error)
}

type OvertimeSource interface {
	GetAll() ([]*overtime.Overtime, error)
}

type BudgetSource interface {
	Current() (int64, error)
}

// Service builds month-scoped report documents from the live collections.
type Service struct {
	expenses  ExpenseSource
	overtimes OvertimeSource
	budget    BudgetSource
	logger    *slog.Logger
}

func NewService(expenses ExpenseSource, overtimes OvertimeSource, budget BudgetSource, logger *slog.Logger) *Service {
	return &Service{
		expenses:  expenses,
		overtimes: overtimes,
		budget:    budget,
		logger:    logger,
	}
}

// MonthlyDocument gathers the month's records and renders them into the
// report layout. The returned document still needs WriteXLSX to become
// a workbook.
func (s *Service) MonthlyDocument(yearMonth string) (*Document, error) {
	if !dashboard.ValidMonthKey(yearMonth) {
		return nil, internal.NewValidationError("month must be in YYYY-MM format", internal.ErrCodeInvalidMonth)
	}

	expenses, err := s.expenses.GetAll()
	if err != nil {
		s.logger.Error("failed to load expenses for report", "error", err)
		return nil, internal.NewInternalError("failed to build report", err)
	}
	overtimes, err := s.overtimes.GetAll()
	if err != nil {
		s.logger.Error("failed to load overtime records for report", "error", err)
		return nil, internal.NewInternalError("failed to build report", err)
	}
	budget, err := s.budget.Current()
	if err != nil {
		s.logger.Error("failed to load budget for report", "error", err)
		return nil, internal.NewInternalError("failed to build report", err)
	}

	doc := BuildMonthly(yearMonth,
		budget,
		dashboard.ScopeToMonth(expenses, yearMonth),
		dashboard.ScopeToMonth(overtimes, yearMonth),
		time.Now())

	return doc, nil
}
