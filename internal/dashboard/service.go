package dashboard

import (
	"log/slog"

	"github.com/rootslab/opsfinance/internal"
)

// RecordSource supplies one table's rows through the engine's view.
// The expense and overtime services both satisfy it.
type RecordSource interface {
	AllRecords() ([]Record, error)
}

// BudgetSource supplies the global budget amount.
type BudgetSource interface {
	Current() (int64, error)
}

type SummaryQuery struct {
	Month  string
	Search string
}

func (q SummaryQuery) Validate() error {
	if !ValidMonthKey(q.Month) {
		return internal.NewValidationError("month must be in YYYY-MM format", internal.ErrCodeInvalidMonth)
	}
	return nil
}

// Summary is the full dashboard payload for one month.
type Summary struct {
	Month            string     `json:"month"`
	Budget           int64      `json:"budget"`
	Totals           Totals     `json:"totals"`
	RemainingBudget  int64      `json:"remaining_budget"`
	OverBudget       bool       `json:"over_budget"`
	PendingExpenses  int        `json:"pending_expenses"`
	PendingOvertimes int        `json:"pending_overtimes"`
	DailySeries      []DayEntry `json:"daily_series"`
}

// Service assembles the dashboard from the two record sources and the
// budget setting. All aggregation happens in memory over month-scoped
// slices.
type Service struct {
	expenses  RecordSource
	overtimes RecordSource
	budget    BudgetSource
	logger    *slog.Logger
}

func NewService(expenses, overtimes RecordSource, budget BudgetSource, logger *slog.Logger) *Service {
	return &Service{
		expenses:  expenses,
		overtimes: overtimes,
		budget:    budget,
		logger:    logger,
	}
}

// Summarize computes the dashboard for the requested month. The search
// query narrows which records feed the totals and the chart, matching
// what the tables below the cards show.
func (s *Service) Summarize(query SummaryQuery) (*Summary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	expenses, err := s.expenses.AllRecords()
	if err != nil {
		s.logger.Error("failed to load expenses for dashboard", "error", err)
		return nil, internal.NewInternalError("failed to load dashboard data", err)
	}
	overtimes, err := s.overtimes.AllRecords()
	if err != nil {
		s.logger.Error("failed to load overtime records for dashboard", "error", err)
		return nil, internal.NewInternalError("failed to load dashboard data", err)
	}

	scopedExpenses := FilterBySearch(ScopeToMonth(expenses, query.Month), query.Search)
	scopedOvertimes := FilterBySearch(ScopeToMonth(overtimes, query.Month), query.Search)

	budget, err := s.budget.Current()
	if err != nil {
		s.logger.Error("failed to load budget for dashboard", "error", err)
		return nil, internal.NewInternalError("failed to load dashboard data", err)
	}

	totals := ComputeTotals(scopedExpenses, scopedOvertimes)
	remaining := RemainingBudget(budget, totals.CombinedTotal)

	return &Summary{
		Month:            query.Month,
		Budget:           budget,
		Totals:           totals,
		RemainingBudget:  remaining,
		OverBudget:       remaining < 0,
		PendingExpenses:  PendingCount(scopedExpenses),
		PendingOvertimes: PendingCount(scopedOvertimes),
		DailySeries:      BuildDailySeries(scopedExpenses, scopedOvertimes, query.Month),
	}, nil
}
