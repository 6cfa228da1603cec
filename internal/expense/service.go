package expense

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rootslab/opsfinance/internal"
	"github.com/rootslab/opsfinance/internal/core/events"
	"github.com/rootslab/opsfinance/internal/core/record"
	"github.com/rootslab/opsfinance/internal/dashboard"
)

// Repository defines the data access methods for expenses.
type Repository interface {
	Create(expense *Expense) error
	GetByID(id string) (*Expense, error)
	GetAll() ([]*Expense, error)
	Update(expense *Expense) error
	UpdateStatus(id string, status string) error
	Delete(id string) error
}

// Service handles expense business logic.
type Service struct {
	repo   Repository
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// ListExpenses returns one page of month-scoped, search-filtered expenses.
// Rejected rows stay visible here; only totals exclude them.
func (s *Service) ListExpenses(query ListQuery) (*ListResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	all, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err)
		return nil, internal.NewInternalError("failed to list expenses", err)
	}

	scoped := all
	if query.Month != "" {
		scoped = dashboard.ScopeToMonth(all, query.Month)
	}
	filtered := dashboard.FilterBySearch(scoped, query.Search)

	totalPages := dashboard.TotalPages(len(filtered), query.PerPage)
	page := query.Page
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	return &ListResult{
		Expenses:   dashboard.Paginate(filtered, query.PerPage, page),
		Page:       page,
		PerPage:    query.PerPage,
		TotalItems: len(filtered),
		TotalPages: totalPages,
	}, nil
}

// GetAll returns the full collection ordered newest-first, for the
// dashboard and the report exporter.
func (s *Service) GetAll() ([]*Expense, error) {
	return s.repo.GetAll()
}

// AllRecords exposes the collection through the aggregation engine's view.
func (s *Service) AllRecords() ([]dashboard.Record, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	records := make([]dashboard.Record, len(all))
	for i, e := range all {
		records[i] = e
	}
	return records, nil
}

func (s *Service) CreateExpense(ctx context.Context, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("expense validation failed", "error", err)
		return nil, err
	}

	now := time.Now()
	exp := &Expense{
		ID:          uuid.NewString(),
		Date:        dto.Date,
		Description: dto.Description,
		Requester:   dto.Requester,
		Amount:      dto.Amount,
		Status:      dto.Status,
		Note:        dto.Note,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(exp); err != nil {
		s.logger.Error("failed to create expense", "error", err)
		return nil, internal.NewInternalError("failed to create expense", err)
	}

	s.publish(ctx, events.NewRecordCreatedEvent(events.RecordKindExpense, exp.ID, exp.Status, exp.Amount))

	s.logger.Info("expense created",
		"expense_id", exp.ID,
		"amount", exp.Amount,
		"status", exp.Status)

	return exp, nil
}

func (s *Service) UpdateExpense(ctx context.Context, id string, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("expense validation failed", "error", err, "expense_id", id)
		return nil, err
	}

	exp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrRecordNotFound
	}

	exp.Date = dto.Date
	exp.Description = dto.Description
	exp.Requester = dto.Requester
	exp.Amount = dto.Amount
	exp.Status = dto.Status
	exp.Note = dto.Note
	exp.UpdatedAt = time.Now()

	if err := s.repo.Update(exp); err != nil {
		s.logger.Error("failed to update expense", "error", err, "expense_id", id)
		return nil, internal.NewInternalError("failed to update expense", err)
	}

	s.publish(ctx, events.NewRecordUpdatedEvent(events.RecordKindExpense, exp.ID, exp.Status, exp.Amount))

	return exp, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, dto UpdateStatusDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrRecordNotFound
	}

	status := string(record.Normalize(dto.Status))
	if err := s.repo.UpdateStatus(id, status); err != nil {
		s.logger.Error("failed to update expense status", "error", err, "expense_id", id)
		return internal.NewInternalError("failed to update expense status", err)
	}

	s.publish(ctx, events.NewRecordStatusChangedEvent(events.RecordKindExpense, id, status))

	s.logger.Info("expense status updated", "expense_id", id, "status", status)
	return nil
}

func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrRecordNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return internal.NewInternalError("failed to delete expense", err)
	}

	s.publish(ctx, events.NewRecordDeletedEvent(events.RecordKindExpense, id))

	s.logger.Info("expense deleted", "expense_id", id)
	return nil
}

// publish forwards the request context so the audit trail can name the
// acting user.
func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	_ = s.bus.Publish(ctx, event)
}
