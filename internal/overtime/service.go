package overtime

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

// Repository defines the data access methods for overtime entries.
type Repository interface {
	Create(entry *Overtime) error
	GetByID(id string) (*Overtime, error)
	GetAll() ([]*Overtime, error)
	Update(entry *Overtime) error
	UpdateStatus(id string, status string) error
	Delete(id string) error
}

// Service handles overtime business logic.
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

// ListOvertimes returns one page of month-scoped, search-filtered entries
// with the derived amount filled in. Rejected rows stay visible.
func (s *Service) ListOvertimes(query ListQuery) (*ListResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	all, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list overtimes", "error", err)
		return nil, internal.NewInternalError("failed to list overtimes", err)
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

	pageRows := dashboard.Paginate(filtered, query.PerPage, page)
	responses := make([]OvertimeResponse, len(pageRows))
	for i, o := range pageRows {
		responses[i] = o.ToResponse()
	}

	return &ListResult{
		Overtimes:  responses,
		Page:       page,
		PerPage:    query.PerPage,
		TotalItems: len(filtered),
		TotalPages: totalPages,
	}, nil
}

// GetAll returns the full collection for the dashboard and the exporter.
func (s *Service) GetAll() ([]*Overtime, error) {
	return s.repo.GetAll()
}

// AllRecords exposes the collection through the aggregation engine's view.
func (s *Service) AllRecords() ([]dashboard.Record, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	records := make([]dashboard.Record, len(all))
	for i, o := range all {
		records[i] = o
	}
	return records, nil
}

func (s *Service) CreateOvertime(ctx context.Context, dto CreateOvertimeDTO) (*Overtime, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("overtime validation failed", "error", err)
		return nil, err
	}

	now := time.Now()
	entry := &Overtime{
		ID:           uuid.NewString(),
		Date:         dto.Date,
		EmployeeName: dto.EmployeeName,
		Days:         dto.Days,
		Rate:         dto.Rate,
		Status:       dto.Status,
		Note:         dto.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(entry); err != nil {
		s.logger.Error("failed to create overtime", "error", err)
		return nil, internal.NewInternalError("failed to create overtime", err)
	}

	s.publish(ctx, events.NewRecordCreatedEvent(events.RecordKindOvertime, entry.ID, entry.Status, entry.Amount()))

	s.logger.Info("overtime created",
		"overtime_id", entry.ID,
		"employee", entry.EmployeeName,
		"amount", entry.Amount(),
		"status", entry.Status)

	return entry, nil
}

func (s *Service) UpdateOvertime(ctx context.Context, id string, dto CreateOvertimeDTO) (*Overtime, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("overtime validation failed", "error", err, "overtime_id", id)
		return nil, err
	}

	entry, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrRecordNotFound
	}

	entry.Date = dto.Date
	entry.EmployeeName = dto.EmployeeName
	entry.Days = dto.Days
	entry.Rate = dto.Rate
	entry.Status = dto.Status
	entry.Note = dto.Note
	entry.UpdatedAt = time.Now()

	if err := s.repo.Update(entry); err != nil {
		s.logger.Error("failed to update overtime", "error", err, "overtime_id", id)
		return nil, internal.NewInternalError("failed to update overtime", err)
	}

	s.publish(ctx, events.NewRecordUpdatedEvent(events.RecordKindOvertime, entry.ID, entry.Status, entry.Amount()))

	return entry, nil
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
		s.logger.Error("failed to update overtime status", "error", err, "overtime_id", id)
		return internal.NewInternalError("failed to update overtime status", err)
	}

	s.publish(ctx, events.NewRecordStatusChangedEvent(events.RecordKindOvertime, id, status))

	s.logger.Info("overtime status updated", "overtime_id", id, "status", status)
	return nil
}

func (s *Service) DeleteOvertime(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrRecordNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete overtime", "error", err, "overtime_id", id)
		return internal.NewInternalError("failed to delete overtime", err)
	}

	s.publish(ctx, events.NewRecordDeletedEvent(events.RecordKindOvertime, id))

	s.logger.Info("overtime deleted", "overtime_id", id)
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
