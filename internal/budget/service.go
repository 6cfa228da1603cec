package budget

import (
	"context"
	"log/slog"

	"github.com/rootslab/opsfinance/internal"
	"github.com/rootslab/opsfinance/internal/core/events"
)

// Repository defines the data access methods for the settings table.
type Repository interface {
	// Get returns the setting for key, or nil when it has never been set.
	Get(key string) (*Setting, error)
	// Upsert creates the row if absent, otherwise overwrites its value.
	Upsert(key string, value int64) error
}

// Service handles the global budget setting.
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

// Current returns the global budget, zero when it was never set.
func (s *Service) Current() (int64, error) {
	setting, err := s.repo.Get(GlobalBudgetKey)
	if err != nil {
		s.logger.Error("failed to read budget setting", "error", err)
		return 0, internal.NewInternalError("failed to read budget", err)
	}
	if setting == nil {
		return 0, nil
	}
	return setting.Value, nil
}

// Update upserts the global budget. Budgets are never deleted or
// versioned; the newest write wins. The audit event is published
// synchronously: budget changes are rare and the trail entry should be
// written before the caller sees the response.
func (s *Service) Update(ctx context.Context, dto UpdateBudgetDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if err := s.repo.Upsert(GlobalBudgetKey, dto.Amount); err != nil {
		s.logger.Error("failed to upsert budget setting", "error", err)
		return internal.NewInternalError("failed to update budget", err)
	}

	if s.bus != nil {
		if err := s.bus.PublishSync(ctx, events.NewBudgetUpdatedEvent(dto.Amount)); err != nil {
			s.logger.Error("failed to publish budget event", "error", err)
		}
	}

	s.logger.Info("budget updated", "amount", dto.Amount)
	return nil
}
