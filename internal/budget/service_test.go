package budget_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rootslab/opsfinance/internal"
	"github.com/rootslab/opsfinance/internal/budget"
	"github.com/rootslab/opsfinance/internal/core/events"
)

func TestBudgetService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Budget Service Suite")
}

// MockRepository implements budget.Repository for testing
type MockRepository struct {
	settings   map[string]*budget.Setting
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		settings: make(map[string]*budget.Setting),
	}
}

func (m *MockRepository) Get(key string) (*budget.Setting, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.settings[key], nil
}

func (m *MockRepository) Upsert(key string, value int64) error {
	if m.shouldFail {
		return m.failError
	}
	m.settings[key] = &budget.Setting{Key: key, Value: value}
	return nil
}

var _ = Describe("Budget Service", func() {
	var (
		mockRepo *MockRepository
		service  *budget.Service
	)

	ctx := context.Background()

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = budget.NewService(mockRepo, nil, logger)
	})

	Describe("Current", func() {
		It("should return zero when the budget was never set", func() {
			amount, err := service.Current()
			Expect(err).NotTo(HaveOccurred())
			Expect(amount).To(BeZero())
		})

		It("should return the stored amount", func() {
			Expect(service.Update(ctx, budget.UpdateBudgetDTO{Amount: 10_000_000})).To(Succeed())

			amount, err := service.Current()
			Expect(err).NotTo(HaveOccurred())
			Expect(amount).To(Equal(int64(10_000_000)))
		})

		It("should surface repository failures", func() {
			mockRepo.shouldFail = true
			mockRepo.failError = errors.New("db down")

			_, err := service.Current()
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		It("should overwrite the previous value", func() {
			Expect(service.Update(ctx, budget.UpdateBudgetDTO{Amount: 5_000_000})).To(Succeed())
			Expect(service.Update(ctx, budget.UpdateBudgetDTO{Amount: 8_000_000})).To(Succeed())

			amount, err := service.Current()
			Expect(err).NotTo(HaveOccurred())
			Expect(amount).To(Equal(int64(8_000_000)))
		})

		It("should accept zero", func() {
			Expect(service.Update(ctx, budget.UpdateBudgetDTO{Amount: 0})).To(Succeed())
		})

		It("should reject a negative amount", func() {
			Expect(service.Update(ctx, budget.UpdateBudgetDTO{Amount: -1})).To(HaveOccurred())
		})

		It("should surface repository failures", func() {
			mockRepo.shouldFail = true
			mockRepo.failError = errors.New("db down")

			Expect(service.Update(ctx, budget.UpdateBudgetDTO{Amount: 100})).To(HaveOccurred())
		})

		It("should publish to subscribers before returning, with the acting user", func() {
			quiet := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
			bus := events.NewEventBus(quiet)
			var actor string
			var amount int64
			bus.Subscribe(events.EventTypeBudgetUpdated, func(ctx context.Context, event events.Event) error {
				actor = internal.UserIDFromContext(ctx)
				amount = event.(*events.BudgetUpdatedEvent).Amount
				return nil
			})
			service = budget.NewService(mockRepo, bus, quiet)

			userCtx := internal.ContextWithUserID(context.Background(), "user-3")
			Expect(service.Update(userCtx, budget.UpdateBudgetDTO{Amount: 7_500_000})).To(Succeed())

			// synchronous dispatch: no waiting required
			Expect(actor).To(Equal("user-3"))
			Expect(amount).To(Equal(int64(7_500_000)))
		})
	})
})
