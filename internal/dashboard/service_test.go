package dashboard_test

import (
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rootslab/opsfinance/internal/core/record"
	"github.com/rootslab/opsfinance/internal/dashboard"
)

type stubSource struct {
	records []dashboard.Record
	err     error
}

func (s *stubSource) AllRecords() ([]dashboard.Record, error) {
	return s.records, s.err
}

type stubBudget struct {
	amount int64
	err    error
}

func (s *stubBudget) Current() (int64, error) {
	return s.amount, s.err
}

var _ = Describe("Dashboard Service", func() {
	var (
		expenses  *stubSource
		overtimes *stubSource
		budget    *stubBudget
		service   *dashboard.Service
	)

	BeforeEach(func() {
		expenses = &stubSource{}
		overtimes = &stubSource{}
		budget = &stubBudget{amount: 10_000_000}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = dashboard.NewService(expenses, overtimes, budget, logger)
	})

	Describe("Summarize", func() {
		Context("with records in several months", func() {
			BeforeEach(func() {
				expenses.records = []dashboard.Record{
					approved("2025-01-05", "internet Ali", 2_000_000),
					approved("2025-02-01", "other month", 999_999),
					testRecord{date: "2025-01-09", text: "pending atk", status: record.StatusPending, amount: 100_000},
					testRecord{date: "2025-01-12", text: "rejected ac", status: record.StatusRejected, amount: 5_000_000},
				}
				overtimes.records = []dashboard.Record{
					approved("2025-01-06", "Ali", 500_000),
					approved("2025-01-07", "Sari", 500_000),
				}
			})

			It("should scope everything to the requested month", func() {
				summary, err := service.Summarize(dashboard.SummaryQuery{Month: "2025-01"})
				Expect(err).NotTo(HaveOccurred())
				Expect(summary.Month).To(Equal("2025-01"))
				Expect(summary.Totals.ExpenseTotal).To(Equal(int64(2_100_000)))
				Expect(summary.Totals.OvertimeTotal).To(Equal(int64(1_000_000)))
				Expect(summary.Totals.CombinedTotal).To(Equal(int64(3_100_000)))
			})

			It("should report remaining budget and the over-budget flag", func() {
				summary, err := service.Summarize(dashboard.SummaryQuery{Month: "2025-01"})
				Expect(err).NotTo(HaveOccurred())
				Expect(summary.Budget).To(Equal(int64(10_000_000)))
				Expect(summary.RemainingBudget).To(Equal(int64(6_900_000)))
				Expect(summary.OverBudget).To(BeFalse())
			})

			It("should flag over budget when spend exceeds the allocation", func() {
				budget.amount = 1_000_000
				summary, err := service.Summarize(dashboard.SummaryQuery{Month: "2025-01"})
				Expect(err).NotTo(HaveOccurred())
				Expect(summary.RemainingBudget).To(Equal(int64(-2_100_000)))
				Expect(summary.OverBudget).To(BeTrue())
			})

			It("should count pending records per collection", func() {
				summary, err := service.Summarize(dashboard.SummaryQuery{Month: "2025-01"})
				Expect(err).NotTo(HaveOccurred())
				Expect(summary.PendingExpenses).To(Equal(1))
				Expect(summary.PendingOvertimes).To(BeZero())
			})

			It("should build a daily series covering the whole month", func() {
				summary, err := service.Summarize(dashboard.SummaryQuery{Month: "2025-01"})
				Expect(err).NotTo(HaveOccurred())
				Expect(summary.DailySeries).To(HaveLen(31))
				Expect(summary.DailySeries[4].ExpenseTotal).To(Equal(int64(2_000_000)))
			})

			It("should narrow totals with the search query", func() {
				summary, err := service.Summarize(dashboard.SummaryQuery{Month: "2025-01", Search: "ali"})
				Expect(err).NotTo(HaveOccurred())
				Expect(summary.Totals.ExpenseTotal).To(Equal(int64(2_000_000)))
				Expect(summary.Totals.OvertimeTotal).To(Equal(int64(500_000)))
			})
		})

		Context("with an unset budget", func() {
			It("should treat the budget as zero", func() {
				budget.amount = 0
				expenses.records = []dashboard.Record{approved("2025-01-05", "a", 100)}

				summary, err := service.Summarize(dashboard.SummaryQuery{Month: "2025-01"})
				Expect(err).NotTo(HaveOccurred())
				Expect(summary.Budget).To(BeZero())
				Expect(summary.RemainingBudget).To(Equal(int64(-100)))
				Expect(summary.OverBudget).To(BeTrue())
			})
		})

		Context("with a bad month selector", func() {
			It("should reject missing months", func() {
				_, err := service.Summarize(dashboard.SummaryQuery{})
				Expect(err).To(HaveOccurred())
			})

			It("should reject malformed months", func() {
				_, err := service.Summarize(dashboard.SummaryQuery{Month: "Jan-2025"})
				Expect(err).To(HaveOccurred())
			})
		})

		Context("when a source fails", func() {
			It("should surface expense load failures", func() {
				expenses.err = errors.New("db down")
				_, err := service.Summarize(dashboard.SummaryQuery{Month: "2025-01"})
				Expect(err).To(HaveOccurred())
			})

			It("should surface budget load failures", func() {
				budget.err = errors.New("db down")
				_, err := service.Summarize(dashboard.SummaryQuery{Month: "2025-01"})
				Expect(err).To(HaveOccurred())
			})
		})
	})
})
