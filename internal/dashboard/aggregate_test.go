package dashboard_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rootslab/opsfinance/internal/core/record"
	"github.com/rootslab/opsfinance/internal/dashboard"
)

func TestDashboard(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dashboard Suite")
}

// testRecord is a minimal aggregation-engine record for exercising the
// pure functions without the domain models.
type testRecord struct {
	date   string
	text   string
	status record.Status
	amount int64
}

func (r testRecord) DateString() string         { return r.date }
func (r testRecord) SearchText() string         { return r.text }
func (r testRecord) StatusValue() record.Status { return r.status }
func (r testRecord) Contribution() int64        { return r.amount }

func approved(date, text string, amount int64) testRecord {
	return testRecord{date: date, text: text, status: record.StatusApproved, amount: amount}
}

var _ = Describe("ValidMonthKey", func() {
	It("should accept YYYY-MM selectors", func() {
		Expect(dashboard.ValidMonthKey("2025-01")).To(BeTrue())
		Expect(dashboard.ValidMonthKey("1999-12")).To(BeTrue())
	})

	It("should reject everything else", func() {
		Expect(dashboard.ValidMonthKey("")).To(BeFalse())
		Expect(dashboard.ValidMonthKey("2025")).To(BeFalse())
		Expect(dashboard.ValidMonthKey("2025-1")).To(BeFalse())
		Expect(dashboard.ValidMonthKey("2025-01-15")).To(BeFalse())
		Expect(dashboard.ValidMonthKey("Jan 2025")).To(BeFalse())
	})
})

var _ = Describe("ScopeToMonth", func() {
	records := []testRecord{
		approved("2025-01-05", "a", 100),
		approved("2025-01-31", "b", 200),
		approved("2025-02-01", "c", 300),
		approved("2024-12-31", "d", 400),
		{date: "not-a-date", text: "e", status: record.StatusApproved, amount: 500},
	}

	It("should keep only records whose date starts with the month prefix", func() {
		scoped := dashboard.ScopeToMonth(records, "2025-01")
		Expect(scoped).To(HaveLen(2))
		Expect(scoped[0].text).To(Equal("a"))
		Expect(scoped[1].text).To(Equal("b"))
	})

	It("should drop malformed dates by failing the prefix match", func() {
		scoped := dashboard.ScopeToMonth(records, "2025-01")
		for _, r := range scoped {
			Expect(r.date).To(HavePrefix("2025-01"))
		}
	})

	It("should return empty for a month with no records", func() {
		Expect(dashboard.ScopeToMonth(records, "2023-06")).To(BeEmpty())
	})
})

var _ = Describe("FilterBySearch", func() {
	records := []testRecord{
		approved("2025-01-05", "Langganan internet Ali", 100),
		approved("2025-01-06", "ATK kantor Sari", 200),
		approved("2025-01-07", "ALIBABA cloud", 300),
	}

	It("should match case-insensitively", func() {
		matched := dashboard.FilterBySearch(records, "ali")
		Expect(matched).To(HaveLen(2))
	})

	It("should return the input unchanged for an empty query", func() {
		Expect(dashboard.FilterBySearch(records, "")).To(HaveLen(3))
	})

	It("should return empty when nothing matches", func() {
		Expect(dashboard.FilterBySearch(records, "zzz")).To(BeEmpty())
	})
})

var _ = Describe("DaysInMonth", func() {
	It("should know the usual month lengths", func() {
		Expect(dashboard.DaysInMonth("2025-01")).To(Equal(31))
		Expect(dashboard.DaysInMonth("2025-04")).To(Equal(30))
	})

	It("should handle February across leap years", func() {
		Expect(dashboard.DaysInMonth("2025-02")).To(Equal(28))
		Expect(dashboard.DaysInMonth("2024-02")).To(Equal(29))
		Expect(dashboard.DaysInMonth("2000-02")).To(Equal(29))
		Expect(dashboard.DaysInMonth("1900-02")).To(Equal(28))
	})

	It("should return zero for unparseable keys", func() {
		Expect(dashboard.DaysInMonth("garbage")).To(Equal(0))
		Expect(dashboard.DaysInMonth("2025-13")).To(Equal(0))
	})
})

var _ = Describe("BuildDailySeries", func() {
	It("should produce one entry per calendar day", func() {
		series := dashboard.BuildDailySeries([]testRecord{}, []testRecord{}, "2025-06")
		Expect(series).To(HaveLen(30))
		Expect(series[0].Day).To(Equal(1))
		Expect(series[29].Day).To(Equal(30))
	})

	It("should accumulate expenses and overtime on the day they fall", func() {
		expenses := []testRecord{
			approved("2025-01-05", "a", 100),
			approved("2025-01-05", "b", 150),
		}
		overtimes := []testRecord{
			approved("2025-01-05", "c", 500),
			approved("2025-01-20", "d", 700),
		}

		series := dashboard.BuildDailySeries(expenses, overtimes, "2025-01")
		Expect(series[4].ExpenseTotal).To(Equal(int64(250)))
		Expect(series[4].OvertimeTotal).To(Equal(int64(500)))
		Expect(series[4].CombinedTotal).To(Equal(int64(750)))
		Expect(series[19].CombinedTotal).To(Equal(int64(700)))
	})

	It("should skip rejected records", func() {
		expenses := []testRecord{
			approved("2025-01-10", "kept", 100),
			{date: "2025-01-10", text: "dropped", status: record.StatusRejected, amount: 9999},
		}

		series := dashboard.BuildDailySeries(expenses, []testRecord{}, "2025-01")
		Expect(series[9].ExpenseTotal).To(Equal(int64(100)))
	})

	It("should count Default and Pending records", func() {
		expenses := []testRecord{
			{date: "2025-01-03", status: record.StatusDefault, amount: 10},
			{date: "2025-01-03", status: record.StatusPending, amount: 20},
		}

		series := dashboard.BuildDailySeries(expenses, []testRecord{}, "2025-01")
		Expect(series[2].ExpenseTotal).To(Equal(int64(30)))
	})

	It("should sum to the same values as ComputeTotals", func() {
		expenses := []testRecord{
			approved("2025-01-01", "a", 111),
			approved("2025-01-15", "b", 222),
			{date: "2025-01-20", status: record.StatusRejected, amount: 333},
		}
		overtimes := []testRecord{
			approved("2025-01-02", "c", 444),
			{date: "2025-01-28", status: record.StatusPending, amount: 555},
		}

		series := dashboard.BuildDailySeries(expenses, overtimes, "2025-01")
		totals := dashboard.ComputeTotals(expenses, overtimes)

		var expenseSum, overtimeSum, combinedSum int64
		for _, d := range series {
			expenseSum += d.ExpenseTotal
			overtimeSum += d.OvertimeTotal
			combinedSum += d.CombinedTotal
		}
		Expect(expenseSum).To(Equal(totals.ExpenseTotal))
		Expect(overtimeSum).To(Equal(totals.OvertimeTotal))
		Expect(combinedSum).To(Equal(totals.CombinedTotal))
	})
})

var _ = Describe("ComputeTotals", func() {
	It("should keep combined equal to the sum of the parts", func() {
		expenses := []testRecord{approved("2025-01-01", "a", 100), approved("2025-01-02", "b", 200)}
		overtimes := []testRecord{approved("2025-01-03", "c", 50)}

		totals := dashboard.ComputeTotals(expenses, overtimes)
		Expect(totals.ExpenseTotal).To(Equal(int64(300)))
		Expect(totals.OvertimeTotal).To(Equal(int64(50)))
		Expect(totals.CombinedTotal).To(Equal(totals.ExpenseTotal + totals.OvertimeTotal))
	})

	It("should exclude rejected records from every total", func() {
		expenses := []testRecord{
			approved("2025-01-01", "a", 100),
			{date: "2025-01-02", status: record.StatusRejected, amount: 1000},
		}
		overtimes := []testRecord{
			{date: "2025-01-03", status: record.StatusRejected, amount: 2000},
		}

		totals := dashboard.ComputeTotals(expenses, overtimes)
		Expect(totals.ExpenseTotal).To(Equal(int64(100)))
		Expect(totals.OvertimeTotal).To(BeZero())
		Expect(totals.CombinedTotal).To(Equal(int64(100)))
	})

	It("should be zero over empty inputs", func() {
		totals := dashboard.ComputeTotals([]testRecord{}, []testRecord{})
		Expect(totals.CombinedTotal).To(BeZero())
	})
})

var _ = Describe("RemainingBudget", func() {
	It("should subtract combined spend from the budget", func() {
		// 10M budget, 2M expenses, two overtime entries worth 500k each
		expenses := []testRecord{approved("2025-01-05", "a", 2_000_000)}
		overtimes := []testRecord{
			approved("2025-01-06", "b", 500_000),
			approved("2025-01-07", "c", 500_000),
		}

		totals := dashboard.ComputeTotals(expenses, overtimes)
		Expect(dashboard.RemainingBudget(10_000_000, totals.CombinedTotal)).To(Equal(int64(7_000_000)))
	})

	It("should go negative when spend exceeds the budget", func() {
		Expect(dashboard.RemainingBudget(1000, 1500)).To(Equal(int64(-500)))
	})

	It("should return the full spend deficit on a zero budget", func() {
		Expect(dashboard.RemainingBudget(0, 300)).To(Equal(int64(-300)))
	})
})

var _ = Describe("PendingCount", func() {
	It("should count only pending records", func() {
		records := []testRecord{
			{date: "2025-01-01", status: record.StatusPending},
			{date: "2025-01-02", status: record.StatusPending},
			{date: "2025-01-03", status: record.StatusApproved},
			{date: "2025-01-04", status: record.StatusDefault},
			{date: "2025-01-05", status: record.StatusRejected},
		}
		Expect(dashboard.PendingCount(records)).To(Equal(2))
	})
})

var _ = Describe("Paginate", func() {
	items := make([]int, 45)

	It("should return a full page inside the range", func() {
		Expect(dashboard.Paginate(items, 20, 1)).To(HaveLen(20))
		Expect(dashboard.Paginate(items, 20, 2)).To(HaveLen(20))
	})

	It("should return the remainder on the last page", func() {
		Expect(dashboard.Paginate(items, 20, 3)).To(HaveLen(5))
	})

	It("should return empty past the end", func() {
		Expect(dashboard.Paginate(items, 20, 4)).To(BeEmpty())
	})

	It("should return empty for non-positive page or page size", func() {
		Expect(dashboard.Paginate(items, 20, 0)).To(BeEmpty())
		Expect(dashboard.Paginate(items, 0, 1)).To(BeEmpty())
	})
})

var _ = Describe("TotalPages", func() {
	It("should round up partial pages", func() {
		Expect(dashboard.TotalPages(45, 20)).To(Equal(3))
		Expect(dashboard.TotalPages(40, 20)).To(Equal(2))
		Expect(dashboard.TotalPages(1, 20)).To(Equal(1))
	})

	It("should be zero for empty lists", func() {
		Expect(dashboard.TotalPages(0, 20)).To(BeZero())
	})
})
