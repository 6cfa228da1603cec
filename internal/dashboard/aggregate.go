package dashboard

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rootslab/opsfinance/internal/core/record"
)

// DefaultPageSize is the table page length used across the dashboard.
const DefaultPageSize = 20

var monthKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ValidMonthKey reports whether s is a YYYY-MM month selector.
func ValidMonthKey(s string) bool {
	return monthKeyPattern.MatchString(s)
}

// Record is the view of an expense or overtime row the aggregation engine
// needs. Both domain models implement it; the engine itself stays free of
// domain imports so the domains can call back into it.
type Record interface {
	// DateString returns the calendar day in YYYY-MM-DD form.
	DateString() string
	// SearchText returns the fields the free-text filter matches against.
	SearchText() string
	// StatusValue returns the normalized lifecycle status.
	StatusValue() record.Status
	// Contribution returns the monetary value the record adds to totals:
	// the amount for expenses, days times rate for overtime.
	Contribution() int64
}

// DayEntry is one calendar day of the monthly chart series.
type DayEntry struct {
	Day           int   `json:"day"`
	ExpenseTotal  int64 `json:"expense_total"`
	OvertimeTotal int64 `json:"overtime_total"`
	CombinedTotal int64 `json:"combined_total"`
}

// Totals holds the month-scoped sums shown on the dashboard cards.
type Totals struct {
	ExpenseTotal  int64 `json:"expense_total"`
	OvertimeTotal int64 `json:"overtime_total"`
	CombinedTotal int64 `json:"combined_total"`
}

// ScopeToMonth returns every record whose date string starts with the
// yearMonth prefix (YYYY-MM). No parsing happens beyond the prefix
// comparison, so malformed dates simply fail to match.
func ScopeToMonth[T Record](records []T, yearMonth string) []T {
	scoped := make([]T, 0, len(records))
	for _, r := range records {
		if strings.HasPrefix(r.DateString(), yearMonth) {
			scoped = append(scoped, r)
		}
	}
	return scoped
}

// FilterBySearch returns records whose search text contains the query,
// case-insensitively. An empty query returns the input unchanged.
func FilterBySearch[T Record](records []T, query string) []T {
	if query == "" {
		return records
	}
	q := strings.ToLower(query)
	filtered := make([]T, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.SearchText()), q) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// DaysInMonth returns the day count for a YYYY-MM key, leap years included.
// Unparseable keys yield 0.
func DaysInMonth(yearMonth string) int {
	parts := strings.SplitN(yearMonth, "-", 2)
	if len(parts) != 2 {
		return 0
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0
	}
	// day 0 of the following month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dayOfMonth extracts the day component from a YYYY-MM-DD string. Returns
// 0 when the string is too short or the component is not numeric.
func dayOfMonth(date string) int {
	if len(date) < 10 {
		return 0
	}
	day, err := strconv.Atoi(date[8:10])
	if err != nil {
		return 0
	}
	return day
}

// BuildDailySeries produces one entry per calendar day of the month. Every
// non-Rejected expense adds its amount to the day it falls on; every
// non-Rejected overtime record adds days times rate. CombinedTotal is
// filled in after both accumulations. Records whose day component falls
// outside the month are skipped rather than failing the computation.
func BuildDailySeries[E Record, O Record](expenses []E, overtimes []O, yearMonth string) []DayEntry {
	days := DaysInMonth(yearMonth)
	series := make([]DayEntry, days)
	for i := range series {
		series[i].Day = i + 1
	}

	for _, e := range expenses {
		if !e.StatusValue().CountsTowardTotals() {
			continue
		}
		if day := dayOfMonth(e.DateString()); day >= 1 && day <= days {
			series[day-1].ExpenseTotal += e.Contribution()
		}
	}

	for _, o := range overtimes {
		if !o.StatusValue().CountsTowardTotals() {
			continue
		}
		if day := dayOfMonth(o.DateString()); day >= 1 && day <= days {
			series[day-1].OvertimeTotal += o.Contribution()
		}
	}

	for i := range series {
		series[i].CombinedTotal = series[i].ExpenseTotal + series[i].OvertimeTotal
	}

	return series
}

// ComputeTotals sums contributions of non-Rejected records.
func ComputeTotals[E Record, O Record](expenses []E, overtimes []O) Totals {
	var t Totals
	for _, e := range expenses {
		if e.StatusValue().CountsTowardTotals() {
			t.ExpenseTotal += e.Contribution()
		}
	}
	for _, o := range overtimes {
		if o.StatusValue().CountsTowardTotals() {
			t.OvertimeTotal += o.Contribution()
		}
	}
	t.CombinedTotal = t.ExpenseTotal + t.OvertimeTotal
	return t
}

// RemainingBudget returns budget minus combined spend. The result is
// signed: a negative value means over budget and is never clamped.
func RemainingBudget(budget, combinedTotal int64) int64 {
	return budget - combinedTotal
}

// PendingCount counts records awaiting review.
func PendingCount[T Record](records []T) int {
	n := 0
	for _, r := range records {
		if r.StatusValue() == record.StatusPending {
			n++
		}
	}
	return n
}

// Paginate returns the 1-based page of a contiguous slice. Out-of-range
// pages yield an empty slice; callers are expected to clamp the page
// number before asking.
func Paginate[T any](list []T, pageSize, page int) []T {
	if pageSize <= 0 || page <= 0 {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(list) {
		return []T{}
	}
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

// TotalPages returns how many pages a list of n items spans.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}
