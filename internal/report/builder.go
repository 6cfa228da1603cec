package report

import (
	"fmt"
	"time"

	"github.com/rootslab/opsfinance/internal/dashboard"
	"github.com/rootslab/opsfinance/internal/expense"
	"github.com/rootslab/opsfinance/internal/overtime"
)

const sheetName = "Laporan Lengkap"

// Merge marks a rectangular cell range, zero-based row/column coordinates.
type Merge struct {
	StartRow, StartCol int
	EndRow, EndCol     int
}

// Document is the spreadsheet as pure data: rows of cell values plus the
// layout hints the writer applies. Building it touches no file formats,
// which keeps the layout testable without opening a workbook.
type Document struct {
	SheetName string
	Rows      [][]interface{}
	ColWidths []float64
	Merges    []Merge
}

// Filename returns the download name for a monthly report.
func Filename(yearMonth string) string {
	return fmt.Sprintf("Laporan_Keuangan_Roots_%s.xlsx", yearMonth)
}

// BuildMonthly assembles the single-sheet monthly report: title block,
// budget summary, expense detail, overtime detail, and a generated-at
// footer. Records must already be scoped to the month.
func BuildMonthly(yearMonth string, budget int64, expenses []*expense.Expense, overtimes []*overtime.Overtime, generatedAt time.Time) *Document {
	totals := dashboard.ComputeTotals(expenses, overtimes)
	remaining := dashboard.RemainingBudget(budget, totals.CombinedTotal)

	budgetFlag := "SAFE"
	if remaining < 0 {
		budgetFlag = "OVERBUDGET"
	}

	rows := [][]interface{}{
		{"LAPORAN KEUANGAN & OPERASIONAL - ROOTSLAB"},
		{fmt.Sprintf("PERIODE: %s", yearMonth)},
		{""},
		{"RINGKASAN BUDGET", "", "", ""},
		{"Kategori", "Nilai (Rp)", "Status", "Keterangan"},
		{"Total Alokasi Budget", budget, "Active", "Modal Awal"},
		{"Total Pengeluaran", totals.ExpenseTotal, "Used", "Operasional Kantor"},
		{"Total Lembur", totals.OvertimeTotal, "Used", "SDM / Karyawan"},
		{"Total Terpakai (All)", totals.CombinedTotal, "", ""},
		{"SISA BUDGET AKHIR", remaining, budgetFlag, "Saldo Akhir"},
		{"", "", "", ""},
		{"RINCIAN PENGELUARAN (EXPENSES)"},
		{"Tanggal", "Item Deskripsi", "Order By (Pemohon)", "Nominal (Rp)", "Status", "Catatan"},
	}

	for _, e := range expenses {
		rows = append(rows, []interface{}{
			e.Date,
			e.Description,
			e.Requester,
			e.Amount,
			e.Status,
			orDash(e.Note),
		})
	}

	rows = append(rows,
		[]interface{}{"", "", "", "", "", ""},
		[]interface{}{"RINCIAN LEMBUR (OVERTIME)"},
		[]interface{}{"Tanggal", "Nama Karyawan", "Jumlah Hari", "Rate/Hari (Rp)", "Total (Rp)", "Status", "Catatan"},
	)

	for _, o := range overtimes {
		rows = append(rows, []interface{}{
			o.Date,
			o.EmployeeName,
			o.Days,
			o.Rate,
			o.Amount(),
			o.Status,
			orDash(o.Note),
		})
	}

	rows = append(rows,
		[]interface{}{""},
		[]interface{}{"Generated by RootsFinance System", generatedAt.Format("2006-01-02 15:04:05")},
	)

	return &Document{
		SheetName: sheetName,
		Rows:      rows,
		ColWidths: []float64{15, 35, 25, 20, 20, 30, 15},
		Merges: []Merge{
			{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 5},
			{StartRow: 1, StartCol: 0, EndRow: 1, EndCol: 5},
			{StartRow: 3, StartCol: 0, EndRow: 3, EndCol: 3},
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
