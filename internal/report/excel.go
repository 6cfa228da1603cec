package report

import (
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX renders the document into a workbook on w.
func WriteXLSX(doc *Document, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(doc.SheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	// NewFile seeds a default sheet we never write to
	if doc.SheetName != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}

	for i, row := range doc.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(doc.SheetName, cell, &row); err != nil {
			return err
		}
	}

	for i, width := range doc.ColWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(doc.SheetName, col, col, width); err != nil {
			return err
		}
	}

	for _, m := range doc.Merges {
		start, err := excelize.CoordinatesToCellName(m.StartCol+1, m.StartRow+1)
		if err != nil {
			return err
		}
		end, err := excelize.CoordinatesToCellName(m.EndCol+1, m.EndRow+1)
		if err != nil {
			return err
		}
		if err := f.MergeCell(doc.SheetName, start, end); err != nil {
			return err
		}
	}

	return f.Write(w)
}
