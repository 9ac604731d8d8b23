// Package export renders ledger entries as spreadsheet workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"herdbook/internal/models"
)

const (
	// ContentType is the MIME type of an .xlsx workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheetName   = "Ledger"
	dateLayout  = "2006-01-02"
)

var ledgerHeaders = []interface{}{
	"Date", "Type", "Category", "Amount", "Description",
	"Animal", "Buyer", "Supplier", "Source", "Source ID",
}

// LedgerWorkbook builds a workbook with one row per entry under a header row,
// followed by income, expense and net totals.
func LedgerWorkbook(entries []models.LedgerEntry) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheetName, "A1", &ledgerHeaders); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return nil, err
	}

	var income, expense int64
	for i := range entries {
		e := &entries[i]
		row := []interface{}{
			e.TransactionDate.Format(dateLayout),
			string(e.TransactionType),
			e.Category,
			e.Amount,
			e.Description,
			deref(e.AnimalID),
			e.BuyerName,
			e.SupplierName,
			"",
			deref(e.SourceRecordID),
		}
		if e.SourceRecordType != nil {
			row[8] = string(*e.SourceRecordType)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}

		switch e.TransactionType {
		case models.LedgerTypeIncome:
			income += e.Amount
		case models.LedgerTypeExpense:
			expense += e.Amount
		}
	}

	totalsRow := len(entries) + 3
	totals := [][]interface{}{
		{"Total income", income},
		{"Total expense", expense},
		{"Net", income - expense},
	}
	for i, t := range totals {
		cell := fmt.Sprintf("C%d", totalsRow+i)
		if err := f.SetSheetRow(sheetName, cell, &t); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, bold); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(sheetName, "A", "C", 14); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "E", "E", 40); err != nil {
		return nil, err
	}
	return f, nil
}

// WriteLedger streams the ledger workbook to w.
func WriteLedger(w io.Writer, entries []models.LedgerEntry) error {
	f, err := LedgerWorkbook(entries)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
