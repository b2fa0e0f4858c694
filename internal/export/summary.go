package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"budgetflow/internal/domain"
)

// EfficiencyRow is one file's planned-vs-actual line in the summary workbook.
type EfficiencyRow struct {
	FileName     string
	TotalPlanned decimal.Decimal
	TotalActual  decimal.Decimal
	SpendPercent decimal.Decimal
	Band         string
}

var (
	companyHeaders    = []string{"Company", "Total Planned", "Items"}
	efficiencyHeaders = []string{"File", "Total Planned", "Total Actual", "Spend %", "Band"}
)

// SummaryWorkbook builds the two-sheet management summary: spend grouped by
// company and per-file efficiency.
func SummaryWorkbook(companies []domain.CompanyTotal, efficiency []EfficiencyRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const companySheet = "By Company"
	const efficiencySheet = "Efficiency"
	f.SetSheetName("Sheet1", companySheet)
	if _, err := f.NewSheet(efficiencySheet); err != nil {
		return nil, fmt.Errorf("export.SummaryWorkbook: %w", err)
	}

	if err := writeRow(f, companySheet, 1, toCells(companyHeaders)); err != nil {
		return nil, err
	}
	for i, company := range companies {
		total, _ := company.Total.Float64()
		row := []interface{}{company.Company, total, company.ItemCount}
		if err := writeRow(f, companySheet, i+2, row); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, efficiencySheet, 1, toCells(efficiencyHeaders)); err != nil {
		return nil, err
	}
	for i, entry := range efficiency {
		planned, _ := entry.TotalPlanned.Float64()
		actual, _ := entry.TotalActual.Float64()
		percent, _ := entry.SpendPercent.Float64()
		row := []interface{}{entry.FileName, planned, actual, percent, entry.Band}
		if err := writeRow(f, efficiencySheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export.SummaryWorkbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("export.SummaryWorkbook: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("export.SummaryWorkbook: %w", err)
		}
	}
	return nil
}

func toCells(headers []string) []interface{} {
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}
