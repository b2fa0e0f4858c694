// Package export renders finalized budget data into downloadable workbooks.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"budgetflow/internal/domain"
)

var itemHeaders = []string{
	"Row", "Specialist", "Campaign", "Budget Code", "Vendor", "Channel",
	"Sub Channel", "Amount Planned", "Start Date", "End Date",
	"Metric 1", "Metric 2", "Metric 3", "Description",
}

const dateLayout = "2006-01-02"

// FinalizedItems builds an xlsx workbook from finalized line items.
func FinalizedItems(items []domain.BudgetItem) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Finalized Budgets"
	f.SetSheetName("Sheet1", sheet)

	for col, h := range itemHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("export.FinalizedItems: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("export.FinalizedItems: %w", err)
		}
	}

	for i, item := range items {
		values := []interface{}{
			item.RowNumber,
			item.Specialist,
			item.CampaignName,
			item.BudgetCode,
			item.Vendor,
			string(item.Channel),
			item.SubChannel,
			amountValue(item),
			dateValue(item.StartDate),
			dateValue(item.EndDate),
			item.Metric1,
			item.Metric2,
			item.Metric3,
			item.Description,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("export.FinalizedItems: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("export.FinalizedItems: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export.FinalizedItems: %w", err)
	}
	return buf.Bytes(), nil
}

func amountValue(item domain.BudgetItem) interface{} {
	if !item.AmountPlanned.Valid {
		return ""
	}
	v, _ := item.AmountPlanned.Decimal.Float64()
	return v
}

func dateValue(t *time.Time) interface{} {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
