package ingest

import (
	"fmt"
	"time"
)

// Plausible date window for a budget line: more than 5 years back or 2 years
// ahead is almost always a typo or a serial-number misparse.
const (
	maxYearsPast   = 5
	maxYearsFuture = 2
)

// Validate runs the non-fatal data-quality checks over cleaned rows and
// returns human-readable warnings. The table is accepted either way; the
// caller decides whether to block or merely flag.
func Validate(rows []Row) []string {
	var warnings []string

	missingCode := 0
	missingCampaign := 0
	missingAmount := 0
	seenCodes := make(map[string][]int)

	now := time.Now()
	earliest := now.AddDate(-maxYearsPast, 0, 0)
	latest := now.AddDate(maxYearsFuture, 0, 0)

	for _, row := range rows {
		if row.BudgetCode == "" {
			missingCode++
		} else {
			seenCodes[row.BudgetCode] = append(seenCodes[row.BudgetCode], row.RowNumber)
		}
		if row.CampaignName == "" {
			missingCampaign++
		}
		if !row.Amount.Valid {
			missingAmount++
		} else if row.Amount.Decimal.Sign() <= 0 {
			warnings = append(warnings,
				fmt.Sprintf("row %d: amount %s is zero or negative", row.RowNumber, row.Amount.Decimal))
		}

		for _, d := range []*time.Time{row.StartDate, row.EndDate} {
			if d != nil && (d.Before(earliest) || d.After(latest)) {
				warnings = append(warnings,
					fmt.Sprintf("row %d: date %s is outside the plausible range", row.RowNumber, d.Format("2006-01-02")))
			}
		}
	}

	if missingCode > 0 {
		warnings = append(warnings, fmt.Sprintf("%d rows have no budget code", missingCode))
	}
	if missingCampaign > 0 {
		warnings = append(warnings, fmt.Sprintf("%d rows have no campaign name", missingCampaign))
	}
	if missingAmount > 0 {
		warnings = append(warnings, fmt.Sprintf("%d rows have no parsable amount", missingAmount))
	}

	for code, rowNums := range seenCodes {
		if len(rowNums) > 1 {
			warnings = append(warnings,
				fmt.Sprintf("budget code %q appears on %d rows", code, len(rowNums)))
		}
	}

	return warnings
}
