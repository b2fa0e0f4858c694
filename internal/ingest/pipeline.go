package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"budgetflow/internal/domain"
)

// Row is one cleaned line of a normalized budget table.
type Row struct {
	RowNumber    int
	BudgetCode   string
	CampaignName string
	Vendor       string
	SubChannel   string
	Amount       decimal.NullDecimal
	StartDate    *time.Time
	EndDate      *time.Time
	Metric1      string
	Metric2      string
	Metric3      string
	Description  string
}

// Result is the output of a successful ingestion run.
type Result struct {
	Table       *Table
	Rows        []Row
	HeaderRow   int
	RowCount    int
	TotalAmount decimal.Decimal
	FileHash    string
	Unmapped    []string
	Warnings    []string
	Duration    time.Duration
}

// Processor orchestrates read, header detection, normalization, cleaning and
// validation. It is stateless; one instance serves all uploads.
type Processor struct {
	keywords []string
	maxScan  int
}

// NewProcessor creates a Processor with the default keyword set and scan depth.
func NewProcessor() *Processor {
	return &Processor{keywords: HeaderKeywords, maxScan: MaxHeaderScanRows}
}

// Process turns raw uploaded bytes into a normalized, cleaned table.
// Format and structural problems return an error and no result; data-quality
// findings come back as warnings on the result for the caller to surface.
func (p *Processor) Process(filename string, data []byte, channel domain.ChannelType) (*Result, error) {
	start := time.Now()

	if !domain.IsValidChannel(channel) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidChannel, channel)
	}

	raw, err := ReadRows(filename, data)
	if err != nil {
		return nil, err
	}

	hash := sha256.Sum256(data)

	headerRow := DetectHeader(raw, p.keywords, p.maxScan)
	if headerRow < 0 {
		return nil, fmt.Errorf("%w: scanned the first %d rows against %d known keywords",
			domain.ErrHeaderNotFound, p.maxScan, len(p.keywords))
	}

	table := buildTable(raw, headerRow)
	norm := Normalize(table, channel)

	var missing []string
	for _, col := range RequiredColumns {
		if table.ColumnIndex(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s not found; source columns were: %s",
			domain.ErrRequiredColumnMissing,
			strings.Join(missing, ", "), strings.Join(sourceColumns(raw[headerRow]), ", "))
	}

	warnings := make([]string, 0)
	for _, col := range RecommendedColumns {
		if table.ColumnIndex(col) < 0 {
			warnings = append(warnings, fmt.Sprintf("recommended column %q not found", col))
		}
	}

	rows, total, dropped := cleanRows(table, headerRow)
	if dropped > 0 {
		log.Printf("ingest.Process: dropped %d empty rows from %s", dropped, filename)
	}

	warnings = append(warnings, Validate(rows)...)

	return &Result{
		Table:       table,
		Rows:        rows,
		HeaderRow:   headerRow,
		RowCount:    len(rows),
		TotalAmount: total,
		FileHash:    hex.EncodeToString(hash[:]),
		Unmapped:    norm.Unmapped,
		Warnings:    warnings,
		Duration:    time.Since(start),
	}, nil
}

// buildTable re-frames the raw grid using the detected header row: header
// cells become column names (blank ones get positional placeholders) and the
// following rows become data.
func buildTable(raw [][]string, headerRow int) *Table {
	header := raw[headerRow]
	width := len(header)
	for _, r := range raw[headerRow+1:] {
		if len(r) > width {
			width = len(r)
		}
	}

	columns := make([]string, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" {
			name = fmt.Sprintf("col_%d", i)
		}
		columns[i] = name
	}

	return &Table{Columns: columns, Rows: raw[headerRow+1:]}
}

// cleanRows runs the field cleaners over every data row, numbering rows by
// their 1-based position in the original sheet and dropping rows that are
// empty across all columns.
func cleanRows(t *Table, headerRow int) ([]Row, decimal.Decimal, int) {
	rows := make([]Row, 0, len(t.Rows))
	total := decimal.Zero
	dropped := 0

	for i := range t.Rows {
		empty := true
		for _, cell := range t.Rows[i] {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if empty {
			dropped++
			continue
		}

		row := Row{
			// headerRow is 0-based; +2 lands on the sheet's 1-based data row.
			RowNumber:    headerRow + 2 + i,
			BudgetCode:   strings.TrimSpace(t.Cell(i, FieldBudgetCode)),
			CampaignName: strings.TrimSpace(t.Cell(i, FieldCampaignName)),
			Vendor:       strings.TrimSpace(t.Cell(i, FieldVendor)),
			SubChannel:   strings.TrimSpace(t.Cell(i, FieldSubChannel)),
			Metric1:      strings.TrimSpace(t.Cell(i, FieldMetric1)),
			Metric2:      strings.TrimSpace(t.Cell(i, FieldMetric2)),
			Metric3:      strings.TrimSpace(t.Cell(i, FieldMetric3)),
			Description:  strings.TrimSpace(t.Cell(i, FieldDescription)),
		}

		if amount, ok := CleanAmount(t.Cell(i, FieldAmountPlanned)); ok {
			row.Amount = decimal.NullDecimal{Decimal: amount, Valid: true}
			total = total.Add(amount)
		}
		if d, ok := CleanDate(t.Cell(i, FieldStartDate)); ok {
			row.StartDate = &d
		}
		if d, ok := CleanDate(t.Cell(i, FieldEndDate)); ok {
			row.EndDate = &d
		}

		rows = append(rows, row)
	}
	return rows, total, dropped
}

func sourceColumns(header []string) []string {
	var cols []string
	for _, c := range header {
		if c = strings.TrimSpace(c); c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}
