package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"budgetflow/internal/domain"
)

// Sheet selection keywords for workbooks carrying several tabs. Budget
// templates keep the data on a TEMPLATE or гүйцэтгэл (execution) sheet next
// to staff and summary tabs we must not ingest.
var (
	prioritySheetKeywords = []string{"template", "гүйцэтгэл"}
	excludeSheetKeywords  = []string{"general", "employee", "target", "all employee"}
)

// ReadRows reads the raw cell grid from an uploaded budget file, dispatching
// on the filename extension: .xlsx via excelize, .xls via the legacy BIFF
// reader, .csv with a text-encoding fallback chain.
func ReadRows(filename string, data []byte) ([][]string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "xlsx":
		return readXLSX(data)
	case "xls":
		return readXLS(data)
	case "csv":
		return readCSV(data)
	default:
		return nil, domain.ErrUnsupportedFileType
	}
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFileUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	sheet := pickSheet(f.GetSheetList())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %q: %v", domain.ErrFileUnreadable, sheet, err)
	}
	return rows, nil
}

// pickSheet chooses the data sheet: first a priority-keyword match, then the
// first sheet not matching an exclusion keyword, then the first sheet.
func pickSheet(names []string) string {
	for _, name := range names {
		lower := strings.ToLower(name)
		if sheetExcluded(lower) {
			continue
		}
		for _, kw := range prioritySheetKeywords {
			if strings.Contains(lower, kw) {
				return name
			}
		}
	}
	for _, name := range names {
		if !sheetExcluded(strings.ToLower(name)) {
			return name
		}
	}
	if len(names) > 0 {
		return names[0]
	}
	return ""
}

func sheetExcluded(lowerName string) bool {
	for _, kw := range excludeSheetKeywords {
		if strings.Contains(lowerName, kw) {
			return true
		}
	}
	return false
}

func readXLS(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFileUnreadable, err)
	}
	sheet, err := wb.GetSheet(0)
	if err != nil || sheet == nil {
		return nil, fmt.Errorf("%w: xls has no readable sheet", domain.ErrFileUnreadable)
	}

	var rows [][]string
	for _, r := range sheet.GetRows() {
		var cells []string
		for _, col := range r.GetCols() {
			cells = append(cells, col.GetString())
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// readCSV decodes the bytes to UTF-8 before parsing. A UTF-16 BOM wins
// outright; otherwise already-valid UTF-8 is used as-is and anything else is
// treated as Windows-1251, the encoding legacy local tooling exports in.
// The UTF-8 decoder cannot drive this choice itself because it substitutes
// replacement runes instead of failing on foreign bytes.
func readCSV(data []byte) ([][]string, error) {
	var enc encoding.Encoding
	switch {
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}), bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		enc = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case utf8.Valid(data):
		enc = unicode.UTF8
	default:
		enc = charmap.Windows1251
	}

	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding csv: %v", domain.ErrFileUnreadable, err)
	}
	decoded = bytes.TrimPrefix(decoded, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(decoded))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parsing csv: %v", domain.ErrFileUnreadable, err)
	}
	return rows, nil
}
