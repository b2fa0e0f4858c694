package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// missingTokens are cell values treated as "no value" rather than a parse
// failure worth reporting.
var missingTokens = map[string]bool{
	"":     true,
	"-":    true,
	"nan":  true,
	"none": true,
	"n/a":  true,
	"n.a":  true,
}

// CleanAmount parses a currency cell into a decimal. It strips currency
// glyphs, ordinary and unicode spaces, and thousands-separator commas, and
// turns a parenthesized value into a negative. Unparsable values report
// ok=false; the cell degrades to missing instead of failing the ingestion.
func CleanAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if missingTokens[strings.ToLower(s)] {
		return decimal.Decimal{}, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	// Keep digits, the decimal point, and a sign; drop everything else
	// (₮, $, commas, nbsp/thin spaces, trailing text).
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "-" {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// dateLayouts are tried in order. Day-before-month variants come first to
// match the dominant local convention.
var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Excel serial date 1 is 1900-01-01, counted from an epoch of 1899-12-30
// because of the leap-year bug the format inherited from Lotus 1-2-3.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Serial bounds considered plausible for a budget date (roughly 1954-2120).
const (
	minExcelSerial = 20000
	maxExcelSerial = 80000
)

// CleanDate parses a date cell, trying the explicit layout list first and
// falling back to Excel serial-number interpretation for bare numbers in a
// plausible range. Unparsable values report ok=false.
func CleanDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if missingTokens[strings.ToLower(s)] {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial >= minExcelSerial && serial <= maxExcelSerial {
			days := int(serial)
			frac := serial - float64(days)
			t := excelEpoch.AddDate(0, 0, days).
				Add(time.Duration(frac * 24 * float64(time.Hour)))
			return t, true
		}
	}

	return time.Time{}, false
}
