package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCleanAmount(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		valid bool
	}{
		{"tugrik with thousands separators", "₮16,434,532", "16434532", true},
		{"dollar sign", "$1,200.50", "1200.5", true},
		{"parenthesized is negative", "(1,200)", "-1200", true},
		{"plain integer", "500000", "500000", true},
		{"unicode spaces", "1 200 000", "1200000", true},
		{"explicit negative", "-300", "-300", true},
		{"n/a is missing", "n/a", "", false},
		{"dash is missing", "-", "", false},
		{"empty is missing", "", "", false},
		{"nan is missing", "NaN", "", false},
		{"pure text is missing", "хэлэлцэх", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CleanAmount(tt.raw)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestCleanDate_DayFirstLayouts(t *testing.T) {
	got, ok := CleanDate("25/12/2024")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), got)

	got, ok = CleanDate("05.03.2024")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)

	got, ok = CleanDate("2024-06-01")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestCleanDate_ExcelSerial(t *testing.T) {
	// Serial 45292 is 2024-01-01.
	got, ok := CleanDate("45292")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestCleanDate_SerialOutOfRange(t *testing.T) {
	// Small numbers are row counts or quantities, not dates.
	_, ok := CleanDate("100")
	assert.False(t, ok)

	_, ok = CleanDate("99999")
	assert.False(t, ok)
}

func TestCleanDate_Unparsable(t *testing.T) {
	_, ok := CleanDate("next quarter")
	assert.False(t, ok)

	_, ok = CleanDate("")
	assert.False(t, ok)
}
