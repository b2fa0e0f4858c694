package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"budgetflow/internal/domain"
)

func TestNormalize_CommonAndChannelOverlay(t *testing.T) {
	table := &Table{
		Columns: []string{"Код", "Кампанит ажил", "Төсөв", "Duration", "Суваг"},
	}

	result := Normalize(table, domain.ChannelTV)

	assert.Equal(t, []string{"budget_code", "campaign_name", "amount_planned", "metric_1", "sub_channel"}, table.Columns)
	assert.Empty(t, result.Unmapped)
	assert.Equal(t, "budget_code", result.Renamed["Код"])
	assert.Equal(t, "metric_1", result.Renamed["Duration"])
}

func TestNormalize_Idempotent(t *testing.T) {
	table := &Table{
		Columns: []string{"budget_code", "campaign_name", "amount_planned", "metric_1"},
	}

	result := Normalize(table, domain.ChannelTV)

	assert.Equal(t, []string{"budget_code", "campaign_name", "amount_planned", "metric_1"}, table.Columns)
	assert.Empty(t, result.Renamed)
	assert.Empty(t, result.Unmapped)
}

func TestNormalize_FieldAssignedOnce(t *testing.T) {
	// Both columns would map to amount_planned; only the first may claim it.
	table := &Table{
		Columns: []string{"Amount", "Нийт дүн"},
	}

	result := Normalize(table, domain.ChannelOther)

	assert.Equal(t, "amount_planned", table.Columns[0])
	assert.Equal(t, "Нийт дүн", table.Columns[1])
	assert.Equal(t, []string{"Нийт дүн"}, result.Unmapped)
}

func TestNormalize_UnmappedPreserved(t *testing.T) {
	table := &Table{
		Columns: []string{"Budget Code", "Батлагдсан"},
	}

	result := Normalize(table, domain.ChannelOther)

	assert.Equal(t, "budget_code", table.Columns[0])
	assert.Equal(t, "Батлагдсан", table.Columns[1])
	assert.Equal(t, []string{"Батлагдсан"}, result.Unmapped)
}

func TestNormalize_ChannelSemanticsDiffer(t *testing.T) {
	// "Size" lands on metric_1 for outdoor, "Duration" on metric_1 for TV.
	ooh := &Table{Columns: []string{"Size"}}
	Normalize(ooh, domain.ChannelOOH)
	assert.Equal(t, "metric_1", ooh.Columns[0])

	tv := &Table{Columns: []string{"Duration"}}
	Normalize(tv, domain.ChannelTV)
	assert.Equal(t, "metric_1", tv.Columns[0])
}

func TestValidateMappings(t *testing.T) {
	assert.NoError(t, ValidateMappings())
}
