package ingest

import (
	"fmt"
	"strings"

	"budgetflow/internal/domain"
)

// Canonical column names produced by normalization.
const (
	FieldBudgetCode    = "budget_code"
	FieldCampaignName  = "campaign_name"
	FieldVendor        = "vendor"
	FieldAmountPlanned = "amount_planned"
	FieldStartDate     = "start_date"
	FieldEndDate       = "end_date"
	FieldDescription   = "description"
	FieldSubChannel    = "sub_channel"
	FieldMetric1       = "metric_1"
	FieldMetric2       = "metric_2"
	FieldMetric3       = "metric_3"
)

// RequiredColumns must be present after normalization; their absence fails
// the ingestion.
var RequiredColumns = []string{FieldBudgetCode, FieldCampaignName, FieldAmountPlanned}

// RecommendedColumns produce a warning, not a failure, when absent.
var RecommendedColumns = []string{FieldVendor, FieldStartDate, FieldEndDate}

var canonicalFields = map[string]bool{
	FieldBudgetCode:    true,
	FieldCampaignName:  true,
	FieldVendor:        true,
	FieldAmountPlanned: true,
	FieldStartDate:     true,
	FieldEndDate:       true,
	FieldDescription:   true,
	FieldSubChannel:    true,
	FieldMetric1:       true,
	FieldMetric2:       true,
	FieldMetric3:       true,
}

// Mapping is one ordered rename rule. A source column is renamed to Field
// when Pattern is a substring of the column name or vice versa.
type Mapping struct {
	Pattern string
	Field   string
}

// CommonMappings apply to every file regardless of channel. Order matters:
// earlier rules claim columns first. Each canonical name leads its own
// variant block so already-normalized input maps onto itself.
var CommonMappings = []Mapping{
	// Budget code variations (English and Mongolian)
	{"budget_code", FieldBudgetCode},
	{"budget code", FieldBudgetCode},
	{"budgetcode", FieldBudgetCode},
	{"төсвийн код", FieldBudgetCode},
	{"төсвийн_код", FieldBudgetCode},
	{"код", FieldBudgetCode},

	// Campaign name variations
	{"campaign_name", FieldCampaignName},
	{"campaign name", FieldCampaignName},
	{"campaign", FieldCampaignName},
	{"кампанит ажил", FieldCampaignName},
	{"кампанит", FieldCampaignName},
	{"нэр", FieldCampaignName},

	// Vendor/company variations
	{"vendor", FieldVendor},
	{"company", FieldVendor},
	{"компани", FieldVendor},
	{"supplier", FieldVendor},
	{"нийлүүлэгч", FieldVendor},
	{"agency", FieldVendor},
	{"агентлаг", FieldVendor},

	// Amount variations
	{"amount_planned", FieldAmountPlanned},
	{"planned amount", FieldAmountPlanned},
	{"amount", FieldAmountPlanned},
	{"нийт дүн", FieldAmountPlanned},
	{"дүн", FieldAmountPlanned},
	{"төсөв", FieldAmountPlanned},
	{"budget", FieldAmountPlanned},
	{"total", FieldAmountPlanned},
	{"нийт", FieldAmountPlanned},
	{"cost", FieldAmountPlanned},
	{"зардал", FieldAmountPlanned},

	// Date variations
	{"start_date", FieldStartDate},
	{"start date", FieldStartDate},
	{"эхлэх огноо", FieldStartDate},
	{"эхлэх", FieldStartDate},
	{"from date", FieldStartDate},
	{"from", FieldStartDate},

	{"end_date", FieldEndDate},
	{"end date", FieldEndDate},
	{"дуусах огноо", FieldEndDate},
	{"дуусах", FieldEndDate},
	{"to date", FieldEndDate},
	{"to", FieldEndDate},

	// Description variations
	{"description", FieldDescription},
	{"тайлбар", FieldDescription},
	{"notes", FieldDescription},
	{"note", FieldDescription},
	{"тэмдэглэл", FieldDescription},
	{"comment", FieldDescription},
}

// channelMappings overlay channel-specific source columns onto the generic
// metric slots. Semantically different columns (TV duration, OOH size)
// converge onto the same slot; MetricLabelsFor resolves the meaning.
var channelMappings = map[domain.ChannelType][]Mapping{
	domain.ChannelTV: {
		{"metric_1", FieldMetric1},
		{"duration", FieldMetric1},
		{"хугацаа", FieldMetric1},
		{"spot length", FieldMetric1},
		{"секунд", FieldMetric1},

		{"metric_2", FieldMetric2},
		{"frequency", FieldMetric2},
		{"давтамж", FieldMetric2},
		{"spots", FieldMetric2},
		{"тоо", FieldMetric2},
		{"airings", FieldMetric2},

		{"metric_3", FieldMetric3},
		{"grp", FieldMetric3},
		{"rating", FieldMetric3},

		{"sub_channel", FieldSubChannel},
		{"channel name", FieldSubChannel},
		{"суваг", FieldSubChannel},
		{"tv channel", FieldSubChannel},
	},
	domain.ChannelFM: {
		{"metric_1", FieldMetric1},
		{"duration", FieldMetric1},
		{"хугацаа", FieldMetric1},
		{"length", FieldMetric1},

		{"metric_2", FieldMetric2},
		{"frequency", FieldMetric2},
		{"давтамж", FieldMetric2},
		{"spots per day", FieldMetric2},

		{"sub_channel", FieldSubChannel},
		{"station", FieldSubChannel},
		{"станц", FieldSubChannel},
		{"radio", FieldSubChannel},
	},
	domain.ChannelOOH: {
		{"metric_1", FieldMetric1},
		{"size", FieldMetric1},
		{"хэмжээ", FieldMetric1},
		{"dimensions", FieldMetric1},

		{"metric_2", FieldMetric2},
		{"quantity", FieldMetric2},
		{"qty", FieldMetric2},
		{"тоо хэмжээ", FieldMetric2},
		{"ширхэг", FieldMetric2},
		{"count", FieldMetric2},

		{"sub_channel", FieldSubChannel},
		{"location", FieldSubChannel},
		{"байршил", FieldSubChannel},
		{"address", FieldSubChannel},
		{"хаяг", FieldSubChannel},
	},
	domain.ChannelDigital: {
		{"metric_1", FieldMetric1},
		{"impressions", FieldMetric1},
		{"харагдалт", FieldMetric1},
		{"views", FieldMetric1},

		{"metric_2", FieldMetric2},
		{"clicks", FieldMetric2},
		{"click", FieldMetric2},
		{"дарах", FieldMetric2},

		{"sub_channel", FieldSubChannel},
		{"platform", FieldSubChannel},
		{"платформ", FieldSubChannel},
		{"media", FieldSubChannel},
	},
	domain.ChannelPrint: {
		{"metric_1", FieldMetric1},
		{"size", FieldMetric1},
		{"хэмжээ", FieldMetric1},

		{"metric_2", FieldMetric2},
		{"insertions", FieldMetric2},
		{"тоо", FieldMetric2},
		{"issues", FieldMetric2},

		{"sub_channel", FieldSubChannel},
		{"publication", FieldSubChannel},
		{"сонин", FieldSubChannel},
		{"сэтгүүл", FieldSubChannel},
	},
	domain.ChannelEvent: {
		{"metric_1", FieldMetric1},
		{"attendees", FieldMetric1},
		{"оролцогчид", FieldMetric1},
		{"capacity", FieldMetric1},

		{"metric_2", FieldMetric2},
		{"days", FieldMetric2},
		{"өдөр", FieldMetric2},

		{"sub_channel", FieldSubChannel},
		{"venue", FieldSubChannel},
		{"байршил", FieldSubChannel},
		{"location", FieldSubChannel},
	},
	domain.ChannelOther: {},
}

// ValidateMappings checks every rule against the canonical field set so a
// typo in a mapping table fails at startup instead of silently producing an
// unmapped column. Called once from main.
func ValidateMappings() error {
	for _, m := range CommonMappings {
		if !canonicalFields[m.Field] {
			return fmt.Errorf("common mapping %q targets unknown field %q", m.Pattern, m.Field)
		}
	}
	for channel, mappings := range channelMappings {
		if !domain.IsValidChannel(channel) {
			return fmt.Errorf("mapping table registered for unknown channel %q", channel)
		}
		for _, m := range mappings {
			if !canonicalFields[m.Field] {
				return fmt.Errorf("%s mapping %q targets unknown field %q", channel, m.Pattern, m.Field)
			}
		}
	}
	return nil
}

// NormalizeResult reports the renames applied and the source columns no rule
// matched. Unmapped columns keep their original names and are informational.
type NormalizeResult struct {
	Renamed  map[string]string
	Unmapped []string
}

// Normalize renames source columns to canonical field names in two passes:
// the common map first, then the channel overlay. Matching is bidirectional
// substring on the lower-cased, trimmed column name. A source column is
// claimed by at most one rule, a canonical field by at most one column, and
// the channel pass never overrides a common-pass claim.
func Normalize(t *Table, channel domain.ChannelType) NormalizeResult {
	result := NormalizeResult{Renamed: make(map[string]string)}

	claimed := make([]bool, len(t.Columns))
	assigned := make(map[string]bool)

	apply := func(mappings []Mapping) {
		for _, m := range mappings {
			if assigned[m.Field] {
				continue
			}
			for idx, col := range t.Columns {
				if claimed[idx] {
					continue
				}
				name := strings.ToLower(strings.TrimSpace(col))
				if name == "" {
					continue
				}
				if strings.Contains(name, m.Pattern) || strings.Contains(m.Pattern, name) {
					if col != m.Field {
						result.Renamed[col] = m.Field
						t.Columns[idx] = m.Field
					}
					claimed[idx] = true
					assigned[m.Field] = true
					break
				}
			}
		}
	}

	apply(CommonMappings)
	apply(channelMappings[channel])

	for idx, col := range t.Columns {
		if !claimed[idx] && strings.TrimSpace(col) != "" {
			result.Unmapped = append(result.Unmapped, col)
		}
	}
	return result
}
