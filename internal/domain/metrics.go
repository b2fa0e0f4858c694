package domain

// MetricLabels gives the per-channel meaning of the generic metric slots on
// a BudgetItem. An empty label means the slot is unused for that channel.
type MetricLabels struct {
	Metric1    string `json:"metric_1"`
	Metric2    string `json:"metric_2"`
	Metric3    string `json:"metric_3"`
	SubChannel string `json:"sub_channel"`
}

var metricLabels = map[ChannelType]MetricLabels{
	ChannelTV:      {Metric1: "Duration (sec)", Metric2: "Frequency (spots)", Metric3: "GRP", SubChannel: "TV Channel"},
	ChannelFM:      {Metric1: "Duration (sec)", Metric2: "Frequency (spots)", SubChannel: "Radio Station"},
	ChannelOOH:     {Metric1: "Size", Metric2: "Quantity", SubChannel: "Location"},
	ChannelDigital: {Metric1: "Impressions", Metric2: "Clicks", SubChannel: "Platform"},
	ChannelPrint:   {Metric1: "Ad Size", Metric2: "Insertions", SubChannel: "Publication"},
	ChannelEvent:   {Metric1: "Attendees", Metric2: "Days", SubChannel: "Venue"},
}

// MetricLabelsFor returns the metric slot labels for a channel. Channels
// without an overlay (Other) get zero-value labels.
func MetricLabelsFor(channel ChannelType) MetricLabels {
	return metricLabels[channel]
}
