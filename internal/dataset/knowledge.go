package dataset

import (
	"sort"
)

// Knowledge is the precomputed aggregate summary derived once from the full
// dataset. It feeds the dashboard metrics directly and is serialized
// verbatim into the LLM context, so the JSON field names are part of the
// frontend and prompt contract.
type Knowledge struct {
	Overview        Overview                `json:"overview"`
	Performance     Performance             `json:"performance"`
	ChannelInsights map[string]GroupInsight `json:"channelInsights"`
	BrandInsights   map[string]GroupInsight `json:"brandInsights"`
	RegionInsights  map[string]GroupInsight `json:"regionInsights"`
	AgentImpact     AgentImpact             `json:"agentImpact"`
	TopPerformers   TopPerformers           `json:"topPerformers"`
}

// Overview describes the dataset's extent: row count, date range, and the
// distinct dimension values in first-seen order (blank values excluded).
type Overview struct {
	TotalCampaigns int       `json:"totalCampaigns"`
	DateRange      DateRange `json:"dateRange"`
	Brands         []string  `json:"brands"`
	Channels       []string  `json:"channels"`
	Regions        []string  `json:"regions"`
}

// DateRange holds the lexicographic min/max of the Date column. Dates in the
// CSV are ISO-formatted, so string order is date order.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Performance holds the dataset-wide averages and totals.
type Performance struct {
	AvgCTR            float64 `json:"avgCTR"`
	AvgRoAS           float64 `json:"avgRoAS"`
	AvgConversionRate float64 `json:"avgConversionRate"`
	AvgEngagementRate float64 `json:"avgEngagementRate"`
	TotalConversions  float64 `json:"totalConversions"`
	TotalSpend        float64 `json:"totalSpend"`
}

// GroupInsight is the per-dimension profile keyed by channel, brand, or
// region name in the insight maps.
type GroupInsight struct {
	Count             int     `json:"count"`
	AvgCTR            float64 `json:"avgCTR"`
	AvgRoAS           float64 `json:"avgRoAS"`
	AvgConversionRate float64 `json:"avgConversionRate"`
	TotalConversions  float64 `json:"totalConversions"`
	TotalSpend        float64 `json:"totalSpend"`
	AgentPercentage   float64 `json:"agentPercentage"`
}

// AgentImpact summarizes automated vs. manually managed campaigns.
type AgentImpact struct {
	AgentCampaigns  int     `json:"agentCampaigns"`
	ManualCampaigns int     `json:"manualCampaigns"`
	AvgAutomation   float64 `json:"avgAutomation"`
	AvgResponseTime float64 `json:"avgResponseTime"`
	AvgOptimization float64 `json:"avgOptimizations"`
}

// TopPerformers holds the top-5 record lists by the three headline metrics.
// Sorts are stable with missing values treated as zero; equal values keep
// original row order.
type TopPerformers struct {
	BestCTRCampaigns      []Record `json:"bestCTRCampaigns"`
	BestRoASCampaigns     []Record `json:"bestRoASCampaigns"`
	HighestSpendCampaigns []Record `json:"highestSpendCampaigns"`
}

const topPerformerCount = 5

// BuildKnowledge computes the Knowledge snapshot for a dataset. It is a pure
// function: rebuilding on the same dataset yields structurally identical
// output. An empty dataset produces a knowledge object with zero counts,
// zero averages, and empty maps — never a panic.
func BuildKnowledge(data Dataset) Knowledge {
	k := Knowledge{
		Overview: Overview{
			TotalCampaigns: len(data),
			DateRange:      dateRange(data),
			Brands:         distinct(data, ColBrand),
			Channels:       distinct(data, ColChannel),
			Regions:        distinct(data, ColRegion),
		},
		Performance: Performance{
			AvgCTR:            Average(data.Column(ColCTR)),
			AvgRoAS:           Average(data.Column(ColRoAS)),
			AvgConversionRate: Average(data.Column(ColConversionRate)),
			AvgEngagementRate: Average(data.Column(ColEngagementRate)),
			TotalConversions:  Sum(data.Column(ColConversion)),
			TotalSpend:        Sum(data.Column(ColMediaSpend)),
		},
		ChannelInsights: insightMap(data, ColChannel),
		BrandInsights:   insightMap(data, ColBrand),
		RegionInsights:  insightMap(data, ColRegion),
		AgentImpact:     agentImpact(data),
		TopPerformers: TopPerformers{
			BestCTRCampaigns:      topByColumn(data, ColCTR, topPerformerCount),
			BestRoASCampaigns:     topByColumn(data, ColRoAS, topPerformerCount),
			HighestSpendCampaigns: topByColumn(data, ColMediaSpend, topPerformerCount),
		},
	}
	return k
}

// CategoryNames lists the top-level knowledge sections, as reported by the
// diagnostics endpoint.
func (k Knowledge) CategoryNames() []string {
	return []string{
		"overview", "performance", "channelInsights", "brandInsights",
		"regionInsights", "agentImpact", "topPerformers",
	}
}

func distinct(data Dataset, column string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, rec := range data {
		v := rec.Text(column)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func dateRange(data Dataset) DateRange {
	var dr DateRange
	for _, rec := range data {
		d := rec.Text(ColDate)
		if d == "" {
			continue
		}
		if dr.Start == "" || d < dr.Start {
			dr.Start = d
		}
		if dr.End == "" || d > dr.End {
			dr.End = d
		}
	}
	return dr
}

func insightMap(data Dataset, column string) map[string]GroupInsight {
	insights := make(map[string]GroupInsight)
	for _, g := range GroupBy(data, column) {
		stats := AggregateGroup(g.Key, g.Records)
		insights[g.Key] = GroupInsight{
			Count:             stats.Count,
			AvgCTR:            stats.AvgCTR,
			AvgRoAS:           stats.AvgRoAS,
			AvgConversionRate: stats.AvgConvRate,
			TotalConversions:  stats.TotalConversions,
			TotalSpend:        stats.TotalSpend,
			AgentPercentage:   stats.AgentPercentage,
		}
	}
	return insights
}

func agentImpact(data Dataset) AgentImpact {
	impact := AgentImpact{
		AvgAutomation:   Average(data.Column(ColAgentAutomated)),
		AvgResponseTime: Average(data.Column(ColAvgResponseTime)),
		AvgOptimization: Average(data.Column(ColAutoOptimizations)),
	}
	for _, rec := range data {
		switch rec.Text(ColAgentStatus) {
		case AgentStatusAutomated:
			impact.AgentCampaigns++
		case "Manual":
			impact.ManualCampaigns++
		}
	}
	return impact
}

// topByColumn returns the top n records by a numeric column, descending.
// Records without a usable number sort as zero. The stable sort keeps
// original row order across ties.
func topByColumn(data Dataset, column string, n int) []Record {
	ranked := make([]Record, len(data))
	copy(ranked, data)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NumberOrZero(column) > ranked[j].NumberOrZero(column)
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
