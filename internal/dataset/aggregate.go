package dataset

import (
	"sort"
)

// UnknownGroup is the bucket for records whose grouping field is missing or
// blank.
const UnknownGroup = "Unknown"

// Average coerces each value to a float, discards the ones that fail, and
// returns the arithmetic mean. Averaging over no usable data is defined as
// zero, not NaN — callers display zeros rather than handling a missing case.
func Average(values []Value) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if f, ok := coerce(v); ok {
			sum += f
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Sum coerces each value to a float and sums the usable ones. Empty input
// sums to zero.
func Sum(values []Value) float64 {
	var sum float64
	for _, v := range values {
		if f, ok := coerce(v); ok {
			sum += f
		}
	}
	return sum
}

// Group is one partition of a dataset, keyed by the string value of the
// grouping column.
type Group struct {
	Key     string
	Records []Record
}

// GroupBy partitions records by the string value of the given column,
// substituting UnknownGroup for missing or blank values. Groups come back in
// first-seen order, which downstream rankings use as the tiebreak.
func GroupBy(records []Record, column string) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, rec := range records {
		key := rec.Text(column)
		if key == "" {
			key = UnknownGroup
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}
	return groups
}

// GroupStats is the aggregate profile of one group of records.
type GroupStats struct {
	Name             string  `json:"name"`
	Count            int     `json:"count"`
	AvgCTR           float64 `json:"avg_ctr"`
	AvgRoAS          float64 `json:"avg_roas"`
	AvgCPC           float64 `json:"avg_cpc"`
	AvgConvRate      float64 `json:"avg_conv_rate"`
	TotalConversions float64 `json:"total_conversions"`
	TotalSpend       float64 `json:"total_spend"`
	AgentPercentage  float64 `json:"agent_percentage"`
}

// Metric names accepted by RankByMetric.
const (
	MetricAvgCTR      = "avg_ctr"
	MetricAvgRoAS     = "avg_roas"
	MetricAvgCPC      = "avg_cpc"
	MetricAvgConvRate = "avg_conv_rate"
)

// AggregateGroup computes the stats profile for one group of records.
// Division by zero never occurs: an empty group yields all zeros.
func AggregateGroup(name string, records []Record) GroupStats {
	stats := GroupStats{
		Name:             name,
		Count:            len(records),
		AvgCTR:           Average(column(records, ColCTR)),
		AvgRoAS:          Average(column(records, ColRoAS)),
		AvgCPC:           Average(column(records, ColCPC)),
		AvgConvRate:      Average(column(records, ColConversionRate)),
		TotalConversions: Sum(column(records, ColConversion)),
		TotalSpend:       Sum(column(records, ColMediaSpend)),
	}
	if len(records) > 0 {
		agents := 0
		for _, rec := range records {
			if rec.Text(ColAgentStatus) == AgentStatusAutomated {
				agents++
			}
		}
		stats.AgentPercentage = float64(agents) / float64(len(records)) * 100
	}
	return stats
}

// AggregateGroups runs AggregateGroup over every partition, preserving group
// order.
func AggregateGroups(groups []Group) []GroupStats {
	out := make([]GroupStats, 0, len(groups))
	for _, g := range groups {
		out = append(out, AggregateGroup(g.Key, g.Records))
	}
	return out
}

// RankByMetric returns the top n groups by the named metric, descending.
// The sort is stable: groups with equal metric values keep their first-seen
// order, so rankings are deterministic for a fixed dataset.
func RankByMetric(stats []GroupStats, metric string, n int) []GroupStats {
	ranked := make([]GroupStats, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool {
		return metricOf(ranked[i], metric) > metricOf(ranked[j], metric)
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

func metricOf(s GroupStats, metric string) float64 {
	switch metric {
	case MetricAvgCTR:
		return s.AvgCTR
	case MetricAvgRoAS:
		return s.AvgRoAS
	case MetricAvgCPC:
		return s.AvgCPC
	case MetricAvgConvRate:
		return s.AvgConvRate
	default:
		return 0
	}
}

func column(records []Record, name string) []Value {
	out := make([]Value, 0, len(records))
	for _, rec := range records {
		out = append(out, rec[name])
	}
	return out
}
