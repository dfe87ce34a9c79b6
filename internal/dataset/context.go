package dataset

import (
	"strings"
)

const (
	contextSampleCap    = 20
	perGroupSampleCount = 2
	generalSampleCount  = 15
	rankedSampleCount   = 10
)

// SelectContext picks a bounded, question-driven sample of records to ship
// alongside the knowledge summary as LLM context. Keyword triggers are
// checked in priority order; whatever branch fires, the result is capped at
// 20 records to bound the prompt payload. Deterministic for a fixed dataset
// and question.
func SelectContext(question string, data Dataset) []Record {
	q := strings.ToLower(question)

	var samples []Record
	switch {
	case strings.Contains(q, "campaign") || strings.Contains(q, "top") || strings.Contains(q, "best"):
		samples = head(data, rankedSampleCount)
	case strings.Contains(q, "channel"):
		samples = perGroupSamples(data, ColChannel)
	case strings.Contains(q, "brand"):
		samples = perGroupSamples(data, ColBrand)
	default:
		samples = head(data, generalSampleCount)
	}

	if len(samples) > contextSampleCap {
		samples = samples[:contextSampleCap]
	}
	return samples
}

// perGroupSamples takes up to two records from each distinct group value,
// concatenated in group-discovery order.
func perGroupSamples(data Dataset, column string) []Record {
	var samples []Record
	for _, g := range GroupBy(data, column) {
		samples = append(samples, head(g.Records, perGroupSampleCount)...)
	}
	return samples
}

func head(records []Record, n int) []Record {
	if n > len(records) {
		n = len(records)
	}
	return records[:n:n]
}
