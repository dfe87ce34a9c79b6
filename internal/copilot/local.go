package copilot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KingVikasIndoria/vervewell-marketing-dashboard/internal/dataset"
)

// LocalAnswer is the result of the deterministic question-answering path.
// Matched=false means no known intent fired and the caller must escalate.
type LocalAnswer struct {
	Matched bool
	Reply   string
}

// TryLocalAnswer pattern-matches the question against known intents and
// computes an answer directly from the dataset, bypassing the LLM entirely.
// Intents are independent substring checks on the lowercased question,
// evaluated in a fixed priority order; the first satisfied intent wins.
// An empty dataset never matches.
func TryLocalAnswer(data dataset.Dataset, question string) LocalAnswer {
	q := strings.ToLower(question)
	if len(data) == 0 {
		return LocalAnswer{}
	}

	asksCTR := containsAny(q, []string{"ctr", "click-through", "click through"})
	asksRoAS := containsAny(q, []string{"roas", "roi"})
	asksAverage := containsAny(q, []string{"average", "avg"})
	asksBest := containsAny(q, []string{"best", "top"})
	asksChannel := containsAny(q, []string{"channel", "platform", "social"})

	switch {
	case asksAverage && (asksCTR || asksRoAS):
		return averagesAnswer(data)
	case asksChannel && (asksCTR || asksRoAS) && (asksBest || strings.Contains(q, "which")):
		if asksCTR {
			return bestChannelAnswer(data, dataset.ColCTR, "CTR", "%")
		}
		return bestChannelAnswer(data, dataset.ColRoAS, "RoAS", "x")
	case asksChannel && containsAny(q, []string{"performance", "summary"}):
		return channelSummaryAnswer(data)
	}

	return LocalAnswer{}
}

func averagesAnswer(data dataset.Dataset) LocalAnswer {
	avgCTR := dataset.Average(data.Column(dataset.ColCTR))
	avgRoAS := dataset.Average(data.Column(dataset.ColRoAS))
	reply := fmt.Sprintf("Averages across %d rows:\n- CTR: %.2f%%\n- RoAS: %.2fx",
		len(data), avgCTR, avgRoAS)
	return LocalAnswer{Matched: true, Reply: reply}
}

func bestChannelAnswer(data dataset.Dataset, column, label, suffix string) LocalAnswer {
	ranking := RankChannels(data, column)
	if len(ranking) == 0 {
		return LocalAnswer{Matched: true, Reply: fmt.Sprintf("No %s data available in the CSV.", label)}
	}
	top := ranking[0]
	table := renderRankingTable(headRanks(ranking, 5), suffix)
	reply := fmt.Sprintf("Best channel for %s: %s with %.2f%s.\n\nTop channels by average %s:\n%s",
		label, top.Channel, top.Value, suffix, label, table)
	return LocalAnswer{Matched: true, Reply: reply}
}

func channelSummaryAnswer(data dataset.Dataset) LocalAnswer {
	ctrTable := renderRankingTable(headRanks(RankChannels(data, dataset.ColCTR), 5), "%")
	roasTable := renderRankingTable(headRanks(RankChannels(data, dataset.ColRoAS), 5), "x")
	reply := fmt.Sprintf("Channel performance summary (top 5):\n\nCTR (avg):\n%s\n\nRoAS (avg):\n%s",
		ctrTable, roasTable)
	return LocalAnswer{Matched: true, Reply: reply}
}

// ChannelRank is one channel's position in a metric ranking.
type ChannelRank struct {
	Channel string
	Value   float64
	Samples int
}

// RankChannels groups rows by Channel ("Unknown" when absent), averages the
// given column over each channel's parseable values, and sorts descending.
// Channels with no usable values are dropped. The sort is stable, so equal
// averages keep channel-discovery order.
func RankChannels(data dataset.Dataset, column string) []ChannelRank {
	var ranking []ChannelRank
	for _, g := range dataset.GroupBy(data, dataset.ColChannel) {
		var sum float64
		var n int
		for _, rec := range g.Records {
			if v, ok := rec.Number(column); ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			continue
		}
		ranking = append(ranking, ChannelRank{Channel: g.Key, Value: sum / float64(n), Samples: n})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Value > ranking[j].Value
	})
	return ranking
}

func renderRankingTable(rows []ChannelRank, suffix string) string {
	if len(rows) == 0 {
		return "No data."
	}
	var sb strings.Builder
	for i, r := range rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%d. %s: %.2f%s (n=%d)", i+1, r.Channel, r.Value, suffix, r.Samples))
	}
	return sb.String()
}

func headRanks(ranks []ChannelRank, n int) []ChannelRank {
	if n > len(ranks) {
		n = len(ranks)
	}
	return ranks[:n]
}

// BuildGeneralOverview renders the deterministic dataset overview used as
// the always-available fallback reply: dataset-wide averages plus top-3
// channel rankings by CTR and RoAS. Defined for any dataset, including an
// empty one.
func BuildGeneralOverview(data dataset.Dataset) string {
	avgCTR := dataset.Average(data.Column(dataset.ColCTR))
	avgRoAS := dataset.Average(data.Column(dataset.ColRoAS))
	topCTR := headRanks(RankChannels(data, dataset.ColCTR), 3)
	topRoAS := headRanks(RankChannels(data, dataset.ColRoAS), 3)
	return strings.Join([]string{
		fmt.Sprintf("Averages across %d rows: CTR %.2f%%, RoAS %.2fx", len(data), avgCTR, avgRoAS),
		"",
		"Top channels by CTR:",
		renderRankingTable(topCTR, "%"),
		"",
		"Top channels by RoAS:",
		renderRankingTable(topRoAS, "x"),
	}, "\n")
}

func containsAny(s string, substrs []string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
