package metrics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KingVikasIndoria/vervewell-marketing-dashboard/internal/dataset"
)

func row(raw map[string]string) dataset.Record {
	return dataset.NormalizeRow(dataset.DefaultSchema(), raw)
}

func metricsFixture() dataset.Knowledge {
	data := dataset.Dataset{
		row(map[string]string{
			dataset.ColCampaignName: "Festive Push", dataset.ColChannel: "Instagram",
			dataset.ColRegion: "Mumbai", dataset.ColDemographics: "Gen Z",
			dataset.ColCTR: "4.0%", dataset.ColRoAS: "5.0x", dataset.ColCPC: "₹12.00",
			dataset.ColConversion: "300", dataset.ColMediaSpend: "₹30,000",
			dataset.ColAgentStatus: "Agent", dataset.ColAgentAutomated: "80%",
		}),
		row(map[string]string{
			dataset.ColCampaignName: "Summer Sale", dataset.ColChannel: "YouTube",
			dataset.ColRegion: "Delhi NCR", dataset.ColDemographics: "Millennials",
			dataset.ColCTR: "2.0%", dataset.ColRoAS: "3.0x", dataset.ColCPC: "₹18.00",
			dataset.ColConversion: "100", dataset.ColMediaSpend: "₹10,000",
			dataset.ColAgentStatus: "Manual", dataset.ColAgentAutomated: "20%",
		}),
	}
	return dataset.BuildKnowledge(data)
}

func fixedNow() time.Time {
	return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func TestBuildKPIs(t *testing.T) {
	f := NewFormatter(rand.New(rand.NewSource(1)))
	summary := f.Build(metricsFixture(), fixedNow())

	assert.Equal(t, "3.0", summary.KPIs.CTR)
	assert.Equal(t, "4.0", summary.KPIs.RoAS)
	// 40000 spend / 400 conversions
	assert.Equal(t, "100.00", summary.KPIs.CPC)
	assert.Equal(t, "40.0K", summary.KPIs.Reach)
	assert.Equal(t, 50, summary.KPIs.AgentAutomated)

	assert.Equal(t, 400, summary.Executive.MarketingROI)
	assert.Equal(t, 6000, summary.Executive.CustomerAcquisitionCost)
}

func TestBuildDefaultsOnEmptyKnowledge(t *testing.T) {
	f := NewFormatter(rand.New(rand.NewSource(1)))
	summary := f.Build(dataset.BuildKnowledge(dataset.Dataset{}), fixedNow())

	assert.Equal(t, "2.1", summary.KPIs.CTR)
	assert.Equal(t, "3.8", summary.KPIs.RoAS)
	assert.Equal(t, "187.50", summary.KPIs.CPC)
	assert.Equal(t, 65, summary.KPIs.AgentAutomated)
	assert.Empty(t, summary.ChannelData)
	assert.Empty(t, summary.Campaigns)
}

func TestChannelRowsOrder(t *testing.T) {
	f := NewFormatter(rand.New(rand.NewSource(1)))
	summary := f.Build(metricsFixture(), fixedNow())

	require.Len(t, summary.ChannelData, 2)
	assert.Equal(t, "Instagram", summary.ChannelData[0].Name)
	assert.Equal(t, "YouTube", summary.ChannelData[1].Name)
	assert.Equal(t, "5.0", summary.ChannelData[0].RoAS)
	assert.InDelta(t, 30000, summary.ChannelData[0].Amount, 1e-9)
	assert.Equal(t, "100.00", summary.ChannelData[0].CPC)
}

func TestRegionalRows(t *testing.T) {
	f := NewFormatter(rand.New(rand.NewSource(1)))
	summary := f.Build(metricsFixture(), fixedNow())

	require.Len(t, summary.RegionalData, 2)
	mumbai := summary.RegionalData[0]
	assert.Equal(t, "Mumbai", mumbai.Name)
	assert.Equal(t, 75, mumbai.Value)
	assert.Equal(t, "Tier-1", mumbai.Tier)
	assert.Equal(t, "Tier-1", summary.RegionalData[1].Tier)
}

func TestRegionTier(t *testing.T) {
	assert.Equal(t, "Tier-1", regionTier("Mumbai"))
	assert.Equal(t, "Tier-1", regionTier("Delhi NCR"))
	assert.Equal(t, "Tier-2", regionTier("Jaipur"))
}

func TestCampaignRows(t *testing.T) {
	f := NewFormatter(rand.New(rand.NewSource(1)))
	summary := f.Build(metricsFixture(), fixedNow())

	require.Len(t, summary.Campaigns, 2)
	top := summary.Campaigns[0]
	assert.Equal(t, "Festive Push", top.Campaign)
	assert.Equal(t, "4.0%", top.CTR)
	assert.Equal(t, "₹5.0", top.RoAS)
	assert.True(t, top.AgentOptimized)
	assert.False(t, summary.Campaigns[1].AgentOptimized)
}

func TestTrendPoints(t *testing.T) {
	f := NewFormatter(rand.New(rand.NewSource(42)))
	summary := f.Build(metricsFixture(), fixedNow())

	require.Len(t, summary.Performance, 7)
	assert.Equal(t, "2025-03-04", summary.Performance[0].Date)
	assert.Equal(t, "2025-03-10", summary.Performance[6].Date)
	for _, p := range summary.Performance {
		assert.InDelta(t, 3.0*1.1, p.Agent, 3.0*0.2+1e-9)
		assert.Greater(t, p.Traditional, 0.0)
		assert.Greater(t, p.Industry, 0.0)
	}
}

func TestTrendPointsSeededDeterminism(t *testing.T) {
	a := NewFormatter(rand.New(rand.NewSource(7))).Build(metricsFixture(), fixedNow())
	b := NewFormatter(rand.New(rand.NewSource(7))).Build(metricsFixture(), fixedNow())
	assert.Equal(t, a, b)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-5, "0"},
		{500, "500"},
		{1500, "1.5K"},
		{2500000, "2.5M"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.in))
	}
}
