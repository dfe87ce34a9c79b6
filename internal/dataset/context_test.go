package dataset

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextFixture(channels, perChannel int) Dataset {
	var data Dataset
	schema := DefaultSchema()
	for c := 0; c < channels; c++ {
		for i := 0; i < perChannel; i++ {
			data = append(data, NormalizeRow(schema, map[string]string{
				ColChannel:      fmt.Sprintf("Channel-%d", c),
				ColCampaignName: fmt.Sprintf("Campaign-%d-%d", c, i),
			}))
		}
	}
	return data
}

func TestSelectContextChannelQuestion(t *testing.T) {
	data := contextFixture(3, 5)

	samples := SelectContext("which channel should get more spend?", data)
	require.Len(t, samples, 6, "two samples per channel")
	assert.Equal(t, "Channel-0", samples[0].Text(ColChannel))
	assert.Equal(t, "Channel-0", samples[1].Text(ColChannel))
	assert.Equal(t, "Channel-1", samples[2].Text(ColChannel))
	assert.Equal(t, "Channel-2", samples[4].Text(ColChannel))
}

func TestSelectContextCapped(t *testing.T) {
	// 15 channels at 2 samples each would be 30 without the cap.
	data := contextFixture(15, 3)
	samples := SelectContext("compare every channel", data)
	assert.Len(t, samples, contextSampleCap)
}

func TestSelectContextCampaignQuestion(t *testing.T) {
	data := contextFixture(1, 30)
	samples := SelectContext("show me the top campaigns", data)
	require.Len(t, samples, rankedSampleCount)
	assert.Equal(t, "Campaign-0-0", samples[0].Text(ColCampaignName))
}

func TestSelectContextDefault(t *testing.T) {
	data := contextFixture(1, 30)
	samples := SelectContext("how is performance trending?", data)
	assert.Len(t, samples, generalSampleCount)
}

func TestSelectContextSmallDataset(t *testing.T) {
	data := contextFixture(1, 2)
	assert.Len(t, SelectContext("anything", data), 2)
	assert.Empty(t, SelectContext("anything", Dataset{}))
}

func TestSelectContextBrandQuestion(t *testing.T) {
	schema := DefaultSchema()
	data := Dataset{
		NormalizeRow(schema, map[string]string{ColBrand: "Brand X"}),
		NormalizeRow(schema, map[string]string{ColBrand: "Brand X"}),
		NormalizeRow(schema, map[string]string{ColBrand: "Brand X"}),
		NormalizeRow(schema, map[string]string{ColBrand: "Brand Y"}),
	}
	samples := SelectContext("how do my brands compare?", data)
	require.Len(t, samples, 3)
	assert.Equal(t, "Brand Y", samples[2].Text(ColBrand))
}
