package dataset

// Column names as they appear in the campaign CSV header. The header is
// free-form, but these are the columns the aggregation layer reads by name.
const (
	ColBrand        = "Brand"
	ColChannel      = "Channel"
	ColRegion       = "Region"
	ColCampaignName = "Campaign_Name"
	ColDemographics = "Demographics"
	ColAgentStatus  = "Agent_Status"
	ColDate         = "Date"

	ColCTR               = "CTR (%)"
	ColCPC               = "CPC (₹)"
	ColRoAS              = "RoAS"
	ColReach             = "Reach"
	ColFrequency         = "Frequency (x)"
	ColConversion        = "Conversion"
	ColConversionRate    = "Conversion Rate (%)"
	ColEngagementRate    = "Engagement Rate (%)"
	ColMediaSpend        = "Media_Spend (₹)"
	ColAgentAutomated    = "Agent_Automated (%)"
	ColAvgResponseTime   = "Avg_Response_Time (mins)"
	ColAutoOptimizations = "Auto_Optimizations_Today"
)

// AgentStatusAutomated is the Agent_Status value marking a campaign managed
// by the automated optimization agent (vs. "Manual").
const AgentStatusAutomated = "Agent"

// numericColumns is the fixed set of columns carrying decorated numeric
// values (percent signs, rupee symbols, thousands separators, an "x"
// multiplier suffix). Normalization strips the decorations and parses the
// remainder as a float; columns not listed here always stay strings.
var numericColumns = []string{
	ColCTR,
	ColCPC,
	ColRoAS,
	ColReach,
	ColFrequency,
	ColConversion,
	"CPA (₹)",
	ColConversionRate,
	ColEngagementRate,
	"Campaign_Launch_Time (days)",
	"AB_Test_Completion (days)",
	"Creative_Refresh_Time (days)",
	"Budget_Reallocation_Time (hrs)",
	"Optimization_Response_Time (mins)",
	"Personalization_Deployment_Time (hrs)",
	"Business_Impact (₹/%)",
	"Pre_Agent_Value",
	"Post_Agent_Value",
	"Improvement (%)",
	"Industry_Avg",
	"Vs_Industry (%)",
	ColAgentAutomated,
	ColAutoOptimizations,
	ColAvgResponseTime,
	"Competitor_Share_of_Voice (%)",
	"Sentiment_Score (-1 to +1)",
	ColMediaSpend,
	"Cost_Per_Engagement (₹)",
	"Add_to_Cart (%)",
	"Bounce_Rate (%)",
	"Brand_Awareness_Lift (%)",
	"Net_Promoter_Score (NPS)",
	"Forecasted_Conversions (7d)",
	"Forecasted_RoAS (7d)",
}

// Schema maps CSV column names to their normalization rule. It is built once
// at load time; lookups replace re-scanning the column list per row.
type Schema struct {
	numeric map[string]bool
}

// DefaultSchema returns the schema for the campaign CSV layout.
func DefaultSchema() *Schema {
	s := &Schema{numeric: make(map[string]bool, len(numericColumns))}
	for _, col := range numericColumns {
		s.numeric[col] = true
	}
	return s
}

// IsNumeric reports whether the named column holds a decorated numeric value.
func (s *Schema) IsNumeric(column string) bool {
	return s.numeric[column]
}

// NumericColumns returns the declared numeric column names.
func (s *Schema) NumericColumns() []string {
	out := make([]string, len(numericColumns))
	copy(out, numericColumns)
	return out
}
