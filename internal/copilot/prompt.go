package copilot

import (
	"encoding/json"
	"strings"

	"github.com/KingVikasIndoria/vervewell-marketing-dashboard/internal/dataset"
)

// buildSystemPrompt composes the assistant persona with the full serialized
// dataset knowledge and the question-relevant record samples. The knowledge
// object is small (aggregates, not rows) so it ships whole; the samples are
// already capped by the context selector.
func buildSystemPrompt(knowledge dataset.Knowledge, samples []dataset.Record) string {
	knowledgeJSON, err := json.MarshalIndent(knowledge, "", "  ")
	if err != nil {
		knowledgeJSON = []byte("{}")
	}
	samplesJSON, err := json.MarshalIndent(samples, "", "  ")
	if err != nil {
		samplesJSON = []byte("[]")
	}

	return strings.Join([]string{
		"You are the Marketing Copilot for VerveWell Brand X.",
		"You have been trained on this comprehensive marketing dataset and can answer both:",
		"1. General marketing questions (What is RoAS? How to improve CTR?)",
		"2. Specific questions about this dataset (Which channel performs best? What are my top campaigns?)",
		"",
		"COMPREHENSIVE DATASET KNOWLEDGE:",
		string(knowledgeJSON),
		"",
		"RELEVANT SAMPLE DATA:",
		string(samplesJSON),
		"",
		"Instructions:",
		"- For general questions: Provide marketing expertise",
		"- For data questions: Use the specific metrics and insights from the dataset above",
		"- Always be helpful, concise, and reference actual numbers when discussing the dataset",
	}, "\n")
}
