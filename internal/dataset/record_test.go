package dataset

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMarshalJSON(t *testing.T) {
	rec := NormalizeRow(DefaultSchema(), map[string]string{
		ColChannel: "Instagram",
		ColCTR:     "4.2%",
	})

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Channel":"Instagram","CTR (%)":4.2}`, string(out))
}

func TestDatasetColumn(t *testing.T) {
	schema := DefaultSchema()
	data := Dataset{
		NormalizeRow(schema, map[string]string{ColRoAS: "2x"}),
		NormalizeRow(schema, map[string]string{ColChannel: "YouTube"}),
	}

	values := data.Column(ColRoAS)
	require.Len(t, values, 2)
	assert.True(t, values[0].Numeric)
	assert.False(t, values[1].Numeric, "absent field yields zero Value")
}
