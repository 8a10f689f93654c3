package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propdoc/propdoc/internal/common"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[string]any
	}{
		{"plain object", `{"a": 1}`, map[string]any{"a": float64(1)}},
		{"fenced", "```json\n{\"a\": 1}\n```", map[string]any{"a": float64(1)}},
		{"bare fence", "```\n{\"a\": 1}\n```", map[string]any{"a": float64(1)}},
		{"framing text", `Here is the data: {"a": 1} hope that helps`, map[string]any{"a": float64(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSONObjectFailures(t *testing.T) {
	for _, in := range []string{"", "no json here", `["array", "not", "object"]`, `{"broken":`} {
		_, err := ExtractJSONObject(in)
		require.Error(t, err, "input %q", in)
		assert.True(t, errors.Is(err, common.ErrOracleParse))
	}
}

func TestChunkSchema(t *testing.T) {
	schema := BuildChunkSchema()

	assert.NoError(t, ValidateJSONAgainstSchema(schema,
		[]byte(`{"asking_price": 27450000, "name": "Lakeview", "amenities": ["pool", "gym"]}`)))

	assert.Error(t, ValidateJSONAgainstSchema(schema,
		[]byte(`{"nested": {"not": "allowed"}}`)))
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`[1, 2]`)))
}
