package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want any
	}{
		{"empty", "", nil},
		{"dash", "-", nil},
		{"na upper", "N/A", nil},
		{"na lower", "n/a", nil},
		{"bare number", "1234", float64(1234)},
		{"number with commas", "27,450", float64(27450)},
		{"unit suffix", "1,234 Units", float64(1234)},
		{"single unit", "1 Unit", float64(1)},
		{"sf suffix", "850 SF", float64(850)},
		{"spaces suffix", "42 spaces", float64(42)},
		{"decimal preserved", "12.5", 12.5},
		{"currency", "$27,450,000", float64(27450000)},
		{"currency embedded", "$27,450,000 (asking price)", float64(27450000)},
		{"currency with cents", "$1,250.50", 1250.50},
		{"percentage", "12.5%", 0.125},
		{"whole percentage", "95%", 0.95},
		{"month year", "Mar 2021", "2021-03-01"},
		{"month year full", "March 2021", "2021-03-01"},
		{"plain text", "plain text", "plain text"},
		{"trimmed passthrough", "  Lakeview Apartments  ", "Lakeview Apartments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Value(tt.in))
		})
	}
}

// Currency beats the bare-number reading when both could apply, and the
// unit-number reading beats a degenerate currency tail.
func TestValuePrecedence(t *testing.T) {
	assert.Equal(t, float64(500), Value("$500 units"))
	assert.Equal(t, float64(500), Value("500 units"))
	assert.Equal(t, 0.125, Value("12.5%"))
}

func TestNumber(t *testing.T) {
	f, ok := Number("1,234 Units")
	assert.True(t, ok)
	assert.Equal(t, float64(1234), f)

	_, ok = Number("not a number")
	assert.False(t, ok)
}
