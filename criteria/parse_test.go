package criteria

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "object", text: `{"type":"coat"}`},
		{name: "surrounding whitespace", text: "\n  {\"type\":\"coat\"}  \n"},
		{name: "truncated", text: `{"type":"coat"`, wantErr: true},
		{name: "array", text: `["coat"]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Parse(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				var perr *ParseError
				require.True(t, errors.As(err, &perr))
				assert.Equal(t, tt.text, perr.Raw)
				assert.Nil(t, raw)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "coat", raw["type"])
		})
	}
}

func TestParseAndNormalize(t *testing.T) {
	c, err := ParseAndNormalize(`{"type":"jeans","brands":"Levi's"}`)
	require.NoError(t, err)
	assert.Equal(t, "jeans", c.Type)
	assert.Equal(t, []string{"Levi's"}, c.Brands)
	assert.True(t, c.Occasion)

	_, err = ParseAndNormalize(`{oops}`)
	require.Error(t, err)
}

func TestFromRawRecord(t *testing.T) {
	no := false
	raw, err := FromRawRecord(&RawRecord{
		Type:       "dress",
		Budget:     []float64{20, 80},
		Materials:  []string{"linen"},
		SecondHand: &no,
	})
	require.NoError(t, err)

	c := Normalize(raw)
	assert.Equal(t, "dress", c.Type)
	assert.Equal(t, []float64{20, 80}, c.Budget)
	assert.Equal(t, []string{"linen"}, c.Material)
	assert.Equal(t, []string{}, c.Colors)
	assert.False(t, c.Occasion)

	raw, err = FromRawRecord(&RawRecord{Type: "shirt"})
	require.NoError(t, err)
	assert.True(t, Normalize(raw).Occasion)
}
