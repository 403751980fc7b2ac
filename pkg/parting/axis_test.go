package parting

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestAxisTable(t *testing.T) {
	tests := []struct {
		axis   Axis
		name   string
		normal r3.Vec
		rank   int
	}{
		{XY, "XY", r3.Vec{Z: 1}, 0},
		{XZ, "XZ", r3.Vec{Y: 1}, 1},
		{YZ, "YZ", r3.Vec{X: 1}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.axis.Valid())
			assert.Equal(t, tt.name, tt.axis.String())
			assert.Equal(t, tt.normal, tt.axis.Normal())
			assert.Equal(t, tt.rank, tt.axis.Rank())
			assert.Equal(t, tt.axis, Axes[tt.rank])
		})
	}
}

func TestAxisInvalid(t *testing.T) {
	assert.False(t, Axis(3).Valid())
	assert.False(t, Axis(-1).Valid())
	assert.Equal(t, "Axis(7)", Axis(7).String())

	_, err := Axis(5).MarshalText()
	assert.Error(t, err)
}

func TestParseAxis(t *testing.T) {
	for input, expected := range map[string]Axis{"xy": XY, "XZ": XZ, "yZ": YZ} {
		a, err := ParseAxis(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, a, input)
	}

	_, err := ParseAxis("ZX")
	assert.Error(t, err)
}

func TestAxisJSON(t *testing.T) {
	type doc struct {
		Plane Axis `json:"plane"`
	}

	data, err := json.Marshal(doc{Plane: YZ})
	require.NoError(t, err)
	assert.JSONEq(t, `{"plane":"YZ"}`, string(data))

	var decoded doc
	require.NoError(t, json.Unmarshal([]byte(`{"plane":"xz"}`), &decoded))
	assert.Equal(t, XZ, decoded.Plane)

	assert.Error(t, json.Unmarshal([]byte(`{"plane":"up"}`), &decoded))
}
