package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatMarshalsNaNAsNull(t *testing.T) {
	b, err := json.Marshal(struct {
		A Float `json:"a"`
		B Float `json:"b"`
		C Float `json:"c"`
	}{A: 1.5, B: Float(math.NaN()), C: Float(math.Inf(1))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1.5,"b":null,"c":null}`, string(b))
}

func TestFloatUnmarshalsNullAsNaN(t *testing.T) {
	var v struct {
		A Float `json:"a"`
		B Float `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":2.25,"b":null}`), &v))
	assert.Equal(t, Float(2.25), v.A)
	assert.True(t, math.IsNaN(float64(v.B)))
}

func TestFloatsRoundTrip(t *testing.T) {
	in := Floats{1, math.NaN(), 0.5, math.Inf(-1)}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, `[1,null,0.5,null]`, string(b))

	var out Floats
	require.NoError(t, json.Unmarshal(b, &out))
	require.Len(t, out, 4)
	assert.Equal(t, 1.0, out[0])
	assert.True(t, math.IsNaN(out[1]))
	assert.Equal(t, 0.5, out[2])
	assert.True(t, math.IsNaN(out[3]))
}

func TestFloatsNil(t *testing.T) {
	b, err := json.Marshal(Floats(nil))
	require.NoError(t, err)
	assert.Equal(t, `null`, string(b))

	var out Floats
	require.NoError(t, json.Unmarshal([]byte(`null`), &out))
	assert.Nil(t, out)
}
