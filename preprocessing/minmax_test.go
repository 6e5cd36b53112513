package preprocessing

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/structid/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	normed, scale, err := Normalize([]float64{2, 4, 6})
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{0, 0.5, 1}, normed, 1e-12)
	assert.Equal(t, Scale{Min: 2, Range: 4}, scale)
}

func TestNormalizeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    []float64
	}{
		{"increasing", []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"negative", []float64{-3.5, 10, -7.25, 0, 2}},
		{"two distinct values", []float64{5, 5, 5, 6}},
		{"large magnitude", []float64{1e9, -1e9, 3.14159e8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normed, scale, err := Normalize(tt.v)
			require.NoError(t, err)

			for _, x := range normed {
				assert.GreaterOrEqual(t, x, 0.0)
				assert.LessOrEqual(t, x, 1.0)
			}

			back := scale.DenormalizeVec(nil, normed)
			for i := range tt.v {
				assert.InDelta(t, tt.v[i], back[i], 1e-9*math.Max(1, math.Abs(tt.v[i])))
			}
		})
	}
}

func TestNormalizeConstantVector(t *testing.T) {
	_, _, err := Normalize([]float64{3, 3, 3})
	require.Error(t, err)

	var normErr *errors.NormalizationError
	require.True(t, errors.As(err, &normErr))
	assert.Equal(t, 3.0, normErr.Value)
}

func TestNormalizeRejectsNaN(t *testing.T) {
	_, _, err := Normalize([]float64{1, math.NaN(), 3})

	var numErr *errors.NumericalInstabilityError
	assert.True(t, errors.As(err, &numErr))
}

func TestNormalizeRows(t *testing.T) {
	rows := [][]float64{
		{0, 5, 10},
		{1, 3, 2},
	}
	normed, scales, err := NormalizeRows(rows)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{0, 0.5, 1}, normed[0], 1e-12)
	assert.InDeltaSlice(t, []float64{0, 1, 0.5}, normed[1], 1e-12)
	assert.Equal(t, Scale{Min: 1, Range: 2}, scales[1])

	_, _, err = NormalizeRows([][]float64{{1, 2, 3}, {1, 2}})
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestNormalizeGroupsIsPerVariable(t *testing.T) {
	groups := [][][]float64{
		{{0, 10, 20}, {100, 200, 300}},
		{{-1, 0, 1}},
	}
	normed, scales, err := NormalizeGroups(groups)
	require.NoError(t, err)

	// 同じグループ内でも変数ごとに独立して正規化される
	assert.InDeltaSlice(t, []float64{0, 0.5, 1}, normed[0][0], 1e-12)
	assert.InDeltaSlice(t, []float64{0, 0.5, 1}, normed[0][1], 1e-12)
	assert.Equal(t, Scale{Min: 100, Range: 200}, scales[0][1])
	assert.Equal(t, Scale{Min: -1, Range: 2}, scales[1][0])
}

func TestNormalizeGroupsReportsFlatIndex(t *testing.T) {
	groups := [][][]float64{
		{{0, 1}},
		{{2, 3}, {4, 4}},
	}
	_, _, err := NormalizeGroups(groups)

	var normErr *errors.NormalizationError
	require.True(t, errors.As(err, &normErr))
	assert.Equal(t, 2, normErr.Index)
}

func TestScaleTransformMatchesNormalize(t *testing.T) {
	v := []float64{3, 7, 11}
	normed, scale, err := Normalize(v)
	require.NoError(t, err)

	assert.InDeltaSlice(t, normed, scale.TransformVec(nil, v), 1e-12)
	assert.InDelta(t, 1.5, scale.Transform(15), 1e-12)
}
