package identification

import (
	"testing"

	"github.com/YuminosukeSato/structid/linear"
	"github.com/YuminosukeSato/structid/pkg/errors"
	"github.com/YuminosukeSato/structid/polynomial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// tagEval encodes (degree, x) into one number so column placement can be read back.
var tagEval = polynomial.EvaluatorFunc(func(p int, x float64) float64 {
	return 100*float64(p) + x
})

func TestBuildBasisColumnOrder(t *testing.T) {
	layout, err := NewLayout([]int{2, 1}, []int{2, 3})
	require.NoError(t, err)

	inputs := [][][]float64{
		{{1, 2}, {3, 4}},
		{{5, 6}},
	}
	basis, err := BuildBasis(inputs, layout, tagEval)
	require.NoError(t, err)

	r, c := basis.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 7, c)

	// グループ → 変数 → 次数 の順
	assert.Equal(t, []float64{1, 101, 3, 103, 5, 105, 205}, mat.Row(nil, 0, basis))
	assert.Equal(t, []float64{2, 102, 4, 104, 6, 106, 206}, mat.Row(nil, 1, basis))
}

func TestBuildBasisChebyshev(t *testing.T) {
	layout, err := NewLayout([]int{1}, []int{3})
	require.NoError(t, err)

	basis, err := BuildBasis([][][]float64{{{0, 0.5, 1}}}, layout, polynomial.Chebyshev)
	require.NoError(t, err)

	// T*0 = 1, T*1 = 2x-1, T*2 = 8x²-8x+1
	want := mat.NewDense(3, 3, []float64{
		1, -1, 1,
		1, 0, -1,
		1, 1, 1,
	})
	assert.True(t, mat.EqualApprox(want, basis, 1e-12))
}

func TestBuildBasisShapeErrors(t *testing.T) {
	layout, err := NewLayout([]int{1, 1}, []int{2, 2})
	require.NoError(t, err)

	_, err = BuildBasis([][][]float64{{{0, 1}}}, layout, tagEval)
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	_, err = BuildBasis([][][]float64{{{0, 1}}, {{0, 1, 2}}}, layout, tagEval)
	assert.True(t, errors.As(err, &dimErr))
}

func TestBuildPsiSumsVariableBlocks(t *testing.T) {
	layout, err := NewLayout([]int{2, 1}, []int{2, 1})
	require.NoError(t, err)

	basis := mat.NewDense(2, 5, []float64{
		1, 2, 3, 4, 5,
		6, 7, 8, 9, 10,
	})
	lambda := []float64{1, 10, 0.5, 2, -1}

	psi, err := BuildPsi(basis, lambda, layout)
	require.NoError(t, err)

	want := mat.NewDense(2, 3, []float64{
		1 + 20, 1.5 + 8, -5,
		6 + 70, 4 + 18, -10,
	})
	assert.True(t, mat.EqualApprox(want, psi, 1e-12))

	_, err = BuildPsi(basis, lambda[:4], layout)
	assert.Error(t, err)
}

func TestPartialFitsAndCombine(t *testing.T) {
	layout, err := NewLayout([]int{2, 1}, []int{1, 1})
	require.NoError(t, err)

	psi := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	a := [][]float64{{1, -1}, {2}}

	fi, err := PartialFits(psi, a, layout)
	require.NoError(t, err)
	want := mat.NewDense(2, 2, []float64{
		-1, 6,
		-1, 12,
	})
	assert.True(t, mat.EqualApprox(want, fi, 1e-12))

	f, err := Combine(fi, []float64{1, 0.5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 5}, f, 1e-12)

	_, err = PartialFits(psi, [][]float64{{1}, {2}}, layout)
	assert.Error(t, err)
	_, err = Combine(fi, []float64{1})
	assert.Error(t, err)
}

func TestSplitLambdaLength(t *testing.T) {
	layout, err := NewLayout([]int{2, 1}, []int{2, 3})
	require.NoError(t, err)

	inputs := [][][]float64{
		{{0, 0.1, 0.3, 0.2, 0.9, 1, 0.5, 0.7}, {1, 0.8, 0.2, 0, 0.4, 0.6, 0.3, 0.5}},
		{{0.5, 0, 1, 0.25, 0.75, 0.6, 0.1, 0.9}},
	}
	basis, err := BuildBasis(inputs, layout, polynomial.Legendre)
	require.NoError(t, err)

	target := []float64{0, 0.2, 0.5, 0.3, 1, 0.9, 0.4, 0.6}
	solver, err := linear.NewSolver(linear.MethodDefault, 1e-10)
	require.NoError(t, err)

	joint, err := SolveLambda(basis, target, layout, solver, false)
	require.NoError(t, err)
	split, err := SolveLambda(basis, target, layout, solver, true)
	require.NoError(t, err)

	assert.Len(t, joint, layout.Columns())
	assert.Len(t, split, len(joint))

	// 分割解の各ブロックはそのグループ単独の最小二乗解
	start, end := layout.GroupColumns(1)
	sub, err := solver.Solve(basis.Slice(0, 8, start, end), target)
	require.NoError(t, err)
	assert.InDeltaSlice(t, sub, split[start:end], 1e-12)
}

func TestSolveASmallAndCSmallExact(t *testing.T) {
	layout, err := NewLayout([]int{1, 2}, []int{1, 1})
	require.NoError(t, err)

	psi := mat.NewDense(4, 3, []float64{
		1, 0, 1,
		2, 1, 0,
		3, 0, 2,
		4, 1, 1,
	})
	y := []float64{2, 4, 6, 8} // = 2·psi[:,0]
	solver, err := linear.NewSolver(linear.MethodDefault, 1e-12)
	require.NoError(t, err)

	a, err := SolveASmall(psi, y, layout, solver)
	require.NoError(t, err)
	require.Len(t, a, 2)
	assert.InDeltaSlice(t, []float64{2}, a[0], 1e-12)
	assert.Len(t, a[1], 2)

	fi, err := PartialFits(psi, a, layout)
	require.NoError(t, err)
	c, err := SolveCSmall(fi, y, solver)
	require.NoError(t, err)
	f, err := Combine(fi, c)
	require.NoError(t, err)
	assert.InDeltaSlice(t, y, f, 1e-9)
}

func TestDenormalizeLikeUsesOriginalRange(t *testing.T) {
	got, err := DenormalizeLike([]float64{0, 0.5, 1}, []float64{10, 30, 20})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{10, 20, 30}, got, 1e-12)

	_, err = DenormalizeLike([]float64{0}, []float64{1, 2})
	assert.Error(t, err)
}
