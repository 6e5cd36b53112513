package plotting

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/structid/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFitPlotSVG(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFitPlot(&buf, "svg", []float64{0, 1, 4, 9}, []float64{0.1, 1.1, 3.9, 9.2}, "Y1")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<svg")
}

func TestWriteFitPlotPNG(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFitPlot(&buf, "png", []float64{1, 2, 3}, []float64{1, 2, 3}, "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestFitPlotValidation(t *testing.T) {
	_, err := FitPlot([]float64{1, 2}, []float64{1}, "bad")
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	_, err = FitPlot(nil, nil, "empty")
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	err = WriteFitPlot(&bytes.Buffer{}, "bogus", []float64{1, 2}, []float64{1, 2}, "")
	assert.Error(t, err)
}

func TestSaveFitPlots(t *testing.T) {
	dir := t.TempDir()
	paths, err := SaveFitPlots(dir, [][]float64{{1, 2, 3}, {3, 2, 1}}, [][]float64{{1, 2, 3}, {3, 2, 1}})
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "y2.png"), paths[1])

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}
