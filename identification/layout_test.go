package identification

import (
	"testing"

	"github.com/YuminosukeSato/structid/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutColumnCounts(t *testing.T) {
	tests := []struct {
		name       string
		groupSizes []int
		degrees    []int
		columns    int
		variables  int
	}{
		{name: "single group single variable", groupSizes: []int{1}, degrees: []int{4}, columns: 4, variables: 1},
		{name: "two groups one variable each", groupSizes: []int{1, 1}, degrees: []int{2, 2}, columns: 4, variables: 2},
		{name: "ragged groups", groupSizes: []int{2, 1, 3}, degrees: []int{3, 1, 2}, columns: 2*3 + 1*1 + 3*2, variables: 6},
		{name: "wide group", groupSizes: []int{5, 2}, degrees: []int{1, 4}, columns: 5 + 8, variables: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLayout(tt.groupSizes, tt.degrees)
			require.NoError(t, err)
			assert.Equal(t, tt.columns, l.Columns())
			assert.Equal(t, tt.variables, l.Variables())
			assert.Equal(t, len(tt.groupSizes), l.Groups())
			assert.Len(t, l.VarColumnOffsets, tt.variables+1)
			assert.Equal(t, tt.columns, l.VarColumnOffsets[tt.variables])
		})
	}
}

func TestLayoutOffsets(t *testing.T) {
	l, err := NewLayout([]int{2, 1}, []int{3, 2})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2, 3}, l.VariableOffsets)
	assert.Equal(t, []int{0, 6, 8}, l.ColumnOffsets)
	assert.Equal(t, []int{0, 3, 6, 8}, l.VarColumnOffsets)
	assert.Equal(t, []int{3, 3, 2}, l.VarDegree)
	assert.Equal(t, []int{0, 0, 1}, l.VarGroup)

	start, end := l.GroupColumns(1)
	assert.Equal(t, 6, start)
	assert.Equal(t, 8, end)

	start, end = l.GroupVariables(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)

	g, j := l.variable(1)
	assert.Equal(t, 0, g)
	assert.Equal(t, 1, j)
}

func TestLayoutValidation(t *testing.T) {
	_, err := NewLayout([]int{1, 2}, []int{2})
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	_, err = NewLayout([]int{1}, []int{0})
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))

	_, err = NewLayout([]int{0}, []int{2})
	assert.Error(t, err)

	_, err = NewLayout(nil, nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}
