package identification

import (
	"fmt"

	"github.com/YuminosukeSato/structid/pkg/errors"
)

// Layout holds the block boundaries of the basis and psi matrices. It is
// computed once from the group widths and Degrees, and every stage slices
// columns through it.
//
// Basis columns are ordered group-major, variable-major, degree-minor. Psi
// columns are ordered group-major, variable-minor.
type Layout struct {
	GroupSizes []int // variables per group
	Degrees    []int // polynomial degree budget per group

	VariableOffsets  []int // psi column start per group, len G+1
	ColumnOffsets    []int // basis column start per group, len G+1
	VarGroup         []int // owning group per flattened variable
	VarDegree        []int // degree per flattened variable
	VarColumnOffsets []int // basis column start per flattened variable, len V+1
}

// NewLayout validates groupSizes and degrees and builds the offset tables.
func NewLayout(groupSizes, degrees []int) (*Layout, error) {
	if len(groupSizes) == 0 {
		return nil, errors.NewModelError("NewLayout", "empty data", errors.ErrEmptyData)
	}
	if len(degrees) != len(groupSizes) {
		return nil, errors.NewDimensionError("NewLayout", len(groupSizes), len(degrees), 1)
	}

	l := &Layout{
		GroupSizes:       append([]int(nil), groupSizes...),
		Degrees:          append([]int(nil), degrees...),
		VariableOffsets:  make([]int, len(groupSizes)+1),
		ColumnOffsets:    make([]int, len(groupSizes)+1),
		VarColumnOffsets: []int{0},
	}
	for g, size := range groupSizes {
		if size < 1 {
			return nil, errors.NewValueError("NewLayout", fmt.Sprintf("group %d has no variables", g))
		}
		if degrees[g] < 1 {
			return nil, errors.NewValidationError(fmt.Sprintf("degrees[%d]", g), "must be at least 1", degrees[g])
		}
		l.VariableOffsets[g+1] = l.VariableOffsets[g] + size
		l.ColumnOffsets[g+1] = l.ColumnOffsets[g] + size*degrees[g]
		for j := 0; j < size; j++ {
			l.VarGroup = append(l.VarGroup, g)
			l.VarDegree = append(l.VarDegree, degrees[g])
			last := l.VarColumnOffsets[len(l.VarColumnOffsets)-1]
			l.VarColumnOffsets = append(l.VarColumnOffsets, last+degrees[g])
		}
	}
	return l, nil
}

// Groups returns the number of input groups.
func (l *Layout) Groups() int { return len(l.GroupSizes) }

// Variables returns the number of input variables over all groups.
func (l *Layout) Variables() int { return l.VariableOffsets[len(l.VariableOffsets)-1] }

// Columns returns the basis column count Σ size_i·degree_i.
func (l *Layout) Columns() int { return l.ColumnOffsets[len(l.ColumnOffsets)-1] }

// GroupColumns returns the half-open basis column range of group g.
func (l *Layout) GroupColumns(g int) (start, end int) {
	return l.ColumnOffsets[g], l.ColumnOffsets[g+1]
}

// GroupVariables returns the half-open psi column range of group g.
func (l *Layout) GroupVariables(g int) (start, end int) {
	return l.VariableOffsets[g], l.VariableOffsets[g+1]
}

// VariableColumns returns the half-open basis column range of flattened
// variable v.
func (l *Layout) VariableColumns(v int) (start, end int) {
	return l.VarColumnOffsets[v], l.VarColumnOffsets[v+1]
}

// variable maps a flattened variable index to its (group, index-in-group).
func (l *Layout) variable(v int) (g, j int) {
	g = l.VarGroup[v]
	return g, v - l.VariableOffsets[g]
}
