package identification

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/structid/core/model"
	"github.com/YuminosukeSato/structid/pkg/errors"
	"github.com/YuminosukeSato/structid/pkg/log"
	"github.com/YuminosukeSato/structid/polynomial"
	"github.com/YuminosukeSato/structid/preprocessing"
	"gonum.org/v1/gonum/mat"
)

// FittedModel is the immutable result of a fit. It keeps every coefficient
// level of the cascade together with the scales needed to evaluate it on new
// samples. All accessors return copies.
type FittedModel struct {
	family polynomial.Family
	eval   polynomial.Evaluator
	layout *Layout

	lambdas  [][]float64   // per output, len layout.Columns()
	a        [][][]float64 // per output, per group
	c        [][]float64   // per output, len layout.Groups()
	psi      []*mat.Dense  // per output, training samples × variables
	partials []*mat.Dense  // per output, training samples × groups

	inputScales  [][]preprocessing.Scale
	outputScales []preprocessing.Scale

	logger log.Logger
}

// Outputs returns the number of output rows.
func (m *FittedModel) Outputs() int { return len(m.c) }

// Family returns the polynomial family of the basis.
func (m *FittedModel) Family() polynomial.Family { return m.family }

// Degrees returns the degree budget per input group.
func (m *FittedModel) Degrees() []int { return append([]int(nil), m.layout.Degrees...) }

// GroupSizes returns the number of variables per input group.
func (m *FittedModel) GroupSizes() []int { return append([]int(nil), m.layout.GroupSizes...) }

// Lambda returns the basis coefficients of output o.
func (m *FittedModel) Lambda(o int) []float64 { return append([]float64(nil), m.lambdas[o]...) }

// ASmall returns the per-group psi coefficients of output o.
func (m *FittedModel) ASmall(o int) [][]float64 {
	out := make([][]float64, len(m.a[o]))
	for g, coef := range m.a[o] {
		out[g] = append([]float64(nil), coef...)
	}
	return out
}

// CSmall returns the group combination coefficients of output o.
func (m *FittedModel) CSmall(o int) []float64 { return append([]float64(nil), m.c[o]...) }

// Psi returns the training psi matrix of output o.
func (m *FittedModel) Psi(o int) *mat.Dense { return mat.DenseCopyOf(m.psi[o]) }

// PartialFits returns the training partial fits of output o, one column per group.
func (m *FittedModel) PartialFits(o int) *mat.Dense { return mat.DenseCopyOf(m.partials[o]) }

// InputScales returns the normalization scale of every input variable.
func (m *FittedModel) InputScales() [][]preprocessing.Scale {
	out := make([][]preprocessing.Scale, len(m.inputScales))
	for g, s := range m.inputScales {
		out[g] = append([]preprocessing.Scale(nil), s...)
	}
	return out
}

// OutputScales returns the normalization scale of every output row.
func (m *FittedModel) OutputScales() []preprocessing.Scale {
	return append([]preprocessing.Scale(nil), m.outputScales...)
}

// Predict evaluates the model on new samples given in the same group
// structure as the training inputs. Inputs are normalized with the stored
// training scales and predictions are returned on the original output scale.
func (m *FittedModel) Predict(inputs [][][]float64) (pred [][]float64, err error) {
	defer errors.Recover(&err, "FittedModel.Predict")

	if len(inputs) != m.layout.Groups() {
		return nil, errors.NewDimensionError("Predict", m.layout.Groups(), len(inputs), 0)
	}
	normed := make([][][]float64, len(inputs))
	for g, group := range inputs {
		if len(group) != m.layout.GroupSizes[g] {
			return nil, errors.NewDimensionError("Predict", m.layout.GroupSizes[g], len(group), 1)
		}
		normed[g] = make([][]float64, len(group))
		for j, v := range group {
			normed[g][j] = m.inputScales[g][j].TransformVec(nil, v)
		}
	}

	basis, err := BuildBasis(normed, m.layout, m.eval)
	if err != nil {
		return nil, err
	}

	pred = make([][]float64, m.Outputs())
	for o := range pred {
		f, err := m.evaluate(basis, o)
		if err != nil {
			return nil, errors.NewStageError(StagePredict, o, err)
		}
		pred[o] = m.outputScales[o].DenormalizeVec(f, f)
	}

	rows, _ := basis.Dims()
	m.logger.Debug("prediction completed",
		log.OperationKey, log.OperationPredict,
		log.OutputsKey, len(pred),
		log.SamplesKey, rows,
	)
	return pred, nil
}

// evaluate runs the psi, partial-fit and combination stages of output o with
// the stored coefficients.
func (m *FittedModel) evaluate(basis *mat.Dense, o int) ([]float64, error) {
	psi, err := BuildPsi(basis, m.lambdas[o], m.layout)
	if err != nil {
		return nil, err
	}
	fi, err := PartialFits(psi, m.a[o], m.layout)
	if err != nil {
		return nil, err
	}
	return Combine(fi, m.c[o])
}

// VariablePolynomial returns the power-basis coefficients, in the normalized
// variable, of the contribution c_g·a_gj·ψ_gj of flattened variable v to the
// normalized prediction of output o. Summing every variable's polynomial at
// the normalized inputs reproduces the normalized prediction.
func (m *FittedModel) VariablePolynomial(o, v int) ([]float64, error) {
	if o < 0 || o >= m.Outputs() {
		return nil, errors.NewValueError("VariablePolynomial", fmt.Sprintf("output %d out of range", o))
	}
	if v < 0 || v >= m.layout.Variables() {
		return nil, errors.NewValueError("VariablePolynomial", fmt.Sprintf("variable %d out of range", v))
	}
	if _, ok := m.eval.(polynomial.Family); !ok {
		return nil, errors.NewValueError("VariablePolynomial", "basis evaluator is not a polynomial family")
	}

	g, j := m.layout.variable(v)
	weight := m.c[o][g] * m.a[o][g][j]
	start, end := m.layout.VariableColumns(v)

	coef := make([]float64, end-start)
	for col := start; col < end; col++ {
		for k, pc := range m.family.PowerCoefficients(col - start) {
			coef[k] += weight * m.lambdas[o][col] * pc
		}
	}
	return coef, nil
}

// Formula renders the cascade of output o: the combination of group
// functions Φ, each group function as a combination of ψ, and each ψ as a
// combination of basis polynomials. Variables are the normalized inputs.
func (m *FittedModel) Formula(o int) (string, error) {
	if o < 0 || o >= m.Outputs() {
		return "", errors.NewValueError("Formula", fmt.Sprintf("output %d out of range", o))
	}

	var b strings.Builder
	out := o + 1
	fmt.Fprintf(&b, "Φ%d = %s\n", out, joinTerms(m.c[o], func(g int) string {
		return fmt.Sprintf("Φ%d%d(x%d)", out, g+1, g+1)
	}))
	for g := range m.a[o] {
		vstart, _ := m.layout.GroupVariables(g)
		fmt.Fprintf(&b, "Φ%d%d(x%d) = %s\n", out, g+1, g+1, joinTerms(m.a[o][g], func(j int) string {
			return fmt.Sprintf("ψ%d(x%d%d)", vstart+j+1, g+1, j+1)
		}))
	}
	for v := 0; v < m.layout.Variables(); v++ {
		g, j := m.layout.variable(v)
		start, end := m.layout.VariableColumns(v)
		fmt.Fprintf(&b, "ψ%d(x%d%d) = %s\n", v+1, g+1, j+1, joinTerms(m.lambdas[o][start:end], func(p int) string {
			return fmt.Sprintf("%s(x%d%d)", m.family.Symbol(p), g+1, j+1)
		}))
	}
	scale := m.outputScales[o]
	fmt.Fprintf(&b, "Y%d = %.6g·Φ%d + %.6g", out, scale.Range, out, scale.Min)
	return b.String(), nil
}

// String renders the formulas of every output.
func (m *FittedModel) String() string {
	parts := make([]string, m.Outputs())
	for o := range parts {
		parts[o], _ = m.Formula(o)
	}
	return strings.Join(parts, "\n\n")
}

func joinTerms(coef []float64, name func(i int) string) string {
	var b strings.Builder
	for i, c := range coef {
		switch {
		case i == 0:
			fmt.Fprintf(&b, "%.6g·%s", c, name(i))
		case c < 0:
			fmt.Fprintf(&b, " - %.6g·%s", -c, name(i))
		default:
			fmt.Fprintf(&b, " + %.6g·%s", c, name(i))
		}
	}
	return b.String()
}

var _ model.Model = (*FittedModel)(nil)
