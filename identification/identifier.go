// Package identification fits additive structural models by cascading
// least-squares regressions over orthogonal polynomial bases.
//
// Inputs are grouped: inputs[g][j] is the sample vector of variable j of
// group g. Each output row is approximated as
//
//	Φ(x) = Σ_g c_g · Σ_j a_gj · Σ_p λ_gjp · P_p(x_gj)
//
// on normalized variables, where the three coefficient levels λ, a and c are
// solved one after another.
//
// 使用例:
//
//	id := identification.NewIdentifier(
//		identification.WithPolynomial(polynomial.Legendre),
//		identification.WithMethod(linear.MethodGaussSeidel),
//	)
//	res, err := id.Fit(inputs, outputs, []int{3, 2})
//	fmt.Println(res.Report)
package identification

import (
	"time"

	"github.com/YuminosukeSato/structid/core/model"
	"github.com/YuminosukeSato/structid/linear"
	"github.com/YuminosukeSato/structid/pkg/errors"
	"github.com/YuminosukeSato/structid/pkg/log"
	"github.com/YuminosukeSato/structid/preprocessing"
	"gonum.org/v1/gonum/mat"
)

// Stage names carried by StageError.
const (
	StageConfigure   = "configure"
	StageNormalize   = "normalize"
	StageTarget      = "target"
	StageBasis       = "basis"
	StageLambda      = "lambda"
	StagePsi         = "psi"
	StageASmall      = "a"
	StagePartial     = "f_i"
	StageCSmall      = "c"
	StageReconstruct = "reconstruct"
	StagePredict     = "predict"
)

// Result bundles a fitted model with its training predictions.
type Result struct {
	Model *FittedModel
	// Targets is the λ target matrix B, one row per output.
	Targets [][]float64
	// Normalized holds f, the prediction in normalized space.
	Normalized [][]float64
	// Predictions holds f on the original output scale.
	Predictions [][]float64
	Report      *Report
}

// Identifier runs the identification pipeline.
type Identifier struct {
	model.BaseEstimator

	cfg    Config
	fitted *FittedModel
	logger log.Logger
}

// NewIdentifier creates an Identifier. Configuration errors are reported by Fit.
func NewIdentifier(opts ...Option) *Identifier {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.GetLoggerWithName("identification")
	}
	return &Identifier{cfg: cfg, logger: logger}
}

// Config returns the configuration of the identifier.
func (id *Identifier) Config() Config { return id.cfg }

// Model returns the model of the last successful fit.
func (id *Identifier) Model() (*FittedModel, error) {
	if err := id.RequireFitted("Identifier", "Model"); err != nil {
		return nil, err
	}
	return id.fitted, nil
}

// Predict evaluates the last fitted model on new samples.
func (id *Identifier) Predict(inputs [][][]float64) ([][]float64, error) {
	m, err := id.Model()
	if err != nil {
		return nil, err
	}
	return m.Predict(inputs)
}

// Fit identifies a model of outputs from inputs.
//
// inputs[g][j] is the sample vector of variable j in group g, outputs[o] the
// sample vector of output o and degrees[g] the polynomial degree budget of
// group g. Every vector must have the same length and at least two distinct
// values. Any failure aborts the fit and is returned as a StageError naming
// the stage (and output row) where it happened.
func (id *Identifier) Fit(inputs [][][]float64, outputs [][]float64, degrees []int) (res *Result, err error) {
	defer errors.Recover(&err, "Identifier.Fit")
	started := time.Now()

	if err := id.cfg.validate(); err != nil {
		return nil, errors.NewStageError(StageConfigure, -1, err)
	}

	groupSizes := make([]int, len(inputs))
	for g, group := range inputs {
		groupSizes[g] = len(group)
	}
	layout, err := NewLayout(groupSizes, degrees)
	if err != nil {
		return nil, errors.NewStageError(StageConfigure, -1, err)
	}

	xNorm, xScales, err := preprocessing.NormalizeGroups(inputs)
	if err != nil {
		return nil, errors.NewStageError(StageNormalize, -1, err)
	}
	yNorm, yScales, err := preprocessing.NormalizeRows(outputs)
	if err != nil {
		return nil, errors.NewStageError(StageNormalize, -1, err)
	}
	if len(xNorm[0][0]) != len(yNorm[0]) {
		return nil, errors.NewStageError(StageNormalize, -1,
			errors.NewDimensionError("Fit", len(xNorm[0][0]), len(yNorm[0]), 0))
	}

	targets, err := BuildTargets(yNorm, id.cfg.Weights)
	if err != nil {
		return nil, errors.NewStageError(StageTarget, -1, err)
	}

	eval := id.cfg.evaluator()
	basis, err := BuildBasis(xNorm, layout, eval)
	if err != nil {
		return nil, errors.NewStageError(StageBasis, -1, err)
	}
	rows, cols := basis.Dims()
	id.logger.Debug("basis matrix built",
		log.StageKey, StageBasis,
		log.SamplesKey, rows,
		log.ColumnsKey, cols,
		log.GroupsKey, layout.Groups(),
		log.VariablesKey, layout.Variables(),
		log.DegreesKey, layout.Degrees,
	)

	m := &FittedModel{
		family:       id.cfg.Family,
		eval:         eval,
		layout:       layout,
		lambdas:      make([][]float64, len(outputs)),
		a:            make([][][]float64, len(outputs)),
		c:            make([][]float64, len(outputs)),
		psi:          make([]*mat.Dense, len(outputs)),
		partials:     make([]*mat.Dense, len(outputs)),
		inputScales:  xScales,
		outputScales: yScales,
		logger:       id.logger,
	}
	normalized := make([][]float64, len(outputs))
	predictions := make([][]float64, len(outputs))

	for o := range outputs {
		if normalized[o], err = id.fitOutput(m, o, basis, targets[o], yNorm[o]); err != nil {
			return nil, err
		}
		if predictions[o], err = DenormalizeLike(normalized[o], outputs[o]); err != nil {
			return nil, errors.NewStageError(StageReconstruct, o, err)
		}
	}

	report, err := newReport(yNorm, normalized, outputs, predictions)
	if err != nil {
		return nil, errors.NewStageError(StageReconstruct, -1, err)
	}

	id.fitted = m
	id.SetFitted()
	id.logger.Info("identification completed",
		log.ModelNameKey, "Identifier",
		log.OperationKey, log.OperationFit,
		log.MethodKey, id.cfg.Method.String(),
		log.EpsilonKey, id.cfg.Epsilon,
		log.WeightsKey, id.cfg.Weights.String(),
		log.PolynomialKey, id.cfg.Family.String(),
		log.OutputsKey, len(outputs),
		log.SamplesKey, rows,
		log.NormedErrorKey, report.NormalizedErrors,
		log.ErrorNormKey, report.Errors,
		log.DurationMsKey, time.Since(started).Milliseconds(),
	)

	return &Result{
		Model:       m,
		Targets:     targets,
		Normalized:  normalized,
		Predictions: predictions,
		Report:      report,
	}, nil
}

// fitOutput runs λ → ψ → a → f_i → c → f for output o and stores the
// coefficients in m.
func (id *Identifier) fitOutput(m *FittedModel, o int, basis *mat.Dense, target, y []float64) ([]float64, error) {
	solver, err := linear.NewSolver(id.cfg.Method, id.cfg.Epsilon,
		id.cfg.solverOptions(id.logger.With(log.OutputKey, o))...)
	if err != nil {
		return nil, errors.NewStageError(StageConfigure, o, err)
	}
	layout := m.layout

	lambda, err := SolveLambda(basis, target, layout, solver, id.cfg.SplitLambdas)
	if err != nil {
		return nil, errors.NewStageError(StageLambda, o, err)
	}
	psi, err := BuildPsi(basis, lambda, layout)
	if err != nil {
		return nil, errors.NewStageError(StagePsi, o, err)
	}
	a, err := SolveASmall(psi, y, layout, solver)
	if err != nil {
		return nil, errors.NewStageError(StageASmall, o, err)
	}
	fi, err := PartialFits(psi, a, layout)
	if err != nil {
		return nil, errors.NewStageError(StagePartial, o, err)
	}
	c, err := SolveCSmall(fi, y, solver)
	if err != nil {
		return nil, errors.NewStageError(StageCSmall, o, err)
	}
	f, err := Combine(fi, c)
	if err != nil {
		return nil, errors.NewStageError(StageReconstruct, o, err)
	}

	m.lambdas[o], m.psi[o], m.a[o], m.partials[o], m.c[o] = lambda, psi, a, fi, c
	id.logger.Debug("output fitted",
		log.OutputKey, o,
		log.StageKey, StageReconstruct,
		log.SplitLambdasKey, id.cfg.SplitLambdas,
	)
	return f, nil
}
