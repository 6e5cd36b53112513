// Standard attribute keys for identification runs.
//
// Keys follow a hierarchical naming convention ("data.samples",
// "solver.method") so that log lines from every stage can be filtered the
// same way.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the estimator type, e.g. "Identifier".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed ("fit", "predict").
	OperationKey = "ml.operation"

	// ComponentKey identifies which package emitted the record.
	ComponentKey = "ml.component"

	// StageKey names the pipeline stage ("normalize", "basis", "lambda",
	// "psi", "a", "f_i", "c", "reconstruct").
	StageKey = "pipeline.stage"

	// OutputKey is the index of the output variable a record refers to.
	OutputKey = "pipeline.output"
)

// Data Shape
const (
	// SamplesKey indicates the number of samples n.
	SamplesKey = "data.samples"

	// GroupsKey indicates the number of input groups.
	GroupsKey = "data.groups"

	// VariablesKey indicates the number of flattened input variables.
	VariablesKey = "data.variables"

	// ColumnsKey indicates the number of basis matrix columns.
	ColumnsKey = "data.columns"

	// OutputsKey indicates the number of output variables.
	OutputsKey = "data.outputs"

	// DegreesKey holds the per-group degree budget.
	DegreesKey = "data.degrees"
)

// Solver and Configuration
const (
	// MethodKey is the equation solver method tag.
	MethodKey = "solver.method"

	// EpsilonKey is the convergence tolerance.
	EpsilonKey = "solver.epsilon"

	// IterationKey records the number of iterations an iterative solve used.
	IterationKey = "solver.iterations"

	// DifferenceKey records the last successive-iterate difference.
	DifferenceKey = "solver.difference"

	// PolynomialKey is the orthogonal polynomial family.
	PolynomialKey = "config.polynomial"

	// WeightsKey is the target weighting mode.
	WeightsKey = "config.weights"

	// SplitLambdasKey records whether lambdas are solved per group.
	SplitLambdasKey = "config.split_lambdas"
)

// Metrics
const (
	// NormedErrorKey holds the infinity-norm errors in normalized space.
	NormedErrorKey = "metrics.normed_error"

	// ErrorNormKey holds the infinity-norm errors in the original scale.
	ErrorNormKey = "metrics.error"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error Context
const (
	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
)
