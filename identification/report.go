package identification

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/structid/metrics"
)

// Report holds the fit errors of every output row.
type Report struct {
	// NormalizedErrors[o] = max_k |ŷ[o][k] - f[o][k]| in normalized space.
	NormalizedErrors []float64
	// Errors[o] is the same norm between the original output and the
	// denormalized prediction.
	Errors []float64
	// Summaries holds further metrics on the original scale.
	Summaries []metrics.Summary
}

func newReport(normedY, f, y, realF [][]float64) (*Report, error) {
	normErr, err := metrics.MaxErrors(normedY, f)
	if err != nil {
		return nil, err
	}
	realErr, err := metrics.MaxErrors(y, realF)
	if err != nil {
		return nil, err
	}
	summaries := make([]metrics.Summary, len(y))
	for o := range y {
		if summaries[o], err = metrics.Summarize(y[o], realF[o]); err != nil {
			return nil, err
		}
	}
	return &Report{NormalizedErrors: normErr, Errors: realErr, Summaries: summaries}, nil
}

// String returns the two-line error report.
func (r *Report) String() string {
	return fmt.Sprintf("normed Y errors - %v\nY errors - %v", r.NormalizedErrors, r.Errors)
}

// Detail renders one line of metrics per output row.
func (r *Report) Detail() string {
	var b strings.Builder
	for o, s := range r.Summaries {
		fmt.Fprintf(&b, "Y%d: max=%.6g mse=%.6g rmse=%.6g mae=%.6g r2=%.6g\n",
			o+1, s.Max, s.MSE, s.RMSE, s.MAE, s.R2)
	}
	return b.String()
}
