package identification

import (
	"strings"

	"github.com/YuminosukeSato/structid/pkg/errors"
)

// Weights は λ ステージの目標行列 B の作り方を表す
type Weights int

const (
	// WeightsPerOutput は各出力の正規化値をそのまま目標にする
	WeightsPerOutput Weights = iota
	// WeightsAverage は全出力の各サンプルでの (max+min)/2 を全行に使う
	WeightsAverage
)

// String returns the weighting mode name.
func (w Weights) String() string {
	switch w {
	case WeightsPerOutput:
		return "per-output"
	case WeightsAverage:
		return "average"
	}
	return "unknown"
}

// ParseWeights converts a weighting mode name. The empty string selects
// WeightsPerOutput.
func ParseWeights(name string) (Weights, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "per-output", "output", "scaled":
		return WeightsPerOutput, nil
	case "average", "avg":
		return WeightsAverage, nil
	}
	return WeightsPerOutput, errors.NewValidationError("weights", "unknown weighting mode", name)
}

// BuildTargets は正規化済み出力から目標行列 B を作る
//
// WeightsAverage の場合はすべての行が同じ中点ベクトルになる。
// 返り値は入力と記憶領域を共有しない。
func BuildTargets(normed [][]float64, w Weights) ([][]float64, error) {
	if len(normed) == 0 {
		return nil, errors.NewModelError("BuildTargets", "empty data", errors.ErrEmptyData)
	}
	n := len(normed[0])
	for _, row := range normed {
		if len(row) != n {
			return nil, errors.NewDimensionError("BuildTargets", n, len(row), 0)
		}
	}

	targets := make([][]float64, len(normed))
	switch w {
	case WeightsPerOutput:
		for o, row := range normed {
			targets[o] = append([]float64(nil), row...)
		}
	case WeightsAverage:
		mid := make([]float64, n)
		for k := range mid {
			lo, hi := normed[0][k], normed[0][k]
			for _, row := range normed[1:] {
				lo = min(lo, row[k])
				hi = max(hi, row[k])
			}
			mid[k] = (hi + lo) / 2
		}
		for o := range targets {
			targets[o] = append([]float64(nil), mid...)
		}
	default:
		return nil, errors.NewValidationError("weights", "unknown weighting mode", int(w))
	}
	return targets, nil
}
