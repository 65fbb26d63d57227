// Package distribution holds the numeric helpers shared by boosters and
// solvers: edges, relative entropy and the capped simplex.
package distribution

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/marginboost/core/model"
	"github.com/YuminosukeSato/marginboost/core/sample"
	"github.com/YuminosukeSato/marginboost/pkg/errors"
)

// Eps is the slack allowed when checking simplex and capping constraints.
const Eps = 1e-9

// Uniform returns the uniform distribution over n examples.
func Uniform(n int) []float64 {
	d := make([]float64, n)
	for i := range d {
		d[i] = 1 / float64(n)
	}
	return d
}

// Edge returns sum_i d_i y_i h(x_i).
func Edge(s *sample.Sample, d []float64, h model.Classifier) float64 {
	target := s.Target()
	edge := 0.0
	for i, di := range d {
		if di == 0 {
			continue
		}
		edge += di * target[i] * h.Confidence(s, i)
	}
	return edge
}

// MaxEdge returns the largest edge over hypotheses, or -1 when there are none.
func MaxEdge(s *sample.Sample, d []float64, hs []model.Classifier) float64 {
	best := -1.0
	for _, h := range hs {
		if e := Edge(s, d, h); e > best {
			best = e
		}
	}
	return best
}

// RelativeEntropy returns the entropy of d relative to uniform,
// sum_i d_i ln(n d_i) with 0 ln 0 = 0. It lies in [0, ln n].
func RelativeEntropy(d []float64) float64 {
	n := float64(len(d))
	e := 0.0
	for _, di := range d {
		if di > 0 {
			e += di * math.Log(n*di)
		}
	}
	return e
}

// CheckNu validates the capping parameter against the sample size.
func CheckNu(nu float64, n int) error {
	if math.IsNaN(nu) || nu < 1 || nu > float64(n) {
		return errors.NewConfigurationError("nu", "capping parameter must lie in [1, n]", nu)
	}
	return nil
}

// NuFromRatio converts an expected outlier ratio to a capping parameter,
// max(1, ratio * n).
func NuFromRatio(ratio float64, n int) (float64, error) {
	if math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		return 0, errors.NewConfigurationError("nu_ratio", "must lie in [0, 1]", ratio)
	}
	return math.Max(1, ratio*float64(n)), nil
}

// Check reports an error unless d is non-negative, sums to one and is
// bounded by upper, all within Eps.
func Check(d []float64, upper float64) error {
	if err := errors.CheckNumericalStability("distribution", d, 0); err != nil {
		return err
	}
	for i, di := range d {
		if di < -Eps || di > upper+Eps {
			return errors.NewValueError("distribution.Check",
				"weight of example "+strconv.Itoa(i)+" is outside [0, 1/nu]")
		}
	}
	if math.Abs(floats.Sum(d)-1) > Eps*float64(len(d)+1) {
		return errors.NewValueError("distribution.Check", "weights do not sum to one")
	}
	return nil
}

// Project clips tiny numerical violations and renormalizes in place.
func Project(d []float64, upper float64) {
	for i, di := range d {
		d[i] = errors.ClipValue(di, 0, upper)
	}
	if sum := floats.Sum(d); sum > 0 {
		floats.Scale(1/sum, d)
	}
}

// CappedMin returns min <d, values> over the capped simplex: the smallest
// values get weight upper until the mass runs out.
func CappedMin(values []float64, upper float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	rest, value := 1.0, 0.0
	for _, v := range sorted {
		if rest <= 0 {
			break
		}
		w := math.Min(upper, rest)
		value += w * v
		rest -= w
	}
	return value
}

// CappedSoftmax returns the distribution d_i = min(upper, tau * exp(scores_i))
// with tau chosen so that d sums to one. This is the minimizer of
// <d, -scores> + sum_i d_i ln d_i over the capped simplex. upper must be at
// least 1/len(scores).
func CappedSoftmax(scores []float64, upper float64) []float64 {
	n := len(scores)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	// suffix[k] = logsumexp(scores[order[k:]])
	suffix := make([]float64, n+1)
	suffix[n] = math.Inf(-1)
	for k := n - 1; k >= 0; k-- {
		suffix[k] = logAddExp(suffix[k+1], scores[order[k]])
	}

	d := make([]float64, n)
	for k := 0; k < n; k++ {
		rest := 1 - float64(k)*upper
		if rest <= 0 {
			break
		}
		top := rest * math.Exp(scores[order[k]]-suffix[k])
		if top <= upper || k == n-1 {
			for _, i := range order[k:] {
				d[i] = rest * math.Exp(scores[i]-suffix[k])
			}
			return d
		}
		d[order[k]] = upper
	}
	return d
}

func logAddExp(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}
	if math.IsInf(b, -1) {
		return a
	}
	if a < b {
		a, b = b, a
	}
	return a + math.Log1p(math.Exp(b-a))
}
