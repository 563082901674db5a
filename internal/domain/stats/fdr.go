package stats

import (
	"math"

	"github.com/ontomix/GeneSet-Insight/pkg/errors"
)

// BenjaminiHochberg converts a batch of raw p-values, sorted ascending, into
// Benjamini–Hochberg adjusted FDR values.
//
// The denominator m is len(sorted): only the p-values actually handed in
// count, the standard practical formulation.  Processing runs from the worst
// rank downward, clamping each adjusted value by its successor so the output
// is non-decreasing in rank; a naive per-row p·m/r violates that
// monotonicity requirement.
//
// The input must be sorted ascending with every value in [0, 1].  Violations
// are reported as errors because they indicate a caller bug rather than bad
// data.
func BenjaminiHochberg(sorted []float64) ([]float64, error) {
	m := len(sorted)
	if m == 0 {
		return nil, nil
	}

	for i, p := range sorted {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return nil, errors.Newf(errors.ErrCodeStatsInvalidPValue,
				"p-value %g at index %d outside [0, 1]", p, i)
		}
		if i > 0 && p < sorted[i-1] {
			return nil, errors.Newf(errors.ErrCodeStatsUnsortedPValues,
				"p-value %g at index %d below predecessor %g", p, i, sorted[i-1])
		}
	}

	out := make([]float64, m)
	next := 1.0
	for i := m - 1; i >= 0; i-- {
		q := sorted[i] * float64(m) / float64(i+1)
		if q > next {
			q = next
		}
		out[i] = q
		next = q
	}
	return out, nil
}
