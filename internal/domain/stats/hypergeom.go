package stats

import "math"

// HypergeometricTest computes exact upper-tail probabilities for the
// hypergeometric distribution, backed by a shared LogFactorialTable.
// It is the exact test, not a Normal or Stirling approximation: enrichment
// p-values near significance thresholds must be numerically trustworthy for
// small-to-moderate background sizes.
type HypergeometricTest struct {
	table *LogFactorialTable
}

// NewHypergeometricTest builds a test around the given table.  A nil table is
// replaced with a fresh private one.
func NewHypergeometricTest(table *LogFactorialTable) *HypergeometricTest {
	if table == nil {
		table = NewLogFactorialTable()
	}
	return &HypergeometricTest{table: table}
}

// UpperTail returns P(X ≥ k) when drawing n items without replacement from a
// population of N items of which K are successes.
//
// Degenerate configurations — any of k, n, K, N ≤ 0, or n > N, or K > N —
// return 1: callers are responsible for avoiding them, but the test degrades
// safely instead of failing.  A k larger than min(n, K) is impossible to
// observe and returns 0.
func (h *HypergeometricTest) UpperTail(k, n, K, N int) float64 {
	if k <= 0 || n <= 0 || K <= 0 || N <= 0 || n > N || K > N {
		return 1
	}

	hi := n
	if K < hi {
		hi = K
	}
	if k > hi {
		return 0
	}

	// The summation starts at k but no lower than n-(N-K): with fewer
	// successes the draw could not be filled from the N-K failures alone.
	lo := k
	if m := n - (N - K); m > lo {
		lo = m
	}

	logDenom := h.table.LogChoose(N, n)
	p := 0.0
	for i := lo; i <= hi; i++ {
		p += math.Exp(h.table.LogChoose(K, i) + h.table.LogChoose(N-K, n-i) - logDenom)
	}

	// Accumulated rounding can push the cumulative sum fractionally above 1.
	if p > 1 {
		p = 1
	}
	return p
}

// FoldEnrichment returns the ratio of the observed overlap k to the overlap
// expected under random sampling, n·K/N, rounded to two decimal places.
// A zero expected count yields 0.
func FoldEnrichment(k, n, K, N int) float64 {
	if n <= 0 || K <= 0 || N <= 0 {
		return 0
	}
	expected := float64(n) * float64(K) / float64(N)
	if expected == 0 {
		return 0
	}
	return math.Round(float64(k)/expected*100) / 100
}
