// Package stats implements the exact statistical machinery of the enrichment
// engine: a memoized log-factorial table, the hypergeometric upper-tail test,
// and Benjamini–Hochberg multiple-testing correction.  All probability math
// runs in log-space so factorials of large backgrounds never overflow float64.
package stats

import (
	"math"
	"sync"
)

// LogFactorialTable memoizes ln(n!) values in a monotonically growing slice:
// entry i holds ln(i!).  The table only extends, never shrinks, and never
// recomputes a filled entry, so each prefix extension costs O(Δn) and every
// later lookup of a filled index is O(1).
//
// One table is meant to be shared by every analysis run in the process.
// Lookups of filled entries take the read lock only; extension is serialized
// behind the write lock so concurrent callers cannot race to fill the same
// index.
type LogFactorialTable struct {
	mu    sync.RWMutex
	cache []float64
}

// NewLogFactorialTable returns a table seeded with ln(0!) = ln(1!) = 0.
func NewLogFactorialTable() *LogFactorialTable {
	return &LogFactorialTable{
		cache: make([]float64, 2, 256),
	}
}

// LogFactorial returns ln(n!).  For n ≤ 1, including negative n, it returns 0:
// no caller in this engine passes negatives, but the function is total and
// never fails.
func (t *LogFactorialTable) LogFactorial(n int) float64 {
	if n <= 1 {
		return 0
	}

	t.mu.RLock()
	if n < len(t.cache) {
		v := t.cache[n]
		t.mu.RUnlock()
		return v
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	// Another goroutine may have extended past n while we waited for the
	// write lock; the loop body then never runs.
	for i := len(t.cache); i <= n; i++ {
		t.cache = append(t.cache, t.cache[i-1]+math.Log(float64(i)))
	}
	return t.cache[n]
}

// LogChoose returns ln C(n, k).  Out-of-domain arguments (n < 0, k < 0 or
// k > n) denote an empty choice set and yield -Inf, which exponentiates to a
// zero probability contribution.
func (t *LogFactorialTable) LogChoose(n, k int) float64 {
	if n < 0 || k < 0 || k > n {
		return math.Inf(-1)
	}
	return t.LogFactorial(n) - t.LogFactorial(k) - t.LogFactorial(n-k)
}

// Size returns the number of filled entries, for tests that verify the
// incremental extension behavior.
func (t *LogFactorialTable) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.cache)
}
