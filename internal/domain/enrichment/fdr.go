package enrichment

import (
	"github.com/ontomix/GeneSet-Insight/internal/domain/stats"
)

// ApplyFDR sorts results ascending by raw p-value (ties broken by term id)
// and assigns Benjamini–Hochberg adjusted values, using the emitted row
// count as denominator: only terms with nonzero overlap take part, the
// standard practical formulation.
//
// The sort is a side effect — callers receive the same slice reordered.
func ApplyFDR(results []Result) ([]Result, error) {
	if len(results) == 0 {
		return results, nil
	}

	sortResults(results)

	pvalues := make([]float64, len(results))
	for i, r := range results {
		pvalues[i] = r.PValue
	}

	adjusted, err := stats.BenjaminiHochberg(pvalues)
	if err != nil {
		return nil, err
	}

	for i := range results {
		results[i].FDR = adjusted[i]
	}
	return results, nil
}
