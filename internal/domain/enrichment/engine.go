package enrichment

import (
	"sort"

	"github.com/ontomix/GeneSet-Insight/internal/domain/stats"
)

// Engine runs the over-representation test for every background term against
// a resolved query set.  One Engine is reusable across analyses: it carries
// only the shared hypergeometric test, whose log-factorial table grows
// monotonically over the process lifetime.
type Engine struct {
	test *stats.HypergeometricTest
}

// NewEngine builds an engine around the given test.  A nil test gets a fresh
// private table.
func NewEngine(test *stats.HypergeometricTest) *Engine {
	if test == nil {
		test = stats.NewHypergeometricTest(nil)
	}
	return &Engine{test: test}
}

// Enrich resolves the query identifiers against bg through resolver, scores
// every term with at least one overlapping gene, and returns the emitted
// rows plus query statistics.
//
// Rows come back sorted ascending by p-value with ties broken by term id, so
// a fixed input always yields the same order.  Every row's FDR starts at 1;
// ApplyFDR assigns the adjusted values.  A nil resolver defaults to direct
// resolution; a nil or empty background degrades to an empty result list
// with zero mapped genes rather than failing.
func (e *Engine) Enrich(query []string, bg *Background, resolver Resolver) ([]Result, QueryStats) {
	qs := QueryStats{Total: len(query)}
	if bg == nil {
		bg = newBackground(0)
	}
	qs.TermsTotal = bg.TermCount()
	if resolver == nil {
		resolver = NewDirectResolver(bg)
	}

	resolved := make(map[string]struct{}, len(query))
	unmapped := make(map[string]struct{})
	for _, q := range query {
		if id, ok := resolver.Resolve(q); ok {
			resolved[id] = struct{}{}
		} else {
			unmapped[q] = struct{}{}
		}
	}
	qs.Mapped = len(resolved)
	qs.Unmapped = sortedKeys(unmapped)

	if len(resolved) == 0 {
		return nil, qs
	}

	n := len(resolved)
	N := bg.Size()
	results := make([]Result, 0, len(bg.terms))
	for _, term := range bg.terms {
		var genes []string
		for g := range resolved {
			if _, ok := term.Genes[g]; ok {
				genes = append(genes, g)
			}
		}
		k := len(genes)
		if k == 0 {
			continue
		}
		sort.Strings(genes)

		K := term.Size()
		results = append(results, Result{
			TermID:      term.ID,
			Description: term.Description,
			Category:    term.Category,
			PValue:      e.test.UpperTail(k, n, K, N),
			FDR:         1,
			Fold:        stats.FoldEnrichment(k, n, K, N),
			Overlap:     k,
			TermSize:    K,
			QuerySize:   n,
			Background:  N,
			Genes:       genes,
		})
	}

	sortResults(results)
	return results, qs
}

// sortResults orders rows ascending by raw p-value, ties broken by term id
// so runs are reproducible byte for byte.
func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].PValue != results[j].PValue {
			return results[i].PValue < results[j].PValue
		}
		return results[i].TermID < results[j].TermID
	})
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
