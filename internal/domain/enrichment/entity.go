// Package enrichment implements the term over-representation engine: it
// derives background statistics from an annotation mapping, intersects a
// query gene set with every term, scores each overlap with the exact
// hypergeometric test, and adjusts the batch with Benjamini–Hochberg.
// Ontology-term and pathway analyses share this one engine, parameterized by
// an identifier-resolution strategy.
package enrichment

// TermRef is one annotation attached to a gene in the caller's background
// mapping: the term identifier plus its display metadata.
type TermRef struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// TermAnnotation is the per-term accumulator derived from the background
// mapping: display metadata plus the set of member genes.
type TermAnnotation struct {
	ID          string
	Description string
	Category    string
	Genes       map[string]struct{}
}

// Size returns K, the number of background genes annotated with the term.
func (t *TermAnnotation) Size() int {
	return len(t.Genes)
}

// Result is one emitted enrichment record.  A term produces a Result only
// when at least one query gene overlaps it; zero-overlap terms never appear.
// FDR starts at 1 and is assigned by ApplyFDR; all other fields are fixed at
// emission.
type Result struct {
	TermID      string  `json:"term_id"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	PValue      float64 `json:"p_value"`
	FDR         float64 `json:"fdr"`
	Fold        float64 `json:"fold_enrichment"`

	// Overlap is k, TermSize is K, QuerySize is n, Background is N in the
	// hypergeometric test's terms.
	Overlap    int `json:"overlap"`
	TermSize   int `json:"term_size"`
	QuerySize  int `json:"query_size"`
	Background int `json:"background_size"`

	// Genes lists the overlapping gene identifiers, sorted.
	Genes []string `json:"genes"`
}

// QueryStats summarizes how much of the caller's query took part in the test.
type QueryStats struct {
	// Mapped is n: distinct query genes resolved into the background.
	Mapped int `json:"mapped"`

	// Total is the length of the caller's original query list, duplicates
	// included.
	Total int `json:"total"`

	// TermsTotal counts the distinct terms considered under the category
	// filter, whether or not they overlapped the query.
	TermsTotal int `json:"terms_total"`

	// Unmapped lists the distinct query identifiers that resolved to
	// nothing, sorted.  Unresolvable genes are expected data, not errors.
	Unmapped []string `json:"unmapped,omitempty"`
}
