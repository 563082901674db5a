package enrichment

import (
	"github.com/ontomix/GeneSet-Insight/pkg/errors"
)

// CategoryPathway is the category assigned to every pathway-mode term, since
// pathway sources carry no ontology aspect of their own.
const CategoryPathway = "pathway"

// Background holds the statistical universe for one analysis run: the set of
// all annotated genes (size N) and the per-term accumulators (each of size
// K).  It is derived fresh from the caller's mapping on every run and never
// mutated afterwards.
type Background struct {
	genes map[string]struct{}
	terms map[string]*TermAnnotation
}

func newBackground(geneCount int) *Background {
	return &Background{
		genes: make(map[string]struct{}, geneCount),
		terms: make(map[string]*TermAnnotation),
	}
}

// NewBackground builds the ontology-mode background from a gene → term-record
// mapping.  categoryFilter restricts which terms accumulate members; the
// empty string admits every category.  The universe always counts every
// mapping key, whatever the filter: filtering narrows the tested terms, not
// the population.
func NewBackground(mapping map[string][]TermRef, categoryFilter string) *Background {
	bg := newBackground(len(mapping))
	for gene, refs := range mapping {
		bg.genes[gene] = struct{}{}
		for _, ref := range refs {
			if categoryFilter != "" && ref.Category != categoryFilter {
				continue
			}
			acc, ok := bg.terms[ref.ID]
			if !ok {
				acc = &TermAnnotation{
					ID:          ref.ID,
					Description: ref.Description,
					Category:    ref.Category,
					Genes:       make(map[string]struct{}),
				}
				bg.terms[ref.ID] = acc
			}
			acc.Genes[gene] = struct{}{}
		}
	}
	return bg
}

// NewPathwayBackground builds the pathway-mode background from a gene →
// pathway-id mapping plus a pathway-id → display-name table.  Pathways
// missing from the name table fall back to their identifier as description.
func NewPathwayBackground(mapping map[string][]string, names map[string]string) *Background {
	bg := newBackground(len(mapping))
	for gene, ids := range mapping {
		bg.genes[gene] = struct{}{}
		for _, id := range ids {
			acc, ok := bg.terms[id]
			if !ok {
				desc := names[id]
				if desc == "" {
					desc = id
				}
				acc = &TermAnnotation{
					ID:          id,
					Description: desc,
					Category:    CategoryPathway,
					Genes:       make(map[string]struct{}),
				}
				bg.terms[id] = acc
			}
			acc.Genes[gene] = struct{}{}
		}
	}
	return bg
}

// Size returns N, the number of distinct annotated genes.
func (b *Background) Size() int {
	return len(b.genes)
}

// TermCount returns the number of distinct terms admitted by the filter.
func (b *Background) TermCount() int {
	return len(b.terms)
}

// Contains reports whether gene belongs to the universe.
func (b *Background) Contains(gene string) bool {
	_, ok := b.genes[gene]
	return ok
}

// Term returns the accumulator for id.
func (b *Background) Term(id string) (*TermAnnotation, error) {
	acc, ok := b.terms[id]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeTermNotFound, "term %q not in background", id)
	}
	return acc, nil
}
