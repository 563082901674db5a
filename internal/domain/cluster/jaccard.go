// Package cluster groups enrichment results by similarity of their
// supporting gene sets: a Jaccard distance matrix feeds UPGMA agglomerative
// clustering, yielding an arena-backed binary merge tree for dendrogram
// consumers.
package cluster

import (
	"github.com/ontomix/GeneSet-Insight/pkg/errors"
)

// DistanceMatrix is a symmetric, zero-diagonal matrix of pairwise distances
// in [0, 1], indexed by result-list position.  Labels carries the term id of
// each row, parallel to the index order.
type DistanceMatrix struct {
	Labels []string
	rows   [][]float64
}

// NewDistanceMatrix returns a zero-filled square matrix over the labels.
func NewDistanceMatrix(labels []string) *DistanceMatrix {
	n := len(labels)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
	}
	return &DistanceMatrix{
		Labels: append([]string(nil), labels...),
		rows:   rows,
	}
}

// Size returns the number of rows.
func (m *DistanceMatrix) Size() int {
	return len(m.rows)
}

// At returns the distance between rows i and j.
func (m *DistanceMatrix) At(i, j int) float64 {
	return m.rows[i][j]
}

// Set stores d symmetrically at (i, j) and (j, i).
func (m *DistanceMatrix) Set(i, j int, d float64) {
	m.rows[i][j] = d
	m.rows[j][i] = d
}

// JaccardDistances builds the pairwise distance matrix over the given gene
// sets: D[i][j] = 1 − |gᵢ ∩ gⱼ| / |gᵢ ∪ gⱼ|.  Two empty sets score 1,
// maximally dissimilar rather than undefined, which keeps the clustering
// algorithm total.  labels and sets must be parallel slices.
func JaccardDistances(labels []string, sets [][]string) (*DistanceMatrix, error) {
	if len(labels) != len(sets) {
		return nil, errors.Newf(errors.ErrCodeClusterMatrixShape,
			"labels (%d) and gene sets (%d) disagree", len(labels), len(sets))
	}

	indexed := make([]map[string]struct{}, len(sets))
	for i, genes := range sets {
		set := make(map[string]struct{}, len(genes))
		for _, g := range genes {
			set[g] = struct{}{}
		}
		indexed[i] = set
	}

	m := NewDistanceMatrix(labels)
	for i := range indexed {
		for j := i + 1; j < len(indexed); j++ {
			m.Set(i, j, jaccardDistance(indexed[i], indexed[j]))
		}
	}
	return m, nil
}

func jaccardDistance(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}

	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	intersection := 0
	for g := range small {
		if _, ok := large[g]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return 1 - float64(intersection)/float64(union)
}
