package cli

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/ontomix/GeneSet-Insight/internal/domain/cluster"
	"github.com/ontomix/GeneSet-Insight/internal/domain/enrichment"
	"github.com/ontomix/GeneSet-Insight/pkg/errors"
)

// writeResultsCSV exports every result row, not just the significant ones, so
// the file can be re-thresholded downstream.
func writeResultsCSV(path string, results []enrichment.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeExportWriteFailed, "creating CSV export file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"term_id", "description", "category",
		"p_value", "fdr", "fold_enrichment",
		"overlap", "term_size", "query_size", "background_size",
		"genes",
	}
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, errors.ErrCodeExportWriteFailed, "writing CSV header")
	}

	for _, r := range results {
		record := []string{
			r.TermID,
			r.Description,
			r.Category,
			strconv.FormatFloat(r.PValue, 'g', -1, 64),
			strconv.FormatFloat(r.FDR, 'g', -1, 64),
			strconv.FormatFloat(r.Fold, 'f', 2, 64),
			strconv.Itoa(r.Overlap),
			strconv.Itoa(r.TermSize),
			strconv.Itoa(r.QuerySize),
			strconv.Itoa(r.Background),
			strings.Join(r.Genes, ";"),
		}
		if err := w.Write(record); err != nil {
			return errors.Wrap(err, errors.ErrCodeExportWriteFailed, "writing CSV row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, errors.ErrCodeExportWriteFailed, "flushing CSV export")
	}
	return nil
}

// writeTreeJSON exports the dendrogram arena as indented JSON.
func writeTreeJSON(path string, tree *cluster.Tree) error {
	if tree == nil {
		return errors.New(errors.ErrCodeClusterInsufficientData,
			"no dendrogram was built; fewer than two rows were eligible for clustering")
	}

	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "encoding dendrogram as JSON")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, errors.ErrCodeExportWriteFailed, "writing dendrogram export file")
	}
	return nil
}
