package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ontomix/GeneSet-Insight/internal/application/analysis"
	"github.com/ontomix/GeneSet-Insight/internal/domain/enrichment"
	"github.com/ontomix/GeneSet-Insight/internal/infrastructure/annotation"
	"github.com/ontomix/GeneSet-Insight/internal/infrastructure/monitoring/logging"
	"github.com/ontomix/GeneSet-Insight/pkg/errors"
)

var (
	analyzeAnnotations string
	analyzeCategory    string
	analyzeMapping     string
	analyzeNames       string
	analyzeAliases     string
	analyzeGenes       string
	analyzeAlpha       float64
	analyzeCSVPath     string
	analyzeTreePath    string
)

// NewAnalyzeCmd creates the analyze command with its terms and pathways
// subcommands.
func NewAnalyzeCmd() *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run over-representation analysis on a query gene list",
		Long:  "Test a query gene list for annotation terms or pathways that contain\nmore query genes than membership size alone would predict.",
	}

	termsCmd := &cobra.Command{
		Use:   "terms",
		Short: "Test ontology terms from a GMT annotation file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyzeTerms(cmd)
		},
	}
	termsCmd.Flags().StringVar(&analyzeAnnotations, "annotations", "", "GMT annotation file (required)")
	termsCmd.Flags().StringVar(&analyzeCategory, "category", "", "restrict the run to one annotation category (e.g. BP)")

	pathwaysCmd := &cobra.Command{
		Use:   "pathways",
		Short: "Test pathway membership with alias-aware identifier resolution",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyzePathways(cmd)
		},
	}
	pathwaysCmd.Flags().StringVar(&analyzeMapping, "mapping", "", "gene-to-pathway mapping file (required)")
	pathwaysCmd.Flags().StringVar(&analyzeNames, "names", "", "pathway display name file")
	pathwaysCmd.Flags().StringVar(&analyzeAliases, "aliases", "", "gene alias table enabling fallback resolution")

	for _, c := range []*cobra.Command{termsCmd, pathwaysCmd} {
		c.Flags().StringVar(&analyzeGenes, "genes", "", "query gene list file (required)")
		c.Flags().Float64Var(&analyzeAlpha, "alpha", 0, "FDR significance threshold for this run (0 uses configuration)")
		c.Flags().StringVar(&analyzeCSVPath, "csv", "", "write all result rows to a CSV file")
		c.Flags().StringVar(&analyzeTreePath, "tree", "", "write the dendrogram to a JSON file")
		c.MarkFlagRequired("genes")
	}
	termsCmd.MarkFlagRequired("annotations")
	pathwaysCmd.MarkFlagRequired("mapping")

	analyzeCmd.AddCommand(termsCmd, pathwaysCmd)
	return analyzeCmd
}

func runAnalyzeTerms(cmd *cobra.Command) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	if err := validateAnalyzeFlags(); err != nil {
		return err
	}

	mapping, err := readAnnotations(analyzeAnnotations)
	if err != nil {
		return err
	}
	genes, err := readGeneList(analyzeGenes)
	if err != nil {
		return err
	}

	cliCtx.Logger.Info("starting term analysis",
		logging.String("annotations", analyzeAnnotations),
		logging.String("category", analyzeCategory),
		logging.Int("query_size", len(genes)))

	report, err := cliCtx.Service.RunEnrichment(cmd.Context(), &analysis.Request{
		Genes:    genes,
		Mapping:  mapping,
		Category: analyzeCategory,
		Alpha:    analyzeAlpha,
	})
	if err != nil {
		return err
	}

	return emitReport(cmd, cliCtx, report)
}

func runAnalyzePathways(cmd *cobra.Command) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	if err := validateAnalyzeFlags(); err != nil {
		return err
	}

	mapping, err := readPathwayMapping(analyzeMapping)
	if err != nil {
		return err
	}
	genes, err := readGeneList(analyzeGenes)
	if err != nil {
		return err
	}

	var names map[string]string
	if analyzeNames != "" {
		if names, err = readPathwayNames(analyzeNames); err != nil {
			return err
		}
	}
	var aliases enrichment.AliasTable
	if analyzeAliases != "" {
		if aliases, err = readAliasTable(analyzeAliases); err != nil {
			return err
		}
	}

	cliCtx.Logger.Info("starting pathway analysis",
		logging.String("mapping", analyzeMapping),
		logging.Bool("aliases", aliases != nil),
		logging.Int("query_size", len(genes)))

	report, err := cliCtx.Service.RunPathwayEnrichment(cmd.Context(), &analysis.PathwayRequest{
		Genes:   genes,
		Mapping: mapping,
		Names:   names,
		Aliases: aliases,
		Alpha:   analyzeAlpha,
	})
	if err != nil {
		return err
	}

	return emitReport(cmd, cliCtx, report)
}

// validateAnalyzeFlags checks the flags shared by both analyze subcommands.
func validateAnalyzeFlags() error {
	if analyzeAlpha < 0 || analyzeAlpha > 1 {
		return errors.Newf(errors.ErrCodeValidation, "alpha %g is out of range (0, 1]", analyzeAlpha)
	}
	return nil
}

// emitReport writes requested export artifacts first, then prints the report
// in the selected output format.
func emitReport(cmd *cobra.Command, cliCtx *CLIContext, report *analysis.Report) error {
	alpha := analyzeAlpha
	if alpha <= 0 {
		alpha = cliCtx.Config.Analysis.Alpha
	}

	if analyzeCSVPath != "" {
		if err := writeResultsCSV(analyzeCSVPath, report.Results); err != nil {
			return err
		}
		cliCtx.Logger.Info("results exported", logging.String("path", analyzeCSVPath))
	}
	if analyzeTreePath != "" {
		if err := writeTreeJSON(analyzeTreePath, report.Tree); err != nil {
			return err
		}
		cliCtx.Logger.Info("dendrogram exported", logging.String("path", analyzeTreePath))
	}

	return PrintResult(cmd, newReportView(report, alpha))
}

// ── Input file readers ────────────────────────────────────────────────────────

func readAnnotations(path string) (map[string][]enrichment.TermRef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAnnotationSourceIO, "opening annotation file")
	}
	defer f.Close()
	return annotation.ParseGMT(f)
}

func readGeneList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAnnotationSourceIO, "opening gene list file")
	}
	defer f.Close()
	return annotation.ParseGeneList(f)
}

func readPathwayMapping(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAnnotationSourceIO, "opening pathway mapping file")
	}
	defer f.Close()
	return annotation.ParsePathwayMapping(f)
}

func readPathwayNames(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAnnotationSourceIO, "opening pathway name file")
	}
	defer f.Close()
	return annotation.ParsePathwayNames(f)
}

func readAliasTable(path string) (enrichment.AliasTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAnnotationSourceIO, "opening alias table file")
	}
	defer f.Close()
	return annotation.ParseGeneAliases(f)
}

// ── Report rendering ──────────────────────────────────────────────────────────

// reportView pairs a report with the significance threshold its rows were
// selected under, for rendering purposes only.
type reportView struct {
	*analysis.Report
	Alpha float64 `json:"alpha"`
}

func newReportView(report *analysis.Report, alpha float64) *reportView {
	return &reportView{Report: report, Alpha: alpha}
}

func (v *reportView) significant(r enrichment.Result) bool {
	return r.FDR <= v.Alpha
}

// String renders the report for terminal reading.
func (v *reportView) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Enrichment run %s (%s)\n", v.RunID, v.Mode)
	fmt.Fprintf(&sb, "Query: %d genes (%d mapped, %d unmapped), %d terms tested\n",
		v.Stats.Total, v.Stats.Mapped, len(v.Stats.Unmapped), v.Stats.TermsTotal)

	significant := 0
	for _, r := range v.Results {
		if v.significant(r) {
			significant++
		}
	}
	fmt.Fprintf(&sb, "Significant at FDR <= %g: %d of %d rows\n", v.Alpha, significant, len(v.Results))

	if len(v.Results) > 0 {
		sb.WriteString("\n")
	}
	for _, r := range v.Results {
		fdr := fmt.Sprintf("%.3e", r.FDR)
		if v.significant(r) {
			fdr = color.GreenString(fdr)
		}
		fmt.Fprintf(&sb, "  %-14s %-40s p=%.3e FDR=%s fold=%.2f overlap=%d/%d\n",
			r.TermID, truncateString(r.Description, 40), r.PValue, fdr, r.Fold, r.Overlap, r.TermSize)
	}

	if len(v.Stats.Unmapped) > 0 {
		fmt.Fprintf(&sb, "\nUnmapped: %s\n", previewList(v.Stats.Unmapped, 10))
	}

	switch {
	case v.Tree != nil:
		fmt.Fprintf(&sb, "\nDendrogram: %d leaves, root height %.4f\n",
			v.Tree.LeafCount(), v.Tree.RootNode().Height)
	case len(v.EligibleForClustering) == 1:
		sb.WriteString("\nDendrogram: not built (only one eligible row)\n")
	default:
		sb.WriteString("\nDendrogram: not built (no eligible rows)\n")
	}

	return sb.String()
}

// TableHeaders implements tableProvider.
func (v *reportView) TableHeaders() []string {
	return []string{"TERM", "DESCRIPTION", "CATEGORY", "P-VALUE", "FDR", "FOLD", "OVERLAP"}
}

// TableRows implements tableProvider.
func (v *reportView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Results))
	for _, r := range v.Results {
		fdr := fmt.Sprintf("%.3e", r.FDR)
		if v.significant(r) {
			fdr = color.GreenString(fdr)
		}
		rows = append(rows, []string{
			r.TermID,
			truncateString(r.Description, 40),
			r.Category,
			fmt.Sprintf("%.3e", r.PValue),
			fdr,
			fmt.Sprintf("%.2f", r.Fold),
			fmt.Sprintf("%d/%d", r.Overlap, r.TermSize),
		})
	}
	return rows
}

// previewList joins up to max elements, noting how many were left out.
func previewList(items []string, max int) string {
	if len(items) <= max {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s, … and %d more", strings.Join(items[:max], ", "), len(items)-max)
}
