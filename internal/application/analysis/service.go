// Package analysis provides the application-level service for enrichment runs.
// It wires identifier resolution, the hypergeometric engine, FDR correction
// and dendrogram construction into one pipeline, and is the single entry point
// for the CLI and for hosts that embed the engine as a library.
package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ontomix/GeneSet-Insight/internal/config"
	"github.com/ontomix/GeneSet-Insight/internal/domain/cluster"
	"github.com/ontomix/GeneSet-Insight/internal/domain/enrichment"
	"github.com/ontomix/GeneSet-Insight/internal/domain/stats"
	"github.com/ontomix/GeneSet-Insight/internal/infrastructure/monitoring/logging"
	"github.com/ontomix/GeneSet-Insight/internal/infrastructure/monitoring/prometheus"
	"github.com/ontomix/GeneSet-Insight/pkg/errors"
)

// Analysis modes, reported in Report.Mode and used as metric label values.
const (
	ModeTerms    = "terms"
	ModePathways = "pathways"
)

// Service defines the interface for enrichment application operations.
type Service interface {
	RunEnrichment(ctx context.Context, input *Request) (*Report, error)
	RunPathwayEnrichment(ctx context.Context, input *PathwayRequest) (*Report, error)
}

// Request contains input for an ontology-term enrichment run.
type Request struct {
	// Genes is the query identifier list. Duplicates are collapsed by the
	// engine and reported once in the overlap counts.
	Genes []string

	// Mapping annotates every background gene with its term references.
	// Genes without annotations still belong here — they count toward the
	// population size.
	Mapping map[string][]enrichment.TermRef

	// Category restricts the run to one annotation category. Empty falls
	// back to analysis.default_category from the configuration; both empty
	// means all categories.
	Category string

	// Alpha overrides analysis.alpha for this run when > 0.
	Alpha float64
}

// PathwayRequest contains input for a pathway enrichment run.
type PathwayRequest struct {
	Genes   []string
	Mapping map[string][]string

	// Names supplies display names per pathway id; ids without an entry fall
	// back to the id itself.
	Names map[string]string

	// Aliases enables the alias fallback chain during identifier resolution.
	// Nil means exact matching only.
	Aliases enrichment.AliasTable

	// Alpha overrides analysis.alpha for this run when > 0.
	Alpha float64
}

// Report is the complete outcome of one enrichment run.
type Report struct {
	RunID   string                `json:"run_id"`
	Mode    string                `json:"mode"`
	Results []enrichment.Result   `json:"results"`
	Stats   enrichment.QueryStats `json:"stats"`

	// Tree is nil when fewer than two result rows were eligible for
	// clustering. That outcome is ordinary, not an error.
	Tree *cluster.Tree `json:"tree,omitempty"`

	// EligibleForClustering lists the term ids that passed the clustering
	// eligibility filter, in ascending p-value order. Matches Tree's leaf
	// labels when Tree is set.
	EligibleForClustering []string `json:"eligible_for_clustering,omitempty"`

	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

// serviceImpl implements the Service interface.
type serviceImpl struct {
	cfg     *config.Config
	engine  *enrichment.Engine
	logger  logging.Logger
	metrics *prometheus.AnalysisMetrics
}

// Deps carries the collaborators for NewService. Config and Logger fall back
// to engine defaults and a no-op logger when nil; a nil Metrics disables
// instrumentation.
type Deps struct {
	Config  *config.Config
	Logger  logging.Logger
	Metrics *prometheus.AnalysisMetrics
}

// NewService creates a new analysis application service. The log-factorial
// table behind the hypergeometric test is shared across all runs of the
// instance, so its cache keeps growing toward the largest background seen.
func NewService(deps Deps) Service {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{}
		config.ApplyDefaults(cfg)
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &serviceImpl{
		cfg:     cfg,
		engine:  enrichment.NewEngine(stats.NewHypergeometricTest(stats.NewLogFactorialTable())),
		logger:  logger.Named("analysis"),
		metrics: deps.Metrics,
	}
}

func (s *serviceImpl) RunEnrichment(ctx context.Context, input *Request) (*Report, error) {
	if input == nil {
		return nil, errors.New(errors.ErrCodeBadRequest, "request is nil")
	}
	if err := s.validateQuery(ModeTerms, input.Genes); err != nil {
		return nil, err
	}

	category := input.Category
	if category == "" {
		category = s.cfg.Analysis.DefaultCategory
	}
	bg := enrichment.NewBackground(input.Mapping, category)

	return s.run(ctx, ModeTerms, input.Genes, bg, nil, input.Alpha)
}

func (s *serviceImpl) RunPathwayEnrichment(ctx context.Context, input *PathwayRequest) (*Report, error) {
	if input == nil {
		return nil, errors.New(errors.ErrCodeBadRequest, "request is nil")
	}
	if err := s.validateQuery(ModePathways, input.Genes); err != nil {
		return nil, err
	}

	bg := enrichment.NewPathwayBackground(input.Mapping, input.Names)
	var resolver enrichment.Resolver
	if input.Aliases != nil {
		resolver = enrichment.NewAliasResolver(bg, input.Aliases)
	}

	return s.run(ctx, ModePathways, input.Genes, bg, resolver, input.Alpha)
}

// validateQuery rejects requests the pipeline must not even start on.
func (s *serviceImpl) validateQuery(mode string, genes []string) error {
	if len(genes) == 0 {
		err := errors.New(errors.ErrCodeQueryEmpty, "query gene list is empty")
		s.reject(mode, err)
		return err
	}
	if limit := s.cfg.Analysis.MaxQueryGenes; limit > 0 && len(genes) > limit {
		err := errors.Newf(errors.ErrCodeBadRequest, "query has %d genes, limit is %d", len(genes), limit)
		s.reject(mode, err)
		return err
	}
	return nil
}

func (s *serviceImpl) reject(mode string, err error) {
	s.logger.Warn("request rejected",
		logging.String("mode", mode),
		logging.Err(err))
	prometheus.RecordError(s.metrics, "validation", errors.GetCode(err).String())
}

// run executes the shared pipeline: enrich, correct, select, cluster.
func (s *serviceImpl) run(ctx context.Context, mode string, genes []string, bg *enrichment.Background, resolver enrichment.Resolver, alphaOverride float64) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := s.logger.With(
		logging.String("run_id", runID),
		logging.String("mode", mode))
	start := time.Now()

	if bg.Size() == 0 {
		err := errors.New(errors.ErrCodeBackgroundEmpty, "background annotation set is empty")
		log.Error("run aborted", logging.Err(err))
		s.fail(mode, start, "background", err, enrichment.QueryStats{Total: len(genes)}, 0)
		return nil, err
	}

	log.Info("run started",
		logging.Int("query_size", len(genes)),
		logging.Int("population", bg.Size()),
		logging.Int("terms", bg.TermCount()))

	results, qstats := s.engine.Enrich(genes, bg, resolver)

	results, err := enrichment.ApplyFDR(results)
	if err != nil {
		log.Error("fdr correction failed", logging.Err(err))
		s.fail(mode, start, "fdr", err, qstats, 0)
		return nil, err
	}

	alpha := alphaOverride
	if alpha <= 0 {
		alpha = s.cfg.Analysis.Alpha
	}

	labels, sets := s.clusterInput(results, alpha)
	var tree *cluster.Tree
	if len(labels) >= 2 {
		matrix, cerr := cluster.JaccardDistances(labels, sets)
		if cerr == nil {
			tree, cerr = cluster.UPGMA(matrix)
		}
		if cerr != nil {
			log.Error("dendrogram construction failed", logging.Err(cerr))
			s.fail(mode, start, "cluster", cerr, qstats, len(results))
			return nil, cerr
		}
	} else {
		log.Info("dendrogram skipped",
			logging.Int("eligible", len(labels)),
			logging.Float64("alpha", alpha))
	}
	prometheus.RecordDendrogram(s.metrics, tree != nil, len(labels))

	duration := time.Since(start)
	prometheus.RecordRun(s.metrics, mode, true, duration, qstats.TermsTotal, len(results), qstats.Total, len(qstats.Unmapped))
	log.Info("run finished",
		logging.Int("rows", len(results)),
		logging.Int("unmapped", len(qstats.Unmapped)),
		logging.Bool("dendrogram", tree != nil),
		logging.Duration("duration", duration))

	return &Report{
		RunID:                 runID,
		Mode:                  mode,
		Results:               results,
		Stats:                 qstats,
		Tree:                  tree,
		EligibleForClustering: labels,
		ProcessingTimeMs:      duration.Milliseconds(),
	}, nil
}

// fail records the metrics for a run that aborted partway.
func (s *serviceImpl) fail(mode string, start time.Time, component string, err error, qstats enrichment.QueryStats, emitted int) {
	prometheus.RecordError(s.metrics, component, errors.GetCode(err).String())
	prometheus.RecordRun(s.metrics, mode, false, time.Since(start), qstats.TermsTotal, emitted, qstats.Total, len(qstats.Unmapped))
}

// clusterInput selects the rows eligible for dendrogram construction: FDR at
// or below alpha and at least cluster.min_overlap shared genes, capped at
// cluster.max_leaves. Results arrive sorted by ascending p-value, so the cap
// keeps the strongest signals.
func (s *serviceImpl) clusterInput(results []enrichment.Result, alpha float64) ([]string, [][]string) {
	minOverlap := s.cfg.Cluster.MinOverlap
	maxLeaves := s.cfg.Cluster.MaxLeaves

	var labels []string
	var sets [][]string
	for _, r := range results {
		if r.FDR > alpha || r.Overlap < minOverlap {
			continue
		}
		if maxLeaves > 0 && len(labels) == maxLeaves {
			break
		}
		labels = append(labels, r.TermID)
		sets = append(sets, r.Genes)
	}
	return labels, sets
}
