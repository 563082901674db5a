// Package config defines all configuration structures for the GeneSet-Insight
// engine.  No I/O or parsing logic lives here — only plain data types and
// validation.
package config

import (
	"fmt"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// AnalysisConfig holds over-representation test tunables.
type AnalysisConfig struct {
	// Alpha is the FDR significance threshold used to select rows for
	// downstream clustering and significance marking.  Must be in (0, 1].
	Alpha float64 `mapstructure:"alpha"`

	// DefaultCategory restricts ontology-mode runs to one annotation category
	// (e.g. "BP") when the request does not name a category itself.  Empty
	// means all categories.
	DefaultCategory string `mapstructure:"default_category"`

	// MaxQueryGenes rejects requests with more query identifiers than this
	// limit.  0 disables the limit.
	MaxQueryGenes int `mapstructure:"max_query_genes"`
}

// ClusterConfig holds dendrogram construction tunables.
type ClusterConfig struct {
	// MinOverlap is the minimum number of query genes a significant term must
	// overlap to take part in clustering.  Must be ≥ 1.
	MinOverlap int `mapstructure:"min_overlap"`

	// MaxLeaves caps how many significant terms feed the distance matrix;
	// the matrix and merge loop are quadratic and cubic in this number.
	// 0 disables the cap.
	MaxLeaves int `mapstructure:"max_leaves"`
}

// MetricsConfig holds prometheus registration parameters.
type MetricsConfig struct {
	Namespace            string `mapstructure:"namespace"`
	Subsystem            string `mapstructure:"subsystem"`
	EnableGoMetrics      bool   `mapstructure:"enable_go_metrics"`
	EnableProcessMetrics bool   `mapstructure:"enable_process_metrics"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level       string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the engine.  The application
// service and the CLI read their settings from the relevant sub-struct.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Cluster  ClusterConfig  `mapstructure:"cluster"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Log      LogConfig      `mapstructure:"log"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	// Analysis
	if c.Analysis.Alpha <= 0 || c.Analysis.Alpha > 1 {
		return fmt.Errorf("config: analysis.alpha %g is out of range (0, 1]", c.Analysis.Alpha)
	}
	if c.Analysis.MaxQueryGenes < 0 {
		return fmt.Errorf("config: analysis.max_query_genes must be ≥ 0, got %d", c.Analysis.MaxQueryGenes)
	}

	// Cluster
	if c.Cluster.MinOverlap < 1 {
		return fmt.Errorf("config: cluster.min_overlap must be ≥ 1, got %d", c.Cluster.MinOverlap)
	}
	if c.Cluster.MaxLeaves < 0 {
		return fmt.Errorf("config: cluster.max_leaves must be ≥ 0, got %d", c.Cluster.MaxLeaves)
	}

	// Metrics
	if c.Metrics.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace is required")
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
