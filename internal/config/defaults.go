// Package config provides configuration loading, defaults, and validation for
// the GeneSet-Insight engine.
package config

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultAlpha = 0.05

	DefaultMinOverlap = 2
	DefaultMaxLeaves  = 0 // unlimited

	DefaultMetricsNamespace = "gsinsight"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ─────────────────────────────────────────────────────────────────────────────
// ApplyDefaults fills zero-value fields in cfg with well-known defaults.
// It must be called after unmarshalling raw config data and before Validate()
// so that optional-but-defaulted fields are never seen as missing.
// ─────────────────────────────────────────────────────────────────────────────

// ApplyDefaults fills every zero-value field in cfg with the engine default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Analysis ──────────────────────────────────────────────────────────────
	// Alpha == 0 cannot be an explicit setting because Validate rejects it,
	// so the zero value always means "not set".
	if cfg.Analysis.Alpha == 0 {
		cfg.Analysis.Alpha = DefaultAlpha
	}
	// DefaultCategory and MaxQueryGenes keep their zero values: empty category
	// means "all categories" and 0 means "no limit".

	// ── Cluster ───────────────────────────────────────────────────────────────
	if cfg.Cluster.MinOverlap == 0 {
		cfg.Cluster.MinOverlap = DefaultMinOverlap
	}
	// MaxLeaves == 0 is a valid explicit value (unlimited), which is also the
	// default, so no fill is needed.

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
