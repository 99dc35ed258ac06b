package common

import (
	"fmt"
	"strings"
)

// Chunk represents a single segmented clause of a Terms of Service
// document, persisted together with its embedding vector.
//
// The ID is generated at persistence time and never derived from the
// clause's position, so re-ingesting a document produces fresh IDs.
// DocID partitions chunks by source document and acts as the retrieval
// namespace.
type Chunk struct {
	ID        string    `json:"id"`
	DocID     string    `json:"doc_id"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
}

// Triple is a directed (subject, relation, object) fact extracted from
// a chunk. The relation name is sanitized before persistence: it only
// ever contains alphanumerics and underscores.
type Triple struct {
	Subject  string `json:"subject"`
	Relation string `json:"relation"`
	Object   string `json:"object"`
}

// ScoredChunk is a vector similarity hit returned by the graph store.
// Results are ordered by descending score and must not be re-sorted.
type ScoredChunk struct {
	Text    string  `json:"text"`
	ChunkID string  `json:"chunk_id"`
	Score   float64 `json:"score"`
}

// AnalysisRecord is a single structured verdict about one clause of a
// Terms of Service document. Records are transient: they are returned
// to the caller and never persisted.
type AnalysisRecord struct {
	ClauseText   string `json:"clause_text"`
	Label        string `json:"label"`
	Reasoning    string `json:"reasoning"`
	RiskCategory string `json:"risk_category"`
}

// Labels a clause can be assigned outside the risky set.
const (
	LabelFair    = "Fair"
	LabelNeutral = "Neutral"

	// RiskyLabelPrefix prefixes every risky label, e.g. "Risky: Termination".
	RiskyLabelPrefix = "Risky: "
)

// RiskCategories is the closed enumeration of recognized risk categories.
var RiskCategories = []string{
	"Data & Privacy",
	"Liability",
	"Dispute Resolution",
	"Unilateral Changes",
	"Content & IP",
	"Termination",
}

// IsRiskCategory reports whether cat is part of the closed enumeration.
func IsRiskCategory(cat string) bool {
	for _, c := range RiskCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// IsRiskyLabel reports whether label is a well-formed risky label, i.e.
// the risky prefix followed by a recognized category.
func IsRiskyLabel(label string) bool {
	if !strings.HasPrefix(label, RiskyLabelPrefix) {
		return false
	}
	return IsRiskCategory(strings.TrimPrefix(label, RiskyLabelPrefix))
}

// Validate checks an AnalysisRecord against the closed label and
// category sets. Records failing validation are dropped by the caller,
// never silently coerced.
func (r AnalysisRecord) Validate() error {
	if strings.TrimSpace(r.ClauseText) == "" {
		return fmt.Errorf("empty clause_text")
	}
	switch {
	case r.Label == LabelFair || r.Label == LabelNeutral:
		if r.RiskCategory != "" {
			return fmt.Errorf("label %q must not carry a risk_category", r.Label)
		}
	case IsRiskyLabel(r.Label):
		if want := strings.TrimPrefix(r.Label, RiskyLabelPrefix); r.RiskCategory != want {
			return fmt.Errorf("risk_category %q does not match label %q", r.RiskCategory, r.Label)
		}
	default:
		return fmt.Errorf("label %q is not in the closed label set", r.Label)
	}
	return nil
}
