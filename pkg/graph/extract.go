package graph

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tos-analyser/backend/internal/util"
	"github.com/tos-analyser/backend/pkg/ai"
	"github.com/tos-analyser/backend/pkg/common"
	"github.com/tos-analyser/backend/pkg/logger"
)

// A triple line is a full line of the form (subject, relation, object)
// with exactly three comma-free fields.
var tripleLineRe = regexp.MustCompile(`^\(\s*([^,]+?)\s*,\s*([^,]+?)\s*,\s*([^,]+?)\s*\)$`)

// ParseTriples extracts (subject, relation, object) triples from a
// model response. Lines that do not match the expected shape or carry
// an empty field are skipped; relations are sanitized into valid
// relationship types.
func ParseTriples(response string) []common.Triple {
	var triples []common.Triple
	for _, line := range strings.Split(response, "\n") {
		m := tripleLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}

		subject := strings.TrimSpace(m[1])
		relation := strings.TrimSpace(m[2])
		object := strings.TrimSpace(m[3])
		if subject == "" || relation == "" || object == "" {
			continue
		}

		triples = append(triples, common.Triple{
			Subject:  subject,
			Relation: SanitizeRelation(relation),
			Object:   object,
		})
	}
	return triples
}

// extractTriples asks the model for the triples of one clause. Model
// failures are logged and yield no triples so that ingestion of the
// remaining clauses continues.
func (p *Pipeline) extractTriples(ctx context.Context, clause string) []common.Triple {
	prompt := fmt.Sprintf(ai.ExtractTriplesPrompt, clause)

	response, err := util.RetryWithContext(ctx, p.maxRetries, func(ctx context.Context) (string, error) {
		return p.ai.GenerateCompletion(ctx, prompt)
	})
	if err != nil {
		logger.Warn("triple extraction failed, skipping clause", "error", err)
		return nil
	}

	return ParseTriples(response)
}
