package query

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tos-analyser/backend/pkg/ai"
	"github.com/tos-analyser/backend/pkg/common"
)

var jsonObjectRe = regexp.MustCompile(`(?s)\{.*?\}`)

// ParseAnalysisRecords recovers analysis records from a model
// response. It tries, in order: a strict JSON array, a strict single
// object, and finally a scan for object-shaped fragments which are
// reassembled into an array and repaired. Responses yielding no
// records at all are an error.
func ParseAnalysisRecords(raw string) ([]common.AnalysisRecord, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty analysis response")
	}

	var records []common.AnalysisRecord
	if err := json.Unmarshal([]byte(raw), &records); err == nil {
		return records, nil
	}

	var single common.AnalysisRecord
	if err := json.Unmarshal([]byte(raw), &single); err == nil && single.ClauseText != "" {
		return []common.AnalysisRecord{single}, nil
	}

	// Models sometimes emit concatenated objects, code fences or prose
	// around the JSON. Collect everything object-shaped and retry as
	// one array.
	fragments := jsonObjectRe.FindAllString(raw, -1)
	if len(fragments) == 0 {
		return nil, fmt.Errorf("no analysis records found in response")
	}

	synthetic := "[" + strings.Join(fragments, ",") + "]"
	if err := ai.UnmarshalFlexible(synthetic, &records); err != nil {
		return nil, fmt.Errorf("recover analysis records: %w", err)
	}
	return records, nil
}
