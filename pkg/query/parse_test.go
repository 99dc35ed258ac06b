package query

import (
	"testing"

	"github.com/tos-analyser/backend/pkg/common"
)

func TestParseAnalysisRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{
			name: "strict array",
			raw:  `[{"clause_text": "a", "label": "Fair", "reasoning": "r", "risk_category": ""}]`,
			want: 1,
		},
		{
			name: "single object",
			raw:  `{"clause_text": "a", "label": "Neutral", "reasoning": "r", "risk_category": ""}`,
			want: 1,
		},
		{
			name: "concatenated objects",
			raw:  `{"clause_text": "a", "label": "Fair"}{"clause_text": "b", "label": "Neutral"}`,
			want: 2,
		},
		{
			name: "array in code fence",
			raw:  "```json\n[{\"clause_text\": \"a\", \"label\": \"Fair\"}]\n```",
			want: 1,
		},
		{
			name: "objects surrounded by prose",
			raw:  "Here is my analysis:\n{\"clause_text\": \"a\", \"label\": \"Fair\"}\nDone!",
			want: 1,
		},
		{
			name: "single quotes repaired",
			raw:  `{'clause_text': 'a', 'label': 'Fair'}`,
			want: 1,
		},
		{
			name:    "empty response",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "no json at all",
			raw:     "I cannot analyze this document.",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAnalysisRecords(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseAnalysisRecords(%q) expected error, got %#v", tc.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAnalysisRecords(%q): %v", tc.raw, err)
			}
			if len(got) != tc.want {
				t.Fatalf("ParseAnalysisRecords(%q) = %d records, want %d", tc.raw, len(got), tc.want)
			}
		})
	}
}

func TestParseAnalysisRecordsFieldValues(t *testing.T) {
	t.Parallel()

	raw := `[{"clause_text": "We may share data.", "label": "Risky: Data & Privacy", "reasoning": "Broad sharing.", "risk_category": "Data & Privacy"}]`
	got, err := ParseAnalysisRecords(raw)
	if err != nil {
		t.Fatalf("ParseAnalysisRecords: %v", err)
	}

	want := common.AnalysisRecord{
		ClauseText:   "We may share data.",
		Label:        "Risky: Data & Privacy",
		Reasoning:    "Broad sharing.",
		RiskCategory: "Data & Privacy",
	}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("ParseAnalysisRecords = %#v, want [%#v]", got, want)
	}
}
