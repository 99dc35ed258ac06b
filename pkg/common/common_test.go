package common

import "testing"

func TestAnalysisRecordValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		record  AnalysisRecord
		wantErr bool
	}{
		{
			name: "fair clause",
			record: AnalysisRecord{
				ClauseText: "You may cancel anytime.",
				Label:      "Fair",
				Reasoning:  "User-friendly cancellation.",
			},
		},
		{
			name: "neutral clause",
			record: AnalysisRecord{
				ClauseText: "These terms are governed by law.",
				Label:      "Neutral",
				Reasoning:  "Standard boilerplate.",
			},
		},
		{
			name: "risky clause with matching category",
			record: AnalysisRecord{
				ClauseText:   "We may share your data.",
				Label:        "Risky: Data & Privacy",
				Reasoning:    "Broad data sharing.",
				RiskCategory: "Data & Privacy",
			},
		},
		{
			name: "empty clause text",
			record: AnalysisRecord{
				Label:     "Fair",
				Reasoning: "r",
			},
			wantErr: true,
		},
		{
			name: "fair with category",
			record: AnalysisRecord{
				ClauseText:   "a",
				Label:        "Fair",
				RiskCategory: "Liability",
			},
			wantErr: true,
		},
		{
			name: "risky with unknown category",
			record: AnalysisRecord{
				ClauseText:   "a",
				Label:        "Risky: Weather",
				RiskCategory: "Weather",
			},
			wantErr: true,
		},
		{
			name: "risky label category mismatch",
			record: AnalysisRecord{
				ClauseText:   "a",
				Label:        "Risky: Liability",
				RiskCategory: "Termination",
			},
			wantErr: true,
		},
		{
			name: "unknown label",
			record: AnalysisRecord{
				ClauseText: "a",
				Label:      "Dangerous",
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.record.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("Validate(%#v) expected error", tc.record)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("Validate(%#v): %v", tc.record, err)
			}
		})
	}
}

func TestIsRiskyLabel(t *testing.T) {
	t.Parallel()

	if !IsRiskyLabel("Risky: Termination") {
		t.Fatal("expected risky label")
	}
	if IsRiskyLabel("Fair") || IsRiskyLabel("Neutral") || IsRiskyLabel("") {
		t.Fatal("unexpected risky label")
	}
}

func TestIsRiskCategory(t *testing.T) {
	t.Parallel()

	for _, category := range RiskCategories {
		if !IsRiskCategory(category) {
			t.Fatalf("expected %q to be recognized", category)
		}
	}
	if IsRiskCategory("Weather") || IsRiskCategory("") {
		t.Fatal("unexpected category recognized")
	}
}
