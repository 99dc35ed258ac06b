package graph

import "testing"

func TestSanitizeRelation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		relation string
		want     string
	}{
		{
			name:     "valid relation unchanged",
			relation: "agrees_to",
			want:     "agrees_to",
		},
		{
			name:     "spaces become underscores",
			relation: "must not sue",
			want:     "must_not_sue",
		},
		{
			name:     "symbols become underscores",
			relation: "shared-with/sold",
			want:     "shared_with_sold",
		},
		{
			name:     "surrounding whitespace trimmed",
			relation: "  governs  ",
			want:     "governs",
		},
		{
			name:     "empty falls back",
			relation: "",
			want:     "RELATED",
		},
		{
			name:     "whitespace only falls back",
			relation: "   ",
			want:     "RELATED",
		},
		{
			name:     "unicode becomes underscores",
			relation: "gehört_zu",
			want:     "geh_rt_zu",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeRelation(tc.relation)
			if got != tc.want {
				t.Fatalf("SanitizeRelation(%q) = %q, want %q", tc.relation, got, tc.want)
			}
			if again := SanitizeRelation(got); again != got {
				t.Fatalf("SanitizeRelation not idempotent: %q -> %q", got, again)
			}
		})
	}
}
