package segment

import (
	"reflect"
	"strings"
	"testing"
)

func TestClauses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "  \n\t\n  ",
			want: nil,
		},
		{
			name: "two sentences",
			text: "You agree to the terms. The company may change them.",
			want: []string{
				"You agree to the terms.",
				"The company may change them.",
			},
		},
		{
			name: "sentence spanning lines",
			text: "This is a\nsingle sentence.",
			want: []string{"This is a single sentence."},
		},
		{
			name: "blank line separates unterminated clauses",
			text: "First clause\n\nSecond clause",
			want: []string{"First clause", "Second clause"},
		},
		{
			name: "numbered list marker stays attached",
			text: "1. You must be 18 years old.",
			want: []string{"1. You must be 18 years old."},
		},
		{
			name: "numbered item after section reference",
			text: "See section 5. 6. Liability is limited",
			want: []string{"See section 5.", "6. Liability is limited"},
		},
		{
			name: "closing parenthesis starts new clause",
			text: "(a) No refunds",
			want: []string{"(a)", "No refunds"},
		},
		{
			name: "closing quote attaches to sentence",
			text: `He said "stop." Then left.`,
			want: []string{`He said "stop."`, "Then left."},
		},
		{
			name: "exclamation and question marks terminate",
			text: "Do not share your password! Why? Because it is secret.",
			want: []string{
				"Do not share your password!",
				"Why?",
				"Because it is secret.",
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Clauses(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Clauses(%q) = %#v, want %#v", tc.text, got, tc.want)
			}
		})
	}
}

func TestClausesPreserveCharacters(t *testing.T) {
	t.Parallel()

	stripSpace := func(s string) string {
		return strings.Join(strings.Fields(s), "")
	}

	inputs := []string{
		"You agree to the terms. The company may change them.",
		"1. First clause. 2. Second clause.",
		"(a) No refunds (b) No warranty",
		"Multi\nline\ninput without terminal punctuation",
	}

	for _, input := range inputs {
		var joined strings.Builder
		for _, clause := range Clauses(input) {
			joined.WriteString(clause)
		}
		if got, want := stripSpace(joined.String()), stripSpace(input); got != want {
			t.Fatalf("Clauses(%q) lost characters:\ngot  %q\nwant %q", input, got, want)
		}
	}
}

func TestClausesNeverEmpty(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"a. . b",
		"...",
		"( ) ( )",
		"1.\n2.\n3.",
	}

	for _, input := range inputs {
		for _, clause := range Clauses(input) {
			if strings.TrimSpace(clause) == "" {
				t.Fatalf("Clauses(%q) produced empty clause", input)
			}
			if clause != strings.TrimSpace(clause) {
				t.Fatalf("Clauses(%q) produced untrimmed clause %q", input, clause)
			}
		}
	}
}
