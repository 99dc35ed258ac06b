// Package segment splits raw document text into self-contained clauses,
// the atomic retrieval granule of the system.
package segment

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var (
	// "...end. 2. Next...": a period directly followed by a numbered
	// list item starts a new clause.
	numberedItemRe = regexp.MustCompile(`\.\s*\d+\.`)
	// "(a) Foo": a closing parenthesis followed by a word starts a
	// new clause.
	parenWordRe = regexp.MustCompile(`\)\s*[0-9A-Za-z_]`)
)

// Clauses splits text into an ordered sequence of trimmed clause
// strings. The result never contains empty or whitespace-only entries;
// empty or unparsable input yields an empty sequence.
func Clauses(text string) []string {
	var clauses []string
	for _, sentence := range splitIntoSentences(text) {
		for _, part := range splitClauseBoundaries(sentence) {
			part = strings.TrimSpace(part)
			if part != "" {
				clauses = append(clauses, part)
			}
		}
	}
	return clauses
}

// splitIntoSentences groups lines into sentence-like units. Sentences
// may span lines; a blank line always ends the current sentence.
func splitIntoSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		for _, sentence := range splitLineIntoSentences(trimmed) {
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(sentence)

			end := strings.TrimSpace(sentence)
			if strings.HasSuffix(end, ".") ||
				strings.HasSuffix(end, "!") ||
				strings.HasSuffix(end, "?") {
				flush()
			}
		}
	}
	flush()

	return sentences
}

// splitLineIntoSentences splits a single line at terminal punctuation.
// A period that closes a numbered list marker ("2. ") does not end a
// sentence; trailing punctuation runs and closing quotes or brackets
// stick to the sentence they terminate.
func splitLineIntoSentences(line string) []string {
	var sentences []string
	var current strings.Builder

	for i := 0; i < len(line); i++ {
		current.WriteByte(line[i])

		if line[i] != '.' && line[i] != '!' && line[i] != '?' {
			continue
		}

		isNumericListing := i > 0 &&
			unicode.IsDigit(rune(line[i-1])) &&
			i+1 < len(line) && line[i+1] == ' '
		if isNumericListing {
			continue
		}

		j := i + 1
		for j < len(line) && (line[j] == '.' || line[j] == '!' || line[j] == '?') {
			current.WriteByte(line[j])
			j++
		}
		for j < len(line) && (line[j] == '"' || line[j] == '\'' || line[j] == ')' ||
			line[j] == ']' || line[j] == '}') {
			current.WriteByte(line[j])
			j++
		}

		sentence := strings.TrimSpace(current.String())
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		current.Reset()
		i = j - 1
	}

	remaining := strings.TrimSpace(current.String())
	if remaining != "" {
		sentences = append(sentences, remaining)
	}

	return sentences
}

// splitClauseBoundaries cuts a sentence at numbered-list and
// closing-parenthesis boundaries the sentence splitter keeps together.
func splitClauseBoundaries(s string) []string {
	cutSet := make(map[int]struct{})
	for _, loc := range numberedItemRe.FindAllStringIndex(s, -1) {
		cutSet[loc[0]+1] = struct{}{}
	}
	for _, loc := range parenWordRe.FindAllStringIndex(s, -1) {
		cutSet[loc[0]+1] = struct{}{}
	}
	if len(cutSet) == 0 {
		return []string{s}
	}

	cuts := make([]int, 0, len(cutSet))
	for c := range cutSet {
		cuts = append(cuts, c)
	}
	sort.Ints(cuts)

	var parts []string
	prev := 0
	for _, c := range cuts {
		parts = append(parts, s[prev:c])
		prev = c
	}
	parts = append(parts, s[prev:])

	return parts
}
