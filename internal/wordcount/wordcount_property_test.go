//go:build property

package wordcount

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestWordCountProperties validates invariants of the counting algorithm
// over generated inputs.
func TestWordCountProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(4242)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	wordGen := gen.RegexMatch(`[a-z]{3,8}`)
	textGen := gen.SliceOf(wordGen).Map(func(words []string) string {
		return strings.Join(words, " ")
	})

	// Property: counting is a pure function of the content
	properties.Property("counting twice yields identical tables", prop.ForAll(
		func(text string) bool {
			first, err1 := Count(strings.NewReader(text))
			second, err2 := Count(strings.NewReader(text))
			if err1 != nil || err2 != nil {
				return false
			}
			if len(first) != len(second) {
				return false
			}
			for i := range first {
				if first[i] != second[i] {
					return false
				}
			}
			return true
		},
		textGen,
	))

	// Property: the table never exceeds the truncation bound
	properties.Property("table length is at most ten", prop.ForAll(
		func(text string) bool {
			table, err := Count(strings.NewReader(text))
			return err == nil && len(table) <= MaxEntries
		},
		textGen,
	))

	// Property: counts are sorted descending
	properties.Property("counts descend monotonically", prop.ForAll(
		func(text string) bool {
			table, err := Count(strings.NewReader(text))
			if err != nil {
				return false
			}
			for i := 1; i < len(table); i++ {
				if table[i-1].Count < table[i].Count {
					return false
				}
			}
			return true
		},
		textGen,
	))

	// Property: every counted word is lowercase, at least three runes long,
	// and contains only allowed characters
	properties.Property("entries are normalized survivors", prop.ForAll(
		func(text string) bool {
			table, err := Count(strings.NewReader(strings.ToUpper(text)))
			if err != nil {
				return false
			}
			for _, entry := range table {
				if entry.Word != strings.ToLower(entry.Word) {
					return false
				}
				if len([]rune(entry.Word)) < minWordLength {
					return false
				}
				for _, r := range entry.Word {
					if !allowedRune(r) {
						return false
					}
				}
				if entry.Count < 1 {
					return false
				}
			}
			return true
		},
		textGen,
	))

	// Property: total of reported counts never exceeds the token count
	properties.Property("reported counts bounded by token count", prop.ForAll(
		func(text string) bool {
			table, err := Count(strings.NewReader(text))
			if err != nil {
				return false
			}
			total := 0
			for _, entry := range table {
				total += entry.Count
			}
			return total <= len(strings.Fields(text))
		},
		textGen,
	))

	properties.TestingRun(t)
}
