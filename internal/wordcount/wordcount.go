// Package wordcount computes ranked word-frequency tables for plain text.
//
// Counting is a pure function of the input: tokens are split on whitespace,
// stripped down to an allow-listed alphanumeric set, filtered by length,
// lowercased and tallied in first-insertion order. The final table is sorted
// by count descending with a stable sort, so words that tie on count keep
// their first-seen order, and truncated to the top ten.
package wordcount

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// MaxEntries is the maximum number of entries in a FrequencyTable.
const MaxEntries = 10

// minWordLength is the minimum rune count a stripped token must have to be
// counted. Tokens of two runes or fewer are noise words.
const minWordLength = 3

// maxTokenSize bounds a single whitespace-delimited token. Line length is
// unbounded; only a single word longer than this fails the read.
const maxTokenSize = 1024 * 1024

// Entry is a single word with its occurrence count.
type Entry struct {
	Word  string
	Count int
}

// FrequencyTable is an ordered word-frequency ranking, most frequent first.
type FrequencyTable []Entry

// String renders the table as "word1=count1, word2=count2, ...".
func (t FrequencyTable) String() string {
	var b strings.Builder
	for i, e := range t {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%d", e.Word, e.Count)
	}
	return b.String()
}

// allowedRune reports whether r survives token stripping. The set is ASCII
// letters and digits plus the Polish letters of the target locale. Note that
// the set intentionally excludes every other rune, including 'ł'.
func allowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("ąęóśćżńźĄĘÓŚĆŻŃŹ", r)
}

// normalize strips disallowed runes from token, discards short leftovers,
// and lowercases the survivor. It returns "" for tokens that do not count.
func normalize(token string) string {
	var b strings.Builder
	b.Grow(len(token))

	runes := 0
	for _, r := range token {
		if allowedRune(r) {
			b.WriteRune(r)
			runes++
		}
	}

	if runes < minWordLength {
		return ""
	}

	return strings.ToLower(b.String())
}

// Count reads src fully and returns its ranked word-frequency table.
// A read failure is returned as-is; no partial table is produced.
func Count(src io.Reader) (FrequencyTable, error) {
	counts := make(map[string]int)
	var order []string

	tokens := bufio.NewScanner(src)
	tokens.Buffer(make([]byte, 0, 64*1024), maxTokenSize)
	tokens.Split(bufio.ScanWords)

	for tokens.Scan() {
		word := normalize(tokens.Text())
		if word == "" {
			continue
		}
		if _, seen := counts[word]; !seen {
			order = append(order, word)
		}
		counts[word]++
	}
	if err := tokens.Err(); err != nil {
		return nil, err
	}

	table := make(FrequencyTable, 0, len(order))
	for _, word := range order {
		table = append(table, Entry{Word: word, Count: counts[word]})
	}

	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Count > table[j].Count
	})

	if len(table) > MaxEntries {
		table = table[:MaxEntries]
	}

	return table, nil
}

// CountFile opens path and counts its content. The file is read exactly
// once, start to end.
func CountFile(path string) (FrequencyTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Count(f)
}
