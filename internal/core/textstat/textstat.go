// Package textstat computes line, word, and character statistics over text.
// Word identity is caseless: words are folded through a Unicode
// compatibility-normalization and case-folding chain before counting, so
// "Straße", "STRASSE", and "strasse" are the same word.
package textstat

import (
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Stats is the wire record for one analyzed input. MostCommonWord is nil
// (JSON null) when the input has no words.
type Stats struct {
	Lines          int     `json:"lines"`
	Words          int     `json:"words"`
	Chars          int     `json:"chars"`
	Bytes          int     `json:"bytes"`
	MostCommonWord *string `json:"most_common_word"`
	UniqueWords    int     `json:"unique_words"`
}

// pool of fresh fold chains
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFKC, cases.Fold())
	},
}

// fold maps a word to its caseless, compatibility-normalized form.
func fold(w string) string {
	tr := foldPool.Get().(transform.Transformer)
	out, _, _ := transform.String(tr, w)
	tr.Reset()
	foldPool.Put(tr)
	return out
}

// Analyze computes statistics for the whole input. Lines are
// newline-delimited with no phantom final line; words split on Unicode
// whitespace; chars counts runes, bytes counts bytes. Frequency ties pick
// the lexicographically smallest word.
func Analyze(input string) Stats {
	words := strings.Fields(input)

	freq := make(map[string]int, len(words))
	for _, w := range words {
		freq[fold(w)]++
	}

	var best *string
	bestN := 0
	for w, n := range freq {
		if n > bestN || (n == bestN && best != nil && w < *best) {
			word := w
			best = &word
			bestN = n
		}
	}

	return Stats{
		Lines:          countLines(input),
		Words:          len(words),
		Chars:          utf8.RuneCountInString(input),
		Bytes:          len(input),
		MostCommonWord: best,
		UniqueWords:    len(freq),
	}
}

// countLines counts newline-terminated lines, plus a final unterminated one.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
