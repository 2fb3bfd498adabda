// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package recommend

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// minTokenLen is the shortest run of word characters kept as a term.
const minTokenLen = 2

// Tokenize lowercases text and splits it into maximal runs of letters,
// digits and underscores. Runs shorter than two characters are dropped, so
// price symbols like "$$" contribute no terms.
func Tokenize(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	start := -1
	runes := 0
	flush := func(end int) {
		if start >= 0 && runes >= minTokenLen {
			tokens = append(tokens, text[start:end])
		}
		start, runes = -1, 0
	}

	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(text))
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// TFIDF is a term-frequency / inverse-document-frequency vectorizer fitted
// over one fixed document set. Vectors are dense over the sorted vocabulary
// and L2-normalised. A TFIDF value is not safe for concurrent Fit calls but
// is read-only after Fit.
type TFIDF struct {
	vocab map[string]int
	terms []string
	idf   []float64
}

// FitTransform fits the vocabulary and idf weights over docs and returns
// one normalised vector per document.
func (v *TFIDF) FitTransform(docs []string) [][]float64 {
	tokenized := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tokenized[i] = Tokenize(doc)
		seen := make(map[string]struct{}, len(tokenized[i]))
		for _, t := range tokenized[i] {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	v.terms = make([]string, 0, len(df))
	for t := range df {
		v.terms = append(v.terms, t)
	}
	sort.Strings(v.terms)

	n := float64(len(docs))
	v.vocab = make(map[string]int, len(v.terms))
	v.idf = make([]float64, len(v.terms))
	for i, t := range v.terms {
		v.vocab[t] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	out := make([][]float64, len(docs))
	for i, toks := range tokenized {
		out[i] = v.vectorize(toks)
	}
	return out
}

// Transform maps text into the fitted space. Terms outside the vocabulary
// are ignored.
func (v *TFIDF) Transform(text string) []float64 {
	return v.vectorize(Tokenize(text))
}

// Vocabulary returns the sorted fitted terms.
func (v *TFIDF) Vocabulary() []string {
	return v.terms
}

func (v *TFIDF) vectorize(tokens []string) []float64 {
	vec := make([]float64, len(v.terms))
	for _, t := range tokens {
		if i, ok := v.vocab[t]; ok {
			vec[i]++
		}
	}
	for i := range vec {
		vec[i] *= v.idf[i]
	}
	normalizeL2(vec)
	return vec
}

func normalizeL2(vec []float64) {
	var sum float64
	for _, x := range vec {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}

// Cosine returns the cosine similarity of a and b, or 0 when either vector
// is all zeros.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
