// Package static is an in-process normalizer: lower-casing, whitespace
// and punctuation stripping, stop-word filtering and a lemma-exception
// table taken from the pattern catalog file. It has no notion of
// morphology beyond that table; it exists so the assistant works
// offline and so tests are deterministic.
package static

import (
	"context"
	"strings"
	"unicode"
)

type Normalizer struct {
	stopWords map[string]struct{}
	lemmas    map[string]string
}

func New(stopWords []string, lemmas map[string]string) *Normalizer {
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	if lemmas == nil {
		lemmas = map[string]string{}
	}
	return &Normalizer{stopWords: stop, lemmas: lemmas}
}

// Normalize lower-cases the text, strips newlines and tabs, splits on
// whitespace, trims punctuation off every token, maps tokens through
// the lemma table and drops stop words and empty leftovers.
func (n *Normalizer) Normalize(_ context.Context, text string) ([]string, error) {
	cleaned := strings.NewReplacer("\n", " ", "\t", " ").Replace(strings.ToLower(text))

	var out []string
	for _, token := range strings.Fields(cleaned) {
		token = strings.TrimFunc(token, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if token == "" {
			continue
		}
		if lemma, ok := n.lemmas[token]; ok {
			token = lemma
		}
		if _, stop := n.stopWords[token]; stop {
			continue
		}
		out = append(out, token)
	}
	return out, nil
}
