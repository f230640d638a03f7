// Package parser locates the action phrase inside a normalized word
// sequence and segments the remaining words into field buckets.
package parser

import (
	"fmt"
	"strings"

	"github.com/kirillkom/realty-assistant/internal/catalog"
	"github.com/kirillkom/realty-assistant/internal/core/domain"
)

// Locator finds the verb + action-word span in a normalized sequence.
type Locator struct {
	cat *catalog.Catalog
}

func NewLocator(cat *catalog.Catalog) *Locator {
	return &Locator{cat: cat}
}

// Locate joins the words and searches for the first span matching
// <verb> <bounded filler> <action word>. It returns the words outside
// the span (empties dropped) and the phrase whose verb and target are
// the first and last token of the span. When the span is one word,
// verb and target coincide.
func (l *Locator) Locate(words []string) ([]string, domain.ActionPhrase, error) {
	joined := strings.Join(words, " ")

	span, ok := l.cat.MatchAction(joined)
	if !ok {
		return nil, domain.ActionPhrase{}, fmt.Errorf("locate action in %q: %w",
			joined, domain.NewUserError(domain.ErrPatternNotFound, domain.MsgPatternNotFound))
	}

	var fields []string
	for _, w := range strings.Split(strings.Replace(joined, span, "", 1), " ") {
		if w != "" {
			fields = append(fields, w)
		}
	}

	tokens := strings.Fields(span)
	phrase := domain.ActionPhrase{
		Verb:   tokens[0],
		Target: tokens[len(tokens)-1],
	}
	return fields, phrase, nil
}
