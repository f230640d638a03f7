package parser

import (
	"fmt"

	"github.com/kirillkom/realty-assistant/internal/catalog"
	"github.com/kirillkom/realty-assistant/internal/core/domain"
)

// Classifier segments field words into buckets keyed by canonical field
// name. Each call owns its accumulation state; a Classifier is safe for
// concurrent use because nothing survives between calls.
type Classifier struct {
	cat *catalog.Catalog
}

func NewClassifier(cat *catalog.Catalog) *Classifier {
	return &Classifier{cat: cat}
}

// Classify walks the words in order. A recognized field keyword commits
// the open bucket and opens a new one under the keyword's canonical
// name; any other word appends to the open bucket. A word arriving
// before the first keyword has no bucket to live in and fails the
// query. Repeated keywords merge by concatenation, the later run ahead
// of the earlier one, matching the accumulation order of the original
// grammar. Word order inside a run is preserved.
func (c *Classifier) Classify(words []string) (domain.Buckets, error) {
	buckets := domain.Buckets{}

	var openName string
	var openWords []string

	commit := func() {
		if openName == "" {
			return
		}
		buckets[openName] = append(openWords, buckets[openName]...)
		openName = ""
		openWords = nil
	}

	for _, word := range words {
		if canonical, ok := c.cat.CanonicalField(word); ok {
			commit()
			openName = canonical
			continue
		}
		if openName == "" {
			return nil, fmt.Errorf("classify word %q before any field keyword: %w",
				word, domain.NewUserError(domain.ErrMalformedQuery, domain.MsgMalformedQuery))
		}
		openWords = append(openWords, word)
	}
	commit()

	return buckets, nil
}
