package parser

import (
	"strings"

	"github.com/kirillkom/realty-assistant/internal/catalog"
)

// QuitDetector recognizes farewell queries. No failure modes: either
// the joined sequence contains a quit verb or it does not.
type QuitDetector struct {
	cat *catalog.Catalog
}

func NewQuitDetector(cat *catalog.Catalog) *QuitDetector {
	return &QuitDetector{cat: cat}
}

func (d *QuitDetector) IsQuit(words []string) bool {
	return d.cat.MatchQuit(strings.Join(words, " "))
}
