// Package transform turns raw field buckets into storage-ready query
// fragments: search filters for reads, documents for inserts. The
// transform strategy per field is selected by the kind tag the catalog
// assigned at load time.
package transform

import (
	"time"

	"github.com/kirillkom/realty-assistant/internal/catalog"
	"github.com/kirillkom/realty-assistant/internal/core/ports"
)

// Derived fields the insertion mode writes. Note that both normalized
// description and normalized address land under normDescriptionField;
// the grammar has always worked that way, and search filters for
// addresses target normAddressField regardless. See the design notes
// before changing either.
const (
	normDescriptionField = "norm_description"
	normAddressField     = "norm_address"
	tagsField            = "tags"
	timestampField       = "timestamp"

	// DD.MM.YY, the record creation stamp format.
	timestampLayout = "02.01.06"
)

// Transformer builds search filters and insertion documents from field
// buckets. It is stateless between calls.
type Transformer struct {
	cat        *catalog.Catalog
	normalizer ports.Normalizer
	now        func() time.Time
}

func NewTransformer(cat *catalog.Catalog, normalizer ports.Normalizer) *Transformer {
	return &Transformer{
		cat:        cat,
		normalizer: normalizer,
		now:        time.Now,
	}
}
