package transform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kirillkom/realty-assistant/internal/catalog"
	"github.com/kirillkom/realty-assistant/internal/core/domain"
)

var digitRuns = regexp.MustCompile(`\d+`)

// Search builds a read filter from field buckets. Description and
// address words become element-membership conditions on the normalized
// derived fields (merged with any literal bucket already targeting
// them), full names become case-insensitive pattern matches on the
// space-joined phrase, timestamps and levels become membership tests,
// prices become an inclusive range over every digit run found in the
// bucket, and everything else passes through as a literal word list.
func (t *Transformer) Search(buckets domain.Buckets) (domain.Filter, error) {
	filter := domain.Filter{}
	consumed := map[string]bool{}

	for name, words := range buckets {
		switch t.cat.FieldKindOf(name) {
		case catalog.KindDescription:
			merged := append(append([]string{}, words...), buckets[normDescriptionField]...)
			filter[normDescriptionField] = domain.ContainsAny(merged)
			consumed[normDescriptionField] = true
		case catalog.KindAddress:
			merged := append(append([]string{}, words...), buckets[normAddressField]...)
			filter[normAddressField] = domain.ContainsAny(merged)
			consumed[normAddressField] = true
		case catalog.KindFullName:
			filter[name] = domain.Pattern(strings.Join(words, " "))
		case catalog.KindMembership:
			filter[name] = domain.OneOf(words)
		case catalog.KindPrice:
			min, max, err := priceBounds(words)
			if err != nil {
				return nil, err
			}
			filter[name] = domain.Range(min, max)
		default:
			if consumed[name] {
				continue
			}
			filter[name] = domain.Literal(words)
		}
	}

	return filter, nil
}

// priceBounds extracts every digit run across the joined bucket text
// and returns the inclusive [min, max] envelope. A price bucket with no
// digits cannot bound anything and fails the query.
func priceBounds(words []string) (int, int, error) {
	runs := digitRuns.FindAllString(strings.Join(words, " "), -1)
	if len(runs) == 0 {
		return 0, 0, fmt.Errorf("price bucket %v has no digits: %w",
			words, domain.NewUserError(domain.ErrMalformedQuery, domain.MsgMalformedQuery))
	}

	min, max := 0, 0
	for i, run := range runs {
		v, err := strconv.Atoi(run)
		if err != nil {
			return 0, 0, fmt.Errorf("parse price %q: %w", run, err)
		}
		if i == 0 || v < min {
			min = v
		}
		if i == 0 || v > max {
			max = v
		}
	}
	return min, max, nil
}
