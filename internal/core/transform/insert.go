package transform

import (
	"context"
	"fmt"
	"strings"

	"github.com/kirillkom/realty-assistant/internal/core/domain"
)

// Insert builds the document to store from field buckets. Listings
// must carry both address and price; customer requests must carry a
// full name. Description and address buckets are run through the
// normalizer and their lemmas stored (both under the normalized
// description field) and concatenated into tags, description first.
// The creation timestamp is stamped unconditionally, overwriting any
// caller-supplied value.
func (t *Transformer) Insert(ctx context.Context, buckets domain.Buckets, collection domain.Collection) (domain.Document, error) {
	if err := checkRequired(buckets, collection); err != nil {
		return nil, err
	}

	doc := domain.Document{}
	for name, words := range buckets {
		doc[name] = words
	}

	var normDesc, normAddr []string
	if words, ok := buckets["description"]; ok && len(words) > 0 {
		lemmas, err := t.normalizer.Normalize(ctx, strings.Join(words, " "))
		if err != nil {
			return nil, fmt.Errorf("normalize description: %w", err)
		}
		normDesc = lemmas
		doc[normDescriptionField] = lemmas
	}
	if words, ok := buckets["address"]; ok && len(words) > 0 {
		lemmas, err := t.normalizer.Normalize(ctx, strings.Join(words, " "))
		if err != nil {
			return nil, fmt.Errorf("normalize address: %w", err)
		}
		normAddr = lemmas
		doc[normDescriptionField] = lemmas
	}

	if tags := append(append([]string{}, normDesc...), normAddr...); len(tags) > 0 {
		doc[tagsField] = tags
	}

	doc[timestampField] = t.now().Format(timestampLayout)
	return doc, nil
}

func checkRequired(buckets domain.Buckets, collection domain.Collection) error {
	switch collection {
	case domain.CollectionAppartments:
		_, hasAddress := buckets["address"]
		_, hasPrice := buckets["price"]
		if !hasAddress || !hasPrice {
			return fmt.Errorf("insert into %s: %w", collection,
				domain.NewUserError(domain.ErrMissingRequiredField, domain.MsgNeedPriceAddress))
		}
	case domain.CollectionRequests:
		if _, ok := buckets["fullname"]; !ok {
			return fmt.Errorf("insert into %s: %w", collection,
				domain.NewUserError(domain.ErrMissingRequiredField, domain.MsgNeedFullName))
		}
	}
	return nil
}
