package mongo

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/kirillkom/realty-assistant/internal/core/domain"
)

// toBSON maps the closed condition set onto MongoDB operators.
func toBSON(filter domain.Filter) (bson.M, error) {
	query := bson.M{}
	for field, cond := range filter {
		switch cond.Kind {
		case domain.CondLiteral:
			query[field] = cond.Words
		case domain.CondContainsAny:
			query[field] = bson.M{"$elemMatch": bson.M{"$in": cond.Words}}
		case domain.CondPattern:
			query[field] = bson.M{"$regex": cond.Expr, "$options": "i"}
		case domain.CondOneOf:
			query[field] = bson.M{"$in": cond.Words}
		case domain.CondRange:
			query[field] = bson.M{"$gte": cond.Min, "$lte": cond.Max}
		default:
			return nil, fmt.Errorf("unsupported condition kind %v for field %s", cond.Kind, field)
		}
	}
	return query, nil
}

func toDocument(doc domain.Document) bson.M {
	out := bson.M{}
	for k, v := range doc {
		out[k] = v
	}
	return out
}
