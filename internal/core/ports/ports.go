package ports

import (
	"context"

	"github.com/kirillkom/realty-assistant/internal/core/domain"
)

// Normalizer turns free text into an ordered sequence of lemmas:
// lower-cased, newline/tab-stripped, punctuation and stop-words
// removed. Must be deterministic for a fixed vocabulary version.
type Normalizer interface {
	Normalize(ctx context.Context, text string) ([]string, error)
}

// RecordStore is the document store the pipeline reads from and writes
// to. Filter and Document shapes are exactly the query fragments the
// transformer produces.
type RecordStore interface {
	Find(ctx context.Context, collection domain.Collection, filter domain.Filter) ([]domain.Record, error)
	InsertOne(ctx context.Context, collection domain.Collection, doc domain.Document) (string, error)
}

// EventPublisher announces accepted insertions to interested parties
// (new listings, new customer requests). Best-effort: dispatch never
// fails because of it.
type EventPublisher interface {
	PublishRecordInserted(ctx context.Context, collection domain.Collection, id string) error
}

// AuditLog records dispatched queries for later inspection. Optional
// and best-effort.
type AuditLog interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

// ResponseRenderer formats a query result into user-facing text.
type ResponseRenderer interface {
	Format(result domain.QueryResult) (string, error)
}
