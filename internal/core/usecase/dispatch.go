package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirillkom/realty-assistant/internal/catalog"
	"github.com/kirillkom/realty-assistant/internal/core/domain"
	"github.com/kirillkom/realty-assistant/internal/core/ports"
	"github.com/kirillkom/realty-assistant/internal/core/transform"
)

// DispatchUseCase resolves an action phrase to a (collection,
// operation) pair, enforces the permission matrix, transforms the field
// buckets in the mode the operation requires, and delegates to the
// record store. Events and audit are optional collaborators; their
// failures are logged and swallowed.
type DispatchUseCase struct {
	cat         *catalog.Catalog
	transformer *transform.Transformer
	store       ports.RecordStore
	events      ports.EventPublisher
	audit       ports.AuditLog
}

func NewDispatchUseCase(
	cat *catalog.Catalog,
	transformer *transform.Transformer,
	store ports.RecordStore,
	events ports.EventPublisher,
	audit ports.AuditLog,
) *DispatchUseCase {
	return &DispatchUseCase{
		cat:         cat,
		transformer: transformer,
		store:       store,
		events:      events,
		audit:       audit,
	}
}

// Dispatch runs the decision table. No field transformation happens
// before collection and operation are known, because the transform mode
// depends on both.
func (uc *DispatchUseCase) Dispatch(
	ctx context.Context,
	role domain.Role,
	phrase domain.ActionPhrase,
	buckets domain.Buckets,
) (*domain.QueryResult, error) {
	collection, ok := uc.cat.ClassifyTarget(phrase.Target)
	if !ok {
		return nil, fmt.Errorf("classify target %q: %w", phrase.Target,
			domain.NewUserError(domain.ErrUnknownTarget, domain.MsgUnknownIntent))
	}

	operation, ok := uc.cat.ClassifyVerb(phrase.Verb)
	if !ok {
		return nil, fmt.Errorf("classify verb %q: %w", phrase.Verb,
			domain.NewUserError(domain.ErrUnknownVerb, domain.MsgUnknownIntent))
	}

	if !permitted(role, operation, collection) {
		return nil, fmt.Errorf("role %s may not %s %s: %w", role, operation, collection,
			domain.NewUserError(domain.ErrPermissionDenied, domain.MsgUnknownIntent))
	}

	result := &domain.QueryResult{Collection: collection, Operation: operation}

	switch operation {
	case domain.OpSelect:
		filter, err := uc.transformer.Search(buckets)
		if err != nil {
			return nil, err
		}
		records, err := uc.store.Find(ctx, collection, filter)
		if err != nil {
			return nil, fmt.Errorf("find in %s: %w", collection, err)
		}
		result.Records = records
	case domain.OpInsert:
		doc, err := uc.transformer.Insert(ctx, buckets, collection)
		if err != nil {
			return nil, err
		}
		id, err := uc.store.InsertOne(ctx, collection, doc)
		if err != nil {
			return nil, fmt.Errorf("insert into %s: %w", collection, err)
		}
		result.InsertedID = id
		uc.publishInserted(ctx, collection, id)
	}

	uc.recordAudit(ctx, role, phrase, collection, operation)

	slog.Info("query_dispatched",
		"role", string(role),
		"collection", string(collection),
		"operation", string(operation),
		"records", len(result.Records),
	)
	return result, nil
}

func (uc *DispatchUseCase) publishInserted(ctx context.Context, collection domain.Collection, id string) {
	if uc.events == nil {
		return
	}
	if err := uc.events.PublishRecordInserted(ctx, collection, id); err != nil {
		slog.Warn("publish_inserted_failed", "collection", string(collection), "id", id, "error", err)
	}
}

func (uc *DispatchUseCase) recordAudit(
	ctx context.Context,
	role domain.Role,
	phrase domain.ActionPhrase,
	collection domain.Collection,
	operation domain.Operation,
) {
	if uc.audit == nil {
		return
	}
	entry := domain.AuditEntry{
		Role:       role,
		Verb:       phrase.Verb,
		Target:     phrase.Target,
		Collection: collection,
		Operation:  operation,
		Outcome:    "ok",
	}
	if err := uc.audit.Record(ctx, entry); err != nil {
		slog.Warn("audit_record_failed", "error", err)
	}
}
