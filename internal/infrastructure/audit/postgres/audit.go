// Package postgres keeps the query audit trail: who dispatched what
// against which collection. The trail is append-only and optional; the
// pipeline works without it.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kirillkom/realty-assistant/internal/core/domain"
)

type AuditLog struct {
	db *sql.DB
}

func NewAuditLog(db *sql.DB) *AuditLog {
	return &AuditLog{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (a *AuditLog) EnsureSchema(ctx context.Context) error {
	const query = `
CREATE TABLE IF NOT EXISTS query_audit (
	id BIGSERIAL PRIMARY KEY,
	request_id TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL,
	verb TEXT NOT NULL,
	target TEXT NOT NULL,
	collection TEXT NOT NULL,
	operation TEXT NOT NULL,
	outcome TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_query_audit_created_at ON query_audit(created_at DESC);
`
	if _, err := a.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute audit schema ddl: %w", err)
	}
	return nil
}

func (a *AuditLog) Record(ctx context.Context, entry domain.AuditEntry) error {
	_, err := a.db.ExecContext(ctx, `
INSERT INTO query_audit (request_id, role, verb, target, collection, operation, outcome)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.RequestID,
		string(entry.Role),
		entry.Verb,
		entry.Target,
		string(entry.Collection),
		string(entry.Operation),
		entry.Outcome,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
