// Package mongo adapts the record-store port to a MongoDB database.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kirillkom/realty-assistant/internal/core/domain"
	"github.com/kirillkom/realty-assistant/internal/infrastructure/resilience"
)

// Connect opens and pings a client. Callers own Disconnect.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// Store reads and writes the three record collections.
type Store struct {
	db       *mongo.Database
	executor *resilience.Executor
}

func NewStore(db *mongo.Database, executor *resilience.Executor) *Store {
	return &Store{db: db, executor: executor}
}

func (s *Store) Find(ctx context.Context, collection domain.Collection, filter domain.Filter) ([]domain.Record, error) {
	query, err := toBSON(filter)
	if err != nil {
		return nil, err
	}

	var records []domain.Record
	err = s.executor.Execute(ctx, "mongo_find", func(ctx context.Context) error {
		cursor, err := s.db.Collection(string(collection)).Find(ctx, query)
		if err != nil {
			return fmt.Errorf("find: %w", err)
		}
		defer cursor.Close(ctx)

		records = records[:0]
		return cursor.All(ctx, &records)
	}, transientError)
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", collection, err)
	}
	return records, nil
}

func (s *Store) InsertOne(ctx context.Context, collection domain.Collection, doc domain.Document) (string, error) {
	var id string
	err := s.executor.Execute(ctx, "mongo_insert", func(ctx context.Context) error {
		res, err := s.db.Collection(string(collection)).InsertOne(ctx, toDocument(doc))
		if err != nil {
			return fmt.Errorf("insert one: %w", err)
		}
		id = formatID(res.InsertedID)
		return nil
	}, transientError)
	if err != nil {
		return "", fmt.Errorf("mongo insert %s: %w", collection, err)
	}
	return id, nil
}

func formatID(v any) string {
	if oid, ok := v.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprintf("%v", v)
}

// Writes are not retried blindly; only clearly transient transport
// failures are.
func transientError(err error) bool {
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}
