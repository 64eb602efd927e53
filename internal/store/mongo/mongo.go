// Package mongo adapts a remote MongoDB database to the store port. This is
// the system of record in production deployments.
package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shivthakur007/expense/internal/store"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to the database and verifies the connection with a ping.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri not set")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	slog.InfoContext(ctx, "Connected to MongoDB", "database", database)
	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Collection(name string) store.Collection {
	return &collection{col: s.db.Collection(name)}
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type collection struct {
	col *mongo.Collection
}

func (c *collection) Add(ctx context.Context, data map[string]any) (string, error) {
	res, err := c.col.InsertOne(ctx, bson.M(data))
	if err != nil {
		return "", fmt.Errorf("insert document: %w", err)
	}
	return documentID(res.InsertedID), nil
}

func (c *collection) Stream(ctx context.Context) ([]store.Document, error) {
	cur, err := c.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}
	defer cur.Close(ctx)

	var out []store.Document
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		doc := store.Document{Data: make(map[string]any, len(raw))}
		for k, v := range raw {
			if k == "_id" {
				doc.ID = documentID(v)
				continue
			}
			doc.Data[k] = v
		}
		out = append(out, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("stream documents: %w", err)
	}
	return out, nil
}

func (c *collection) Update(ctx context.Context, id string, data map[string]any) error {
	filter, err := idFilter(id)
	if err != nil {
		return store.ErrNotFound
	}
	res, err := c.col.ReplaceOne(ctx, filter, bson.M(data))
	if err != nil {
		return fmt.Errorf("replace document %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (c *collection) Delete(ctx context.Context, id string) error {
	filter, err := idFilter(id)
	if err != nil {
		return store.ErrNotFound
	}
	res, err := c.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// idFilter addresses a document by its ObjectID hex, falling back to a plain
// string id for documents imported from other systems.
func idFilter(id string) (bson.M, error) {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid}, nil
	}
	if id == "" {
		return nil, fmt.Errorf("empty id")
	}
	return bson.M{"_id": id}, nil
}

func documentID(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}
