package idgen

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CountersCollection holds one document per entity kind: {_id: kind, seq: n}.
const CountersCollection = "counters"

// MongoAllocator increments sequence documents atomically with
// findOneAndUpdate, so several processes can share one database.
type MongoAllocator struct {
	c *mongo.Collection
}

func NewMongoAllocator(db *mongo.Database) *MongoAllocator {
	return &MongoAllocator{c: db.Collection(CountersCollection)}
}

func (a *MongoAllocator) Next(ctx context.Context, kind string) (int64, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return 0, ErrEmptyKind
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out struct {
		Seq int64 `bson:"seq"`
	}
	err := a.c.FindOneAndUpdate(ctx,
		bson.M{"_id": kind},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&out)
	if err != nil {
		return 0, fmt.Errorf("idgen: next %s: %w", kind, err)
	}
	return out.Seq, nil
}
