package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/assisberlanda/sousolidario/internal/app/system/idgen"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTable stores one kind in a collection named after it.
type MongoTable[T any] struct {
	spec  Spec
	alloc idgen.Allocator
	c     *mongo.Collection
}

func NewMongoTable[T any](db *mongo.Database, spec Spec, alloc idgen.Allocator) *MongoTable[T] {
	return &MongoTable[T]{spec: spec, alloc: alloc, c: db.Collection(spec.Kind)}
}

var byID = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

func (t *MongoTable[T]) Create(ctx context.Context, v T) (T, error) {
	var zero T
	id, err := t.alloc.Next(ctx, t.spec.Kind)
	if err != nil {
		return zero, err
	}
	doc, err := newDocument(v, id, time.Now().UTC())
	if err != nil {
		return zero, fmt.Errorf("store: encode %s: %w", t.spec.Kind, err)
	}
	if _, err := t.c.InsertOne(ctx, doc); err != nil {
		if wafflemongo.IsDup(err) {
			return zero, fmt.Errorf("%w: %s", ErrDuplicate, t.spec.Kind)
		}
		return zero, err
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return zero, err
	}
	return decode[T](raw)
}

func (t *MongoTable[T]) Get(ctx context.Context, id int64) (T, bool, error) {
	return t.FindOne(ctx, Filter{"_id": id})
}

func (t *MongoTable[T]) FindOne(ctx context.Context, f Filter) (T, bool, error) {
	var v T
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	filter := bson.M(f)
	if filter == nil {
		filter = bson.M{}
	}
	err := t.c.FindOne(ctx, filter, opts).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	return v, true, nil
}

func (t *MongoTable[T]) List(ctx context.Context, f Filter) ([]T, error) {
	filter := bson.M(f)
	if filter == nil {
		filter = bson.M{}
	}
	cur, err := t.c.Find(ctx, filter, byID)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *MongoTable[T]) Update(ctx context.Context, id int64, set Set) (T, bool, error) {
	var v T
	if _, ok := set["_id"]; ok {
		return v, false, ErrImmutableField
	}
	if len(set) == 0 {
		return t.Get(ctx, id)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := t.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(set)}, opts).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return v, false, nil
	}
	if err != nil {
		if wafflemongo.IsDup(err) {
			return v, false, fmt.Errorf("%w: %s", ErrDuplicate, t.spec.Kind)
		}
		return v, false, err
	}
	return v, true, nil
}

func (t *MongoTable[T]) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := t.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (t *MongoTable[T]) DeleteWhere(ctx context.Context, f Filter) (int64, error) {
	filter := bson.M(f)
	if filter == nil {
		filter = bson.M{}
	}
	res, err := t.c.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the unique and reference indexes of the kind.
func (t *MongoTable[T]) EnsureIndexes(ctx context.Context) error {
	var models []mongo.IndexModel
	for _, f := range t.spec.Unique {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: f, Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_" + f),
		})
	}
	for _, f := range t.spec.Indexed {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: f, Value: 1}},
			Options: options.Index().SetName("idx_" + f),
		})
	}
	if len(models) == 0 {
		return nil
	}
	if _, err := t.c.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("store: indexes for %s: %w", t.spec.Kind, err)
	}
	return nil
}
