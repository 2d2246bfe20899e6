package corpus

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSource reads documents from a MongoDB collection.
type MongoSource struct {
	coll *mongo.Collection
}

// NewMongoSource connects to the given MongoDB URI and uses the
// db.collection pair as the document store.
func NewMongoSource(ctx context.Context, uri, db, collection string) (*MongoSource, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &MongoSource{coll: client.Database(db).Collection(collection)}, nil
}

// NewMongoSourceFromCollection wraps an existing collection. Useful when the
// caller manages the client lifecycle (e.g. shared with the sentiment store).
func NewMongoSourceFromCollection(coll *mongo.Collection) *MongoSource {
	return &MongoSource{coll: coll}
}

// List returns documents matching the filter.
func (s *MongoSource) List(ctx context.Context, f Filter) ([]Document, error) {
	query := bson.M{}
	if f.Year != nil {
		query["year"] = *f.Year
	}

	opts := options.Find()
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cur, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer cur.Close(ctx)

	var docs []Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return docs, nil
}

// Years returns distinct years present in the collection, descending.
func (s *MongoSource) Years(ctx context.Context) ([]int, error) {
	raw, err := s.coll.Distinct(ctx, "year", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var years []int
	for _, v := range raw {
		switch y := v.(type) {
		case int32:
			years = append(years, int(y))
		case int64:
			years = append(years, int(y))
		case int:
			years = append(years, y)
		}
	}
	// Distinct gives no ordering guarantee.
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

var _ Source = (*MongoSource)(nil)
