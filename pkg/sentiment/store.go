package sentiment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Entry source tags. Placeholder ("default") entries are seeded rows that
// do not count as real answers; the cascade treats them as misses so the
// classifier can backfill them later.
const (
	SourceDictionary = "dictionary"
	SourceClassifier = "finbert"
	SourceDefault    = "default"
)

// ErrMiss is returned by Store.Get when no entry exists for the term.
var ErrMiss = errors.New("sentiment: not cached")

// Entry is one persisted sentiment row.
type Entry struct {
	Term            string    `bson:"_id"`
	Label           Label     `bson:"label"`
	Score           float64   `bson:"score"`
	NormalizedScore float64   `bson:"normalized_score"`
	Source          string    `bson:"source"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

// Result converts the entry to a resolution result.
func (e Entry) Result() Result {
	return Result{
		Term:            e.Term,
		Label:           e.Label,
		Score:           e.Score,
		NormalizedScore: e.NormalizedScore,
	}
}

// Store is the persistent cross-process sentiment cache.
type Store interface {
	// Get returns the entry for a normalized term or ErrMiss.
	Get(ctx context.Context, term string) (Entry, error)

	// Upsert writes an entry, overwriting any existing row for the term.
	Upsert(ctx context.Context, e Entry) error
}

// Seed writes the curated dictionary into the persistent store and inserts
// neutral placeholder rows for the remaining terms. Dictionary rows are
// overwritten on every run so curation changes propagate; placeholders are
// only written for terms with no row at all, so classifier results survive
// reseeding. Returns the number of dictionary rows and placeholders
// written. A resolver without a store seeds nothing.
func (r *Resolver) Seed(ctx context.Context, terms []string) (int, int, error) {
	if r.store == nil {
		return 0, 0, nil
	}

	curated := DictionaryTerms()
	sort.Strings(curated)
	dictRows := 0
	for _, term := range curated {
		res, _ := DictionaryLookup(term)
		err := r.store.Upsert(ctx, Entry{
			Term:            term,
			Label:           res.Label,
			Score:           res.Score,
			NormalizedScore: res.NormalizedScore,
			Source:          SourceDictionary,
		})
		if err != nil {
			return dictRows, 0, fmt.Errorf("seed dictionary: %w", err)
		}
		dictRows++
	}

	placeholders := 0
	for _, t := range terms {
		term := Normalize(t)
		if _, ok := dictionary[term]; ok {
			continue
		}
		if _, err := r.store.Get(ctx, term); err == nil {
			continue
		} else if !errors.Is(err, ErrMiss) {
			r.logger.Debug("seed lookup failed, skipping term", "term", term, "err", err)
			continue
		}
		neutral := Neutral(term)
		err := r.store.Upsert(ctx, Entry{
			Term:            term,
			Label:           neutral.Label,
			Score:           neutral.Score,
			NormalizedScore: neutral.NormalizedScore,
			Source:          SourceDefault,
		})
		if err != nil {
			return dictRows, placeholders, fmt.Errorf("seed placeholder: %w", err)
		}
		placeholders++
	}

	return dictRows, placeholders, nil
}

// storeTier adapts a Store to the cascade. Placeholder entries are treated
// as misses; hits are promoted into the memory tier. Backend errors log and
// fall through to the next tier.
type storeTier struct {
	store  Store
	memory *MemoryCache
	logger *log.Logger
}

func (t storeTier) Name() string { return "store" }

func (t storeTier) Lookup(ctx context.Context, term string) (Result, bool) {
	entry, err := t.store.Get(ctx, term)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			t.logger.Debug("sentiment store lookup failed", "term", term, "err", err)
		}
		return Result{}, false
	}
	if entry.Source == SourceDefault {
		return Result{}, false
	}

	res := entry.Result()
	t.memory.Put(term, res)
	return res, true
}

// MongoStore persists sentiment entries in a MongoDB collection keyed by
// term.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore connects to the given URI and uses db.collection for
// sentiment rows.
func NewMongoStore(ctx context.Context, uri, db, collection string) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return &MongoStore{coll: client.Database(db).Collection(collection)}, nil
}

// NewMongoStoreFromCollection wraps an existing collection.
func NewMongoStoreFromCollection(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// Get returns the entry for a term or ErrMiss.
func (s *MongoStore) Get(ctx context.Context, term string) (Entry, error) {
	var e Entry
	err := s.coll.FindOne(ctx, bson.M{"_id": term}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Entry{}, ErrMiss
	}
	if err != nil {
		return Entry{}, fmt.Errorf("sentiment store get: %w", err)
	}
	return e, nil
}

// Upsert overwrites the row for the entry's term.
func (s *MongoStore) Upsert(ctx context.Context, e Entry) error {
	e.UpdatedAt = time.Now().UTC()
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": e.Term}, e, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("sentiment store upsert: %w", err)
	}
	return nil
}

var (
	_ Store = (*MongoStore)(nil)
	_ Tier  = storeTier{}
)
