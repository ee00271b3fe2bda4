package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tripquote/internal/app/middleware"
)

var ErrEmptyIdempotencyKey = errors.New("mongo: idempotency key needs a command and a client key")

// IdempotencyStore keeps command results in app_idempotency. The scoped key is the _id and is
// also split into command and client_key so replays can be inspected per command.
type IdempotencyStore struct {
	col *mongo.Collection
	ttl time.Duration
	now func() time.Time
}

// NewIdempotencyStore keeps records for ttl. The TTL index on created_at only sweeps about once a
// minute, so Get also ignores documents older than ttl.
func NewIdempotencyStore(db *mongo.Database, ttl time.Duration) *IdempotencyStore {
	col := db.Collection("app_idempotency")
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(ttl.Seconds())),
		},
		{Keys: bson.D{{Key: "command", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return &IdempotencyStore{col: col, ttl: ttl, now: time.Now}
}

func (s *IdempotencyStore) Get(ctx context.Context, key middleware.IdempotencyKey) (middleware.IdempotencyRecord, bool, error) {
	if key.Command == "" || key.Client == "" {
		return middleware.IdempotencyRecord{}, false, ErrEmptyIdempotencyKey
	}
	var doc idempotencyDocument
	err := s.col.FindOne(ctx, s.liveFilter(key)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return middleware.IdempotencyRecord{}, false, nil
		}
		return middleware.IdempotencyRecord{}, false, err
	}
	return doc.toRecord(), true, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, rec middleware.IdempotencyRecord) error {
	doc, err := newIdempotencyDocument(rec, s.now())
	if err != nil {
		return err
	}
	_, err = s.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (s *IdempotencyStore) liveFilter(key middleware.IdempotencyKey) bson.M {
	return bson.M{
		"_id":        key.String(),
		"created_at": bson.M{"$gt": s.now().UTC().Add(-s.ttl)},
	}
}

type idempotencyDocument struct {
	ID         string    `bson:"_id"`
	Command    string    `bson:"command"`
	ClientKey  string    `bson:"client_key"`
	Payload    []byte    `bson:"payload"`
	Error      string    `bson:"error,omitempty"`
	OccurredAt time.Time `bson:"occurred_at"`
	CreatedAt  time.Time `bson:"created_at"`
}

func newIdempotencyDocument(rec middleware.IdempotencyRecord, now time.Time) (idempotencyDocument, error) {
	if rec.Key.Command == "" || rec.Key.Client == "" {
		return idempotencyDocument{}, ErrEmptyIdempotencyKey
	}
	return idempotencyDocument{
		ID:         rec.Key.String(),
		Command:    rec.Key.Command,
		ClientKey:  rec.Key.Client,
		Payload:    rec.Payload,
		Error:      rec.Error,
		OccurredAt: rec.OccurredAt,
		CreatedAt:  now.UTC(),
	}, nil
}

func (d idempotencyDocument) toRecord() middleware.IdempotencyRecord {
	return middleware.IdempotencyRecord{
		Key:        middleware.IdempotencyKey{Command: d.Command, Client: d.ClientKey},
		Payload:    d.Payload,
		Error:      d.Error,
		OccurredAt: d.OccurredAt,
	}
}

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)
