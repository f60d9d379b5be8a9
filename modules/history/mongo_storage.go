package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection is the Mongo collection holding history records.
const Collection = "content_history"

type recordDocument struct {
	ID          string    `bson:"_id"`
	OwnerID     string    `bson:"owner_id"`
	Title       string    `bson:"title"`
	ContentType string    `bson:"content_type"`
	Tone        string    `bson:"tone"`
	Audience    string    `bson:"audience"`
	Purpose     string    `bson:"purpose"`
	WordLimit   int       `bson:"word_limit"`
	Content     string    `bson:"content"`
	CreatedAt   time.Time `bson:"created_at"`
}

func toDocument(r *Record) recordDocument {
	return recordDocument{
		ID:          r.ID.String(),
		OwnerID:     r.OwnerID.String(),
		Title:       r.Title,
		ContentType: r.ContentType,
		Tone:        r.Tone,
		Audience:    r.Audience,
		Purpose:     r.Purpose,
		WordLimit:   r.WordLimit,
		Content:     r.Content,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

func (d recordDocument) toRecord() (Record, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return Record{}, fmt.Errorf("history: stored id %q: %w", d.ID, err)
	}
	owner, err := uuid.Parse(d.OwnerID)
	if err != nil {
		return Record{}, fmt.Errorf("history: stored owner %q: %w", d.OwnerID, err)
	}
	return Record{
		ID:          id,
		OwnerID:     owner,
		Title:       d.Title,
		ContentType: d.ContentType,
		Tone:        d.Tone,
		Audience:    d.Audience,
		Purpose:     d.Purpose,
		WordLimit:   d.WordLimit,
		Content:     d.Content,
		CreatedAt:   d.CreatedAt,
	}, nil
}

// MongoStorage keeps records in a Mongo collection.
type MongoStorage struct {
	coll *mongo.Collection
}

// NewMongoStorage ensures the owner index and returns the store.
func NewMongoStorage(ctx context.Context, db *mongo.Database) (*MongoStorage, error) {
	coll := db.Collection(Collection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("content_history_owner_created_idx"),
	})
	if err != nil {
		return nil, fmt.Errorf("history: create owner index: %w", err)
	}
	return &MongoStorage{coll: coll}, nil
}

func ownedBy(ownerID, id uuid.UUID) bson.D {
	return bson.D{{Key: "_id", Value: id.String()}, {Key: "owner_id", Value: ownerID.String()}}
}

func (s *MongoStorage) Insert(ctx context.Context, r *Record) error {
	if _, err := s.coll.InsertOne(ctx, toDocument(r)); err != nil {
		return fmt.Errorf("history: insert: %w", err)
	}
	return nil
}

func (s *MongoStorage) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Record, error) {
	cur, err := s.coll.Find(ctx,
		bson.D{{Key: "owner_id", Value: ownerID.String()}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	var docs []recordDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}

	records := make([]Record, 0, len(docs))
	for _, d := range docs {
		r, err := d.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *MongoStorage) Get(ctx context.Context, ownerID, id uuid.UUID) (*Record, error) {
	var doc recordDocument
	err := s.coll.FindOne(ctx, ownedBy(ownerID, id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("history: get: %w", err)
	}
	r, err := doc.toRecord()
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *MongoStorage) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := s.coll.DeleteOne(ctx, ownedBy(ownerID, id))
	if err != nil {
		return fmt.Errorf("history: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}
