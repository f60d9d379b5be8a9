package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/contentstudio/studio/pkg/auth"
)

// UsersCollection is the Mongo collection holding accounts.
const UsersCollection = "users"

// userDocument is the stored shape of auth.User. IDs are kept as strings so
// documents stay readable in the shell.
type userDocument struct {
	ID         string     `bson:"_id"`
	Email      string     `bson:"email"`
	Name       string     `bson:"name"`
	IsVerified bool       `bson:"is_verified"`
	CreatedAt  time.Time  `bson:"created_at"`
	VerifiedAt *time.Time `bson:"verified_at,omitempty"`
}

func (d userDocument) toUser() (*auth.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("account: stored user id %q: %w", d.ID, err)
	}
	return &auth.User{
		ID:         id,
		Email:      d.Email,
		Name:       d.Name,
		IsVerified: d.IsVerified,
		CreatedAt:  d.CreatedAt,
		VerifiedAt: d.VerifiedAt,
	}, nil
}

// MongoStorage implements auth.Storage on a Mongo collection with a unique
// index on email.
type MongoStorage struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoStorage ensures the email index and returns the store.
func NewMongoStorage(ctx context.Context, db *mongo.Database) (*MongoStorage, error) {
	coll := db.Collection(UsersCollection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_key"),
	})
	if err != nil {
		return nil, fmt.Errorf("account: create email index: %w", err)
	}
	return &MongoStorage{coll: coll, now: time.Now}, nil
}

func (s *MongoStorage) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	var doc userDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("account: get user: %w", err)
	}
	return doc.toUser()
}

func (s *MongoStorage) CreateUser(ctx context.Context, u *auth.User) error {
	_, err := s.coll.InsertOne(ctx, userDocument{
		ID:         u.ID.String(),
		Email:      u.Email,
		Name:       u.Name,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt.UTC(),
		VerifiedAt: u.VerifiedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return auth.ErrEmailAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("account: create user: %w", err)
	}
	return nil
}

func (s *MongoStorage) MarkVerified(ctx context.Context, email string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}, {Key: "is_verified", Value: false}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "is_verified", Value: true},
			{Key: "verified_at", Value: s.now().UTC()},
		}}},
	)
	if err != nil {
		return fmt.Errorf("account: mark verified: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	// Nothing matched: either already verified or missing.
	n, err := s.coll.CountDocuments(ctx, bson.D{{Key: "email", Value: email}}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("account: mark verified: %w", err)
	}
	if n == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}
