package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/usercore/user-directory/internal/core/domain"
	"github.com/usercore/user-directory/internal/core/ports"
)

// UserStore implements ports.Store on top of a MongoDB database. Each
// operation addresses the collection named by the caller; queries are plain
// field-equality filters.
type UserStore struct {
	db *mongo.Database
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{db: db}
}

// userDoc is the persisted document shape. The directory id is a regular
// indexed field, separate from Mongo's _id.
type userDoc struct {
	ID        string `bson:"id"`
	Email     string `bson:"email"`
	Name      string `bson:"name"`
	CreatedAt int64  `bson:"created_at"`
}

func (s *UserStore) FindOne(ctx context.Context, collection string, query ports.Document) (*domain.User, error) {
	var doc userDoc
	if err := s.db.Collection(collection).FindOne(ctx, normalizeQuery(query)).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find in %s: %v", domain.ErrStorageFailure, collection, err)
	}
	return docToUser(doc), nil
}

func (s *UserStore) Insert(ctx context.Context, collection string, data ports.Document) (*domain.User, error) {
	u := domain.UserFromDocument(data)
	doc := userDoc{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt.Unix(),
	}

	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("%w: insert into %s: %v", domain.ErrStorageFailure, collection, err)
	}

	return docToUser(doc), nil
}

// normalizeQuery rewrites query values into the persisted shape: timestamps
// are stored as unix seconds, so time.Time filters are converted before they
// reach the driver. Other values pass through untouched.
func normalizeQuery(query ports.Document) bson.M {
	filter := make(bson.M, len(query))
	for field, value := range query {
		if ts, ok := value.(time.Time); ok {
			filter[field] = ts.Unix()
			continue
		}
		filter[field] = value
	}
	return filter
}

func docToUser(doc userDoc) *domain.User {
	return &domain.User{
		ID:        doc.ID,
		Email:     doc.Email,
		Name:      doc.Name,
		CreatedAt: unixToTime(doc.CreatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
