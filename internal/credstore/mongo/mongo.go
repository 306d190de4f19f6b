// Package mongo implements the credential store on MongoDB with a unique
// index on username.
package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/haguru/torii/internal/apperrors"
	"github.com/haguru/torii/internal/interfaces"
	"github.com/haguru/torii/internal/models"
)

const (
	usersCollection = "users"

	// MaxPoolSize caps the driver connection pool.
	MaxPoolSize = 20

	// duplicateKey is the substring MongoDB reports on a unique index hit.
	duplicateKey = "E11000 duplicate key error"
)

// Store is the MongoDB-backed credential store.
type Store struct {
	client  *mongosdk.Client
	db      *mongosdk.Database
	timeout time.Duration
}

// NewStore connects to MongoDB. The DSN must be in the
// "mongodb://<host>:<port>/..." form; databaseName selects the database.
func NewStore(ctx context.Context, dsn, databaseName string, timeout time.Duration) (interfaces.CredentialStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("mongo DSN is empty")
	}
	if !strings.HasPrefix(dsn, "mongodb://") && !strings.HasPrefix(dsn, "mongodb+srv://") {
		return nil, fmt.Errorf("invalid mongo DSN format, expected 'mongodb://' or 'mongodb+srv://'")
	}
	if databaseName == "" {
		return nil, fmt.Errorf("mongo database name is empty")
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	clientOptions := options.Client().
		ApplyURI(dsn).
		SetMaxPoolSize(MaxPoolSize).
		SetReadPreference(readpref.PrimaryPreferred())

	client, err := mongosdk.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB server: %w", err)
	}

	return &Store{
		client:  client,
		db:      client.Database(databaseName),
		timeout: timeout,
	}, nil
}

// Load returns all credential records.
func (s *Store) Load(ctx context.Context) (map[string]string, error) {
	cursor, err := s.db.Collection(usersCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query users: %v", apperrors.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	users := make(map[string]string)
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("%w: failed to decode user document: %v", apperrors.ErrStorage, err)
		}
		users[user.Username] = user.PasswordHash
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate user documents: %v", apperrors.ErrStorage, err)
	}

	return users, nil
}

// Save inserts a new credential document. The unique index turns racing
// duplicate registrations into a conflict.
func (s *Store) Save(ctx context.Context, username, hash string) error {
	_, err := s.db.Collection(usersCollection).InsertOne(ctx, models.User{
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		if strings.Contains(err.Error(), duplicateKey) {
			return fmt.Errorf("%w: %s", apperrors.ErrConflict, username)
		}
		return fmt.Errorf("%w: failed to insert user: %v", apperrors.ErrStorage, err)
	}
	return nil
}

// EnsureIndices creates the unique username index.
func (s *Store) EnsureIndices(ctx context.Context) error {
	indexModel := mongosdk.IndexModel{
		Keys:    bson.M{"username": 1},
		Options: options.Index().SetUnique(true),
	}
	_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		return fmt.Errorf("failed to ensure username index: %w", err)
	}
	return nil
}

// Close disconnects the MongoDB client.
func (s *Store) Close(ctx context.Context) error {
	if s.client != nil {
		return s.client.Disconnect(ctx)
	}
	return nil
}
