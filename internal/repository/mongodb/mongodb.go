// Package mongodb implements the domain repositories on MongoDB.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/eventsplanner/events-api/internal/domain"
)

const (
	eventsCollection = "events"
	usersCollection  = "users"
)

var _ domain.Database = (*DB)(nil)

// DB holds a connected client and the database the repositories write to.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials the cluster at uri and verifies the connection with a
// primary ping before returning.
func Connect(ctx context.Context, uri, database string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return New(client, database), nil
}

// New wraps an already connected client.
func New(client *mongo.Client, database string) *DB {
	return &DB{client: client, db: client.Database(database)}
}

// Migrate creates the indexes the repositories rely on. The unique email
// index is what turns a concurrent duplicate signup into ErrDuplicateUser.
func (d *DB) Migrate(ctx context.Context) error {
	_, err := d.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	return nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

func (d *DB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.client.Disconnect(ctx)
}

// Drop removes the whole database. Used by tests.
func (d *DB) Drop(ctx context.Context) error {
	return d.db.Drop(ctx)
}

// Events returns an EventRepository backed by this database.
func (d *DB) Events() *EventRepository {
	return &EventRepository{coll: d.db.Collection(eventsCollection)}
}

// Users returns a UserRepository backed by this database.
func (d *DB) Users() *UserRepository {
	return &UserRepository{coll: d.db.Collection(usersCollection)}
}
