// Package mongo implements the interface for MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mgo "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tarancss/shipledger/lib/store"
)

const (
	database = "cursor"
	timeout  = 5 * time.Second
)

// Mongo implements a connection to a MongoDB database.
type Mongo struct {
	c *mgo.Client
}

// New returns a Mongo client connection to the specified MongoDB database uri.
func New(uri string) (*Mongo, error) {
	// get a client
	c, err := mgo.NewClient(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("cannot connect to mongo DB in %s: %w", uri, err)
	}
	// connect client
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err = c.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("error connecting to mongo DB: %w", err)
	}

	return &Mongo{c: c}, nil
}

// CloseMongo will close a database connection. Must be called at termination time.
func (m *Mongo) CloseMongo() error {
	return m.c.Disconnect(context.Background())
}

// LoadCursor loads from db the cursor of the named listener.
func (m *Mongo) LoadCursor(name string) (c store.Cursor, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	sr := m.c.Database(database).Collection(name).FindOne(ctx, bson.D{})
	if err = sr.Decode(&c); errors.Is(err, mgo.ErrNoDocuments) {
		err = store.ErrDataNotFound
	}

	return
}

// SaveCursor saves to db the cursor of the named listener.
func (m *Mongo) SaveCursor(name string, c store.Cursor) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, err = m.c.Database(database).Collection(name).UpdateOne(ctx,
		bson.D{}, // filter
		bson.D{ // update
			{
				Key: "$set", Value: bson.D{
					{Key: "block", Value: c.Block},
					{Key: "events", Value: c.Events},
					{Key: "updated", Value: c.Updated},
				},
			},
		},
		options.Update().SetUpsert(true))

	return
}

// DeleteCursor deletes from db the cursor of the named listener, so that it starts over.
func (m *Mongo) DeleteCursor(name string) (err error) {
	_, err = m.c.Database(database).Collection(name).DeleteOne(context.Background(), bson.D{}, options.Delete())

	return
}
