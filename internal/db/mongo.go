package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client wraps the MongoDB connection with an explicit lifecycle so that
// collaborators receive a handle instead of reaching for a package global.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes the database connection and verifies it with a ping.
func Connect(ctx context.Context, uri, database string) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &Client{client: client, db: client.Database(database)}, nil
}

// Ping reports whether the connection is still healthy.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, nil)
}

func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

func (c *Client) Users() *mongo.Collection {
	return c.db.Collection("users")
}

func (c *Client) Files() *mongo.Collection {
	return c.db.Collection("files")
}
