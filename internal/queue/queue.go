// Package queue defines the background task types and the producer-side
// client. Delivery is at-least-once; consumers must be idempotent.
package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task types routed by the worker process.
const (
	TypeThumbnail = "thumbnail:generate"
	TypeWelcome   = "user:welcome"
)

// ThumbnailPayload asks the worker to derive resized variants for one
// uploaded image.
type ThumbnailPayload struct {
	FileID string `json:"fileId"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// WelcomePayload asks the worker to greet a newly registered user.
type WelcomePayload struct {
	UserID string `json:"userId"`
}

// Enqueuer is the narrow producer contract services depend on.
type Enqueuer interface {
	EnqueueThumbnail(ctx context.Context, p ThumbnailPayload) error
	EnqueueWelcome(ctx context.Context, p WelcomePayload) error
}

// Client produces tasks onto the Redis-backed queue.
type Client struct {
	client *asynq.Client
}

func NewClient(opt asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(opt)}
}

func (c *Client) EnqueueThumbnail(ctx context.Context, p ThumbnailPayload) error {
	return c.enqueue(ctx, TypeThumbnail, p)
}

func (c *Client) EnqueueWelcome(ctx context.Context, p WelcomePayload) error {
	return c.enqueue(ctx, TypeWelcome, p)
}

func (c *Client) enqueue(ctx context.Context, taskType string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, asynq.NewTask(taskType, b))
	return err
}

func (c *Client) Close() error {
	return c.client.Close()
}
