package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"github.com/dmarchuk/filesmanager/internal/queue"
	"github.com/dmarchuk/filesmanager/internal/repository"
)

// WelcomeProcessor greets newly registered users. Stands in for a real
// mail sender; the queue semantics are the same either way.
type WelcomeProcessor struct {
	users repository.UserRepository
}

func NewWelcomeProcessor(users repository.UserRepository) *WelcomeProcessor {
	return &WelcomeProcessor{users: users}
}

func (p *WelcomeProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.WelcomePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid welcome payload: %w", err)
	}
	if payload.UserID == "" {
		return errors.New("missing userId")
	}
	user, ok, err := p.users.FindByID(ctx, payload.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("user not found")
	}
	log.Printf("Welcome %s!", user.Email)
	return nil
}
