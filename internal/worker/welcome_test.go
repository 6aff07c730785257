package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dmarchuk/filesmanager/internal/models"
	"github.com/dmarchuk/filesmanager/internal/queue"
	"github.com/dmarchuk/filesmanager/internal/repository/memory"
)

func welcomeTask(t *testing.T, p queue.WelcomePayload) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(p)
	require.NoError(t, err)
	return asynq.NewTask(queue.TypeWelcome, b)
}

func TestWelcomeKnownUser(t *testing.T) {
	users := memory.NewUsers()
	user, err := users.Create(context.Background(), models.User{Email: "bob@dylan.com"})
	require.NoError(t, err)

	proc := NewWelcomeProcessor(users)
	err = proc.ProcessTask(context.Background(), welcomeTask(t, queue.WelcomePayload{UserID: user.ID.Hex()}))
	assert.NoError(t, err)
}

func TestWelcomeValidation(t *testing.T) {
	proc := NewWelcomeProcessor(memory.NewUsers())

	err := proc.ProcessTask(context.Background(), welcomeTask(t, queue.WelcomePayload{}))
	assert.EqualError(t, err, "missing userId")

	err = proc.ProcessTask(context.Background(), welcomeTask(t, queue.WelcomePayload{UserID: primitive.NewObjectID().Hex()}))
	assert.EqualError(t, err, "user not found")
}
