package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/dmarchuk/filesmanager/internal/cache"
	"github.com/dmarchuk/filesmanager/internal/middleware"
	"github.com/dmarchuk/filesmanager/internal/queue"
	"github.com/dmarchuk/filesmanager/internal/repository/memory"
	"github.com/dmarchuk/filesmanager/internal/services"
	"github.com/dmarchuk/filesmanager/internal/session"
	"github.com/dmarchuk/filesmanager/internal/storage"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

// testEnv wires the full API over in-memory collaborators.
type testEnv struct {
	app   *fiber.App
	files *memory.Files
	users *memory.Users
	queue *queue.MockEnqueuer
	store *storage.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	files := memory.NewFiles()
	users := memory.NewUsers()
	q := &queue.MockEnqueuer{}
	store := storage.NewStore(t.TempDir())
	sessions := session.NewStore(cache.NewMemory())

	authService := services.NewAuthService(users, sessions, q)
	fileService := services.NewFileService(files, store, q)
	guard := middleware.NewAuth(authService)

	app := fiber.New()
	Register(app, guard,
		NewAppHandler(stubPinger{}, stubPinger{}, users, files),
		NewAuthHandler(authService),
		NewUserHandler(authService),
		NewFileHandler(fileService, authService),
	)
	return &testEnv{app: app, files: files, users: users, queue: q, store: store}
}

func (e *testEnv) do(t *testing.T, method, target, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("X-Token", token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && resp.Header.Get("Content-Type") == fiber.MIMEApplicationJSON {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// register creates a user through the API and returns a session token.
func (e *testEnv) register(t *testing.T, email, password string) string {
	t.Helper()

	resp, _ := e.do(t, http.MethodPost, "/users", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	basic := base64.StdEncoding.EncodeToString([]byte(email + ":" + password))
	req := httptest.NewRequest(http.MethodGet, "/connect", nil)
	req.Header.Set("Authorization", "Basic "+basic)
	connResp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, connResp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(connResp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

// pngBase64 renders a small PNG and returns it base64-encoded.
func pngBase64(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for x := 0; x < 640; x += 2 {
		for y := 0; y < 480; y += 2 {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}
