package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/require"

	"github.com/drivedeck/drivedeck/internal/config"
	"github.com/drivedeck/drivedeck/internal/middleware"
	"github.com/drivedeck/drivedeck/internal/storage"
	"github.com/drivedeck/drivedeck/internal/types"
)

const testBaseURL = "http://localhost:3000"

// testApp wires the full route table against an in-memory store, mirroring
// the server wiring minus metrics and swagger.
type testApp struct {
	app   *fiber.App
	store storage.Storage
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	st := storage.NewMemory()
	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})

	sessions := session.New(session.Config{
		Expiration: 7 * 24 * time.Hour,
		KeyLookup:  "cookie:drivedeck_session",
	})
	authRequired := middleware.AuthRequired(sessions)

	authHandler := &AuthHandler{Store: st, Sessions: sessions}
	providerHandler := &ProviderHandler{Store: st}
	fileHandler := &FileHandler{Store: st}
	folderHandler := &FolderHandler{Store: st}
	searchHandler := &SearchHandler{Store: st}
	shareHandler := &ShareHandler{Store: st, BaseURL: testBaseURL}
	healthHandler := &HealthHandler{Store: st, Cfg: &config.Config{StorageBackend: "memory"}}

	api := app.Group("/api")
	api.Get("/health", healthHandler.Check)

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", authRequired, authHandler.Me)
	auth.Patch("/profile", authRequired, authHandler.UpdateProfile)

	providers := api.Group("/providers")
	providers.Get("/", providerHandler.List)
	providers.Get("/user-connected", authRequired, providerHandler.UserConnected)
	providers.Post("/connect", authRequired, providerHandler.Connect)
	providers.Get("/:id/files", authRequired, providerHandler.Files)
	providers.Delete("/:id", authRequired, providerHandler.Disconnect)

	files := api.Group("/files", authRequired)
	files.Post("/upload", fileHandler.Upload)
	files.Get("/:id", fileHandler.Get)
	files.Delete("/:id", fileHandler.Delete)
	files.Post("/:id/favorite", fileHandler.ToggleFavorite)
	files.Post("/:id/tags", fileHandler.AddTag)
	files.Delete("/:id/tags/:tag", fileHandler.RemoveTag)

	folders := api.Group("/folders", authRequired)
	folders.Post("/create", folderHandler.Create)
	folders.Get("/contents", folderHandler.Contents)

	search := api.Group("/search", authRequired)
	search.Post("/raw", searchHandler.Raw)
	search.Post("/advanced", searchHandler.Advanced)
	search.Post("/smart", searchHandler.Smart)

	api.Get("/share/link/:token", shareHandler.Resolve)
	share := api.Group("/share", authRequired)
	share.Post("/", shareHandler.Create)
	share.Get("/", shareHandler.List)
	share.Delete("/:fileId", shareHandler.Revoke)

	return &testApp{app: app, store: st}
}

func testErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var customErr *types.CustomError
	if errors.As(err, &customErr) {
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  code,
		"message": message,
		"ok":      false,
		"type":    errorType,
	})
}

// request performs one in-process HTTP round trip.
func (ta *testApp) request(t *testing.T, method, path, cookie string, body interface{}) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "drivedeck_session" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

// signup registers a user and returns their session cookie.
func (ta *testApp) signup(t *testing.T, username string) string {
	t.Helper()
	resp := ta.request(t, fiber.MethodPost, "/api/auth/signup", "", fiber.Map{
		"username": username,
		"password": "secret123",
		"email":    username + "@example.com",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return sessionCookie(t, resp)
}
