package handlers

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateShareLink(t *testing.T) {
	ta := newTestApp(t)
	cookie := ta.signup(t, "alice")
	fileID := ta.uploadFile(t, cookie, "report.pdf", nil)

	resp := ta.request(t, fiber.MethodPost, "/api/share", cookie, fiber.Map{
		"fileId":    fileID,
		"expiresIn": 86400,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var share struct {
		URL       string     `json:"url"`
		Token     string     `json:"token"`
		ExpiresAt *time.Time `json:"expiresAt"`
	}
	decodeJSON(t, resp, &share)
	assert.Len(t, share.Token, 32)
	assert.Equal(t, testBaseURL+"/share/"+share.Token, share.URL)
	require.NotNil(t, share.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), *share.ExpiresAt, 5*time.Second)

	// Asking again returns the same link
	resp = ta.request(t, fiber.MethodPost, "/api/share", cookie, fiber.Map{"fileId": fileID})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var again struct {
		Token string `json:"token"`
	}
	decodeJSON(t, resp, &again)
	assert.Equal(t, share.Token, again.Token)
}

func TestCreateShareValidation(t *testing.T) {
	ta := newTestApp(t)
	cookie := ta.signup(t, "alice")

	resp := ta.request(t, fiber.MethodPost, "/api/share", cookie, fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = ta.request(t, fiber.MethodPost, "/api/share", cookie, fiber.Map{"fileId": 9999})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListShares(t *testing.T) {
	ta := newTestApp(t)
	cookie := ta.signup(t, "alice")
	f1 := ta.uploadFile(t, cookie, "a.txt", nil)
	f2 := ta.uploadFile(t, cookie, "b.txt", nil)

	for _, id := range []uint64{f1, f2} {
		resp := ta.request(t, fiber.MethodPost, "/api/share", cookie, fiber.Map{"fileId": id})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp := ta.request(t, fiber.MethodGet, "/api/share", cookie, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var shares []struct {
		Token string `json:"token"`
		File  struct {
			Name string `json:"name"`
		} `json:"file"`
	}
	decodeJSON(t, resp, &shares)
	require.Len(t, shares, 2)
	assert.NotEmpty(t, shares[0].File.Name)
}

func TestRevokeShare(t *testing.T) {
	ta := newTestApp(t)
	cookie := ta.signup(t, "alice")
	fileID := ta.uploadFile(t, cookie, "report.pdf", nil)

	resp := ta.request(t, fiber.MethodPost, "/api/share", cookie, fiber.Map{"fileId": fileID})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var share struct {
		Token string `json:"token"`
	}
	decodeJSON(t, resp, &share)

	resp = ta.request(t, fiber.MethodDelete, fmt.Sprintf("/api/share/%d", fileID), cookie, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The revoked token no longer resolves
	resp = ta.request(t, fiber.MethodGet, "/api/share/link/"+share.Token, "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Revoking again is not found
	resp = ta.request(t, fiber.MethodDelete, fmt.Sprintf("/api/share/%d", fileID), cookie, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestResolveShareTokenPublic(t *testing.T) {
	ta := newTestApp(t)
	cookie := ta.signup(t, "alice")
	fileID := ta.uploadFile(t, cookie, "report.pdf", nil)

	resp := ta.request(t, fiber.MethodPost, "/api/share", cookie, fiber.Map{"fileId": fileID})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var share struct {
		Token string `json:"token"`
	}
	decodeJSON(t, resp, &share)

	// No session cookie: the token alone is the capability
	resp = ta.request(t, fiber.MethodGet, "/api/share/link/"+share.Token, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var resolved struct {
		File struct {
			Name string `json:"name"`
		} `json:"file"`
	}
	decodeJSON(t, resp, &resolved)
	assert.Equal(t, "report.pdf", resolved.File.Name)

	resp = ta.request(t, fiber.MethodGet, "/api/share/link/bogus", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestResolveExpiredShareToken(t *testing.T) {
	ta := newTestApp(t)
	cookie := ta.signup(t, "alice")
	fileID := ta.uploadFile(t, cookie, "report.pdf", nil)

	resp := ta.request(t, fiber.MethodPost, "/api/share", cookie, fiber.Map{
		"fileId":    fileID,
		"expiresIn": -1,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var share struct {
		Token string `json:"token"`
	}
	decodeJSON(t, resp, &share)

	resp = ta.request(t, fiber.MethodGet, "/api/share/link/"+share.Token, "", nil)
	assert.Equal(t, fiber.StatusGone, resp.StatusCode)
}
