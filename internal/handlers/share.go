package handlers

import (
	"github.com/drivedeck/drivedeck/internal/services"
	"github.com/drivedeck/drivedeck/internal/storage"
	"github.com/drivedeck/drivedeck/internal/types"
	"github.com/drivedeck/drivedeck/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// ShareHandler handles share link routes
type ShareHandler struct {
	Store   storage.Storage
	BaseURL string
}

// Create handles POST /api/share
// @Summary Create a share link
// @Description Issue a share token for a file the caller owns; idempotent while a share exists
// @Tags Share
// @Accept json
// @Produce json
// @Param body body object true "fileId, expiresIn? (seconds)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /share [post]
func (h *ShareHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	var body struct {
		FileID    *types.FlexUint64 `json:"fileId"`
		ExpiresIn *int64            `json:"expiresIn"`
	}
	if err := c.BodyParser(&body); err != nil || body.FileID == nil || body.FileID.Uint64() == 0 {
		return utils.ErrorResponse(c, "fileId is required", fiber.StatusBadRequest, "share.validation")
	}

	share, err := services.GenerateShareLink(h.Store, userID, body.FileID.Uint64(), body.ExpiresIn)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "share.create")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"url":       h.BaseURL + "/share/" + share.Token,
		"token":     share.Token,
		"expiresAt": share.ExpiresAt,
	})
}

// List handles GET /api/share
// @Summary List share links
// @Description List every share created by the caller, joined with its file
// @Tags Share
// @Produce json
// @Success 200 {array} services.SharedFileWithFile
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /share [get]
func (h *ShareHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	shares, err := services.UserSharedFiles(h.Store, userID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "share.list")
	}
	return c.Status(fiber.StatusOK).JSON(shares)
}

// Revoke handles DELETE /api/share/:fileId
// @Summary Revoke share links
// @Description Delete every share row for a file the caller owns
// @Tags Share
// @Produce json
// @Param fileId path int true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /share/{fileId} [delete]
func (h *ShareHandler) Revoke(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	fileID, err := parseIDParam(c, "fileId")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "share.validation")
	}

	if err := services.RevokeShareLink(h.Store, userID, fileID); err != nil {
		return utils.ServiceErrorResponse(c, err, "share.revoke")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "message": "Share link revoked"})
}

// Resolve handles GET /api/share/link/:token (no session required)
// @Summary Resolve a share token
// @Description Return the file behind a share token; expired tokens are rejected
// @Tags Share
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 410 {object} utils.ErrorResponseStruct
// @Router /share/link/{token} [get]
func (h *ShareHandler) Resolve(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return utils.ErrorResponse(c, "token is required", fiber.StatusBadRequest, "share.validation")
	}

	file, share, err := services.ResolveShareToken(h.Store, token)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "share.resolve")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"file":      file,
		"expiresAt": share.ExpiresAt,
	})
}
