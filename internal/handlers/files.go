package handlers

import (
	"log"
	"net/url"

	"github.com/drivedeck/drivedeck/internal/services"
	"github.com/drivedeck/drivedeck/internal/storage"
	"github.com/drivedeck/drivedeck/internal/types"
	"github.com/drivedeck/drivedeck/internal/utils"
	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
)

// FileHandler handles file metadata routes
type FileHandler struct {
	Store storage.Storage
}

// Upload handles POST /api/files/upload
// @Summary Register an upload
// @Description Register file metadata under the caller's drive (no byte transport)
// @Tags Files
// @Accept json
// @Produce json
// @Param body body object true "name, mimeType?, size?, folderId?, providerId?, path?, thumbnailUrl?, tags?"
// @Success 201 {object} models.File
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /files/upload [post]
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	var body struct {
		Name         string            `json:"name"`
		MimeType     *string           `json:"mimeType"`
		Size         *int64            `json:"size"`
		FolderID     *types.FlexUint64 `json:"folderId"`
		ProviderID   *types.FlexUint64 `json:"providerId"`
		ExternalID   *string           `json:"externalId"`
		Path         string            `json:"path"`
		ThumbnailURL *string           `json:"thumbnailUrl"`
		Tags         []string          `json:"tags"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "files.validation")
	}

	file, err := services.RegisterUpload(h.Store, userID, services.UploadInput{
		Name:         body.Name,
		MimeType:     body.MimeType,
		Size:         body.Size,
		FolderID:     flexToID(body.FolderID),
		ProviderID:   flexToID(body.ProviderID),
		ExternalID:   body.ExternalID,
		Path:         body.Path,
		ThumbnailURL: body.ThumbnailURL,
		Tags:         body.Tags,
	})
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "files.upload")
	}

	if file.Size != nil && *file.Size >= 0 {
		log.Printf("Registered upload %q (%s) for user %d", file.Name, humanize.IBytes(uint64(*file.Size)), userID)
	}
	return c.Status(fiber.StatusCreated).JSON(file)
}

// Get handles GET /api/files/:id
// @Summary Fetch a file
// @Description Return file metadata; non-owners must present the file's share token
// @Tags Files
// @Produce json
// @Param id path int true "File ID"
// @Param token query string false "Share token"
// @Success 200 {object} models.File
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /files/{id} [get]
func (h *FileHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	fileID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "files.validation")
	}

	file, err := services.GetFileForViewer(h.Store, fileID, userID, c.Query("token"))
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "files.get")
	}
	return c.Status(fiber.StatusOK).JSON(file)
}

// Delete handles DELETE /api/files/:id
// @Summary Delete a file
// @Description Delete a file the caller owns; share links for it are revoked
// @Tags Files
// @Produce json
// @Param id path int true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /files/{id} [delete]
func (h *FileHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	fileID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "files.validation")
	}

	if err := services.DeleteFile(h.Store, userID, fileID); err != nil {
		return utils.ServiceErrorResponse(c, err, "files.delete")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "message": "File deleted"})
}

// ToggleFavorite handles POST /api/files/:id/favorite
// @Summary Toggle favorite
// @Description Flip the favorite flag on a file the caller owns
// @Tags Files
// @Produce json
// @Param id path int true "File ID"
// @Success 200 {object} models.File
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /files/{id}/favorite [post]
func (h *FileHandler) ToggleFavorite(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	fileID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "files.validation")
	}

	file, err := services.ToggleFavorite(h.Store, userID, fileID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "files.favorite")
	}
	return c.Status(fiber.StatusOK).JSON(file)
}

// AddTag handles POST /api/files/:id/tags
// @Summary Add a tag
// @Description Add a tag to a file's tag set; duplicate adds are no-ops
// @Tags Files
// @Accept json
// @Produce json
// @Param id path int true "File ID"
// @Param body body object true "tag"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /files/{id}/tags [post]
func (h *FileHandler) AddTag(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	fileID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "files.validation")
	}

	var body struct {
		Tag string `json:"tag"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "files.validation")
	}

	tags, err := services.AddTag(h.Store, userID, fileID, body.Tag)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "files.tags")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"tags": tags})
}

// RemoveTag handles DELETE /api/files/:id/tags/:tag
// @Summary Remove a tag
// @Description Remove a tag by exact match; removing an absent tag is a no-op
// @Tags Files
// @Produce json
// @Param id path int true "File ID"
// @Param tag path string true "Tag"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /files/{id}/tags/{tag} [delete]
func (h *FileHandler) RemoveTag(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	fileID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "files.validation")
	}

	tag, err := url.PathUnescape(c.Params("tag"))
	if err != nil || tag == "" {
		return utils.ErrorResponse(c, "Invalid tag", fiber.StatusBadRequest, "files.validation")
	}

	tags, err := services.RemoveTag(h.Store, userID, fileID, tag)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "files.tags")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"tags": tags})
}

func flexToID(f *types.FlexUint64) *uint64 {
	if f == nil {
		return nil
	}
	id := f.Uint64()
	return &id
}
