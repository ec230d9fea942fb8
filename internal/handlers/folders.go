package handlers

import (
	"github.com/drivedeck/drivedeck/internal/services"
	"github.com/drivedeck/drivedeck/internal/storage"
	"github.com/drivedeck/drivedeck/internal/types"
	"github.com/drivedeck/drivedeck/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// FolderHandler handles folder routes
type FolderHandler struct {
	Store storage.Storage
}

// Create handles POST /api/folders/create
// @Summary Create a folder
// @Description Create a folder under a parent (the root folder by default)
// @Tags Folders
// @Accept json
// @Produce json
// @Param body body object true "name, parentId?, providerId?"
// @Success 201 {object} models.Folder
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /folders/create [post]
func (h *FolderHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	var body struct {
		Name       string            `json:"name"`
		ParentID   *types.FlexUint64 `json:"parentId"`
		ProviderID *types.FlexUint64 `json:"providerId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "folders.validation")
	}

	folder, err := services.CreateFolder(h.Store, userID, body.Name, flexToID(body.ParentID), flexToID(body.ProviderID))
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "folders.create")
	}
	return c.Status(fiber.StatusCreated).JSON(folder)
}

// Contents handles GET /api/folders/contents
// @Summary Folder contents
// @Description List the immediate children of a folder (the root folder when folderId is omitted)
// @Tags Folders
// @Produce json
// @Param folderId query int false "Folder ID"
// @Success 200 {object} services.DriveContents
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /folders/contents [get]
func (h *FolderHandler) Contents(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	folderID, err := parseOptionalIDQuery(c, "folderId")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "folders.validation")
	}

	contents, err := services.FolderContents(h.Store, userID, folderID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "folders.contents")
	}
	return c.Status(fiber.StatusOK).JSON(contents)
}
