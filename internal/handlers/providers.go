package handlers

import (
	"github.com/drivedeck/drivedeck/internal/services"
	"github.com/drivedeck/drivedeck/internal/storage"
	"github.com/drivedeck/drivedeck/internal/types"
	"github.com/drivedeck/drivedeck/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// ProviderHandler handles the provider catalog and per-user connections
type ProviderHandler struct {
	Store storage.Storage
}

// List handles GET /api/providers
// @Summary Provider catalog
// @Description List every cloud provider offered to users
// @Tags Providers
// @Produce json
// @Success 200 {array} models.CloudProvider
// @Router /providers [get]
func (h *ProviderHandler) List(c *fiber.Ctx) error {
	providers, err := services.ProviderCatalog(h.Store)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "providers.list")
	}
	return c.Status(fiber.StatusOK).JSON(providers)
}

// UserConnected handles GET /api/providers/user-connected
// @Summary Connected providers
// @Description List the caller's active provider connections
// @Tags Providers
// @Produce json
// @Success 200 {array} services.ConnectedProvider
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /providers/user-connected [get]
func (h *ProviderHandler) UserConnected(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	connected, err := services.ConnectedProviders(h.Store, userID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "providers.connected")
	}
	return c.Status(fiber.StatusOK).JSON(connected)
}

// Connect handles POST /api/providers/connect
// @Summary Connect a provider
// @Description Connect the caller to a catalog provider (mocked OAuth); reconnecting updates the existing connection
// @Tags Providers
// @Accept json
// @Produce json
// @Param body body object true "providerId, connectionInfo?"
// @Success 200 {object} models.UserCloudProvider
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /providers/connect [post]
func (h *ProviderHandler) Connect(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	var body struct {
		ProviderID     *types.FlexUint64      `json:"providerId"`
		ConnectionInfo map[string]interface{} `json:"connectionInfo"`
	}
	if err := c.BodyParser(&body); err != nil || body.ProviderID == nil || body.ProviderID.Uint64() == 0 {
		return utils.ErrorResponse(c, "providerId is required", fiber.StatusBadRequest, "providers.validation")
	}

	conn, err := services.ConnectProvider(h.Store, userID, body.ProviderID.Uint64(), body.ConnectionInfo)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "providers.connect")
	}
	return c.Status(fiber.StatusOK).JSON(conn)
}

// Files handles GET /api/providers/:id/files
// @Summary Browse a provider namespace
// @Description Materialize the direct children of a path inside a connected provider
// @Tags Providers
// @Produce json
// @Param id path int true "Provider ID"
// @Param path query string false "Namespace path (default /)"
// @Success 200 {object} services.ProviderContentsView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /providers/{id}/files [get]
func (h *ProviderHandler) Files(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	providerID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "providers.validation")
	}

	view, err := services.ProviderContents(h.Store, userID, providerID, c.Query("path", "/"))
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "providers.files")
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// Disconnect handles DELETE /api/providers/:id
// @Summary Disconnect a provider
// @Description Deactivate the caller's connection to a provider
// @Tags Providers
// @Produce json
// @Param id path int true "Provider ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /providers/{id} [delete]
func (h *ProviderHandler) Disconnect(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	providerID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "providers.validation")
	}

	if err := services.DisconnectProvider(h.Store, userID, providerID); err != nil {
		return utils.ServiceErrorResponse(c, err, "providers.disconnect")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "message": "Provider disconnected"})
}
