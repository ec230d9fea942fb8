package handlers

import (
	"github.com/drivedeck/drivedeck/internal/services"
	"github.com/drivedeck/drivedeck/internal/storage"
	"github.com/drivedeck/drivedeck/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// SearchHandler handles the three search modes
type SearchHandler struct {
	Store storage.Storage
}

// Raw handles POST /api/search/raw
// @Summary Raw search
// @Description Case-insensitive substring match against file names
// @Tags Search
// @Accept json
// @Produce json
// @Param body body object true "query"
// @Success 200 {array} models.File
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /search/raw [post]
func (h *SearchHandler) Raw(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	var body struct {
		Query string `json:"query"`
	}
	if err := c.BodyParser(&body); err != nil || body.Query == "" {
		return utils.ErrorResponse(c, "query is required", fiber.StatusBadRequest, "search.validation")
	}

	results, err := services.SearchFiles(h.Store, userID, body.Query)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "search.raw")
	}
	return c.Status(fiber.StatusOK).JSON(results)
}

// Advanced handles POST /api/search/advanced
// @Summary Advanced search
// @Description Apply structured filters, ANDed together; absent fields impose no constraint
// @Tags Search
// @Accept json
// @Produce json
// @Param body body object true "filters"
// @Success 200 {array} models.File
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /search/advanced [post]
func (h *SearchHandler) Advanced(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	var body struct {
		Filters *services.SearchFilters `json:"filters"`
	}
	if err := c.BodyParser(&body); err != nil || body.Filters == nil {
		return utils.ErrorResponse(c, "filters are required", fiber.StatusBadRequest, "search.validation")
	}

	results, err := services.AdvancedSearch(h.Store, userID, *body.Filters)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "search.advanced")
	}
	return c.Status(fiber.StatusOK).JSON(results)
}

// Smart handles POST /api/search/smart
// @Summary Smart search
// @Description Translate a free-text prompt into filters and run an advanced search
// @Tags Search
// @Accept json
// @Produce json
// @Param body body object true "prompt"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /search/smart [post]
func (h *SearchHandler) Smart(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := c.BodyParser(&body); err != nil || body.Prompt == "" {
		return utils.ErrorResponse(c, "prompt is required", fiber.StatusBadRequest, "search.validation")
	}

	parsed := services.ParseSmartQuery(body.Prompt)
	results, err := services.AdvancedSearch(h.Store, userID, parsed.Filters)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "search.smart")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"parsedQuery": parsed,
		"results":     results,
	})
}
