package handlers

import (
	"github.com/drivedeck/drivedeck/internal/middleware"
	"github.com/drivedeck/drivedeck/internal/services"
	"github.com/drivedeck/drivedeck/internal/storage"
	"github.com/drivedeck/drivedeck/internal/types"
	"github.com/drivedeck/drivedeck/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// AuthHandler handles signup, login, logout and profile routes
type AuthHandler struct {
	Store    storage.Storage
	Sessions *session.Store
}

// Signup handles POST /api/auth/signup
// @Summary Create an account
// @Description Register a new user, create their root folder, and start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "username, password, email, fullName?, providers?"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var body struct {
		Username  string                           `json:"username"`
		Password  string                           `json:"password"`
		Email     string                           `json:"email"`
		FullName  *string                          `json:"fullName"`
		Providers types.FlexList[types.FlexUint64] `json:"providers"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "auth.validation")
	}

	providers := make([]uint64, 0, len(body.Providers))
	for _, p := range body.Providers {
		providers = append(providers, p.Uint64())
	}

	user, err := services.Signup(h.Store, services.SignupInput{
		Username:  body.Username,
		Password:  body.Password,
		Email:     body.Email,
		FullName:  body.FullName,
		Providers: providers,
	})
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "auth.signup")
	}

	if err := h.startSession(c, user.ID); err != nil {
		return utils.ErrorResponse(c, "Failed to start session", fiber.StatusInternalServerError, "auth.session")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Verify credentials and start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "username, password"
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil || body.Username == "" || body.Password == "" {
		return utils.ErrorResponse(c, "Username and password are required", fiber.StatusBadRequest, "auth.validation")
	}

	user, err := services.Login(h.Store, body.Username, body.Password)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "auth.login")
	}

	if err := h.startSession(c, user.ID); err != nil {
		return utils.ErrorResponse(c, "Failed to start session", fiber.StatusInternalServerError, "auth.session")
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// Logout handles POST /api/auth/logout
// @Summary Log out
// @Description Destroy the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess, err := h.Sessions.Get(c); err == nil {
		_ = sess.Destroy()
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "message": "Logged out"})
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Description Return the authenticated user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	user, err := h.Store.GetUser(userID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "auth.me")
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// UpdateProfile handles PATCH /api/auth/profile
// @Summary Update profile
// @Description Apply a partial update to the authenticated user's profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "email?, fullName?, password?"
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/profile [patch]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.session")
	}

	var body struct {
		Email    *string `json:"email"`
		FullName *string `json:"fullName"`
		Password *string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "auth.validation")
	}

	user, err := services.UpdateProfile(h.Store, userID, services.ProfileUpdate{
		Email:    body.Email,
		FullName: body.FullName,
		Password: body.Password,
	})
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "auth.profile")
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *AuthHandler) startSession(c *fiber.Ctx, userID uint64) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	sess.Set(middleware.SessionUserKey, userID)
	return sess.Save()
}
