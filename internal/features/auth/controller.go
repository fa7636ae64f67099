package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"tablecrm/internal/config"
	"tablecrm/internal/middleware"
	"tablecrm/pkg/utils"
)

type AuthController struct {
	Service AuthService
	Config  *config.Config
}

func NewAuthController(service AuthService, cfg *config.Config) *AuthController {
	return &AuthController{
		Service: service,
		Config:  cfg,
	}
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup godoc
// @Summary  Register a user and start a session
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    input  body  SignupRequest  true  "Signup input"
// @Success  201  {object}  User
// @Router   /api/auth/signup [post]
func (ctrl *AuthController) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, token, err := ctrl.Service.Signup(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Email already registered",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ctrl.setSessionCookie(c, token)
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary  Authenticate and start a session
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    input  body  LoginRequest  true  "Login input"
// @Success  200  {object}  User
// @Router   /api/auth/login [post]
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, token, err := ctrl.Service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	ctrl.setSessionCookie(c, token)
	return c.JSON(user)
}

// Logout godoc
// @Summary  Clear the session cookie
// @Tags     auth
// @Produce  json
// @Success  200  {object}  map[string]bool
// @Router   /api/auth/logout [post]
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     utils.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   ctrl.Config.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(fiber.Map{"success": true})
}

// CurrentUser godoc
// @Summary  The authenticated user
// @Tags     auth
// @Produce  json
// @Success  200  {object}  User
// @Router   /api/auth/user [get]
func (ctrl *AuthController) CurrentUser(c *fiber.Ctx) error {
	user, err := ctrl.Service.User(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Not authenticated",
		})
	}
	return c.JSON(user)
}

func (ctrl *AuthController) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     utils.CookieName,
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		Secure:   ctrl.Config.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
