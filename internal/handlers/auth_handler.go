package handlers

import (
	"log"
	"time"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const tokenTypeBearer = "bearer"

// UserHandler handles HTTP requests for accounts and sessions.
type UserHandler struct {
	authService   *services.AuthService
	userService   *services.UserService
	validate      *validator.Validate
	secureCookies bool
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, userService *services.UserService, secureCookies bool) *UserHandler {
	return &UserHandler{
		authService:   authService,
		userService:   userService,
		validate:      validator.New(),
		secureCookies: secureCookies,
	}
}

// RegisterRoutes registers the user and admin routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	users := router.Group("/users")
	users.Post("/register", h.HandleRegister)
	users.Post("/login", h.HandleLogin)
	users.Post("/refresh", h.HandleRefresh)
	users.Post("/logout", h.HandleLogout)
	users.Post("/logout-all", authRequired, h.HandleLogoutAll)
	users.Get("/me", authRequired, h.HandleMe)
	users.Get("/", authRequired, middleware.AdminOnly(), h.HandleListUsers)
	users.Get("/:id", authRequired, h.HandleGetUser)
	users.Put("/:id/username", authRequired, h.HandleUpdateUsername)
	users.Put("/:id/password", authRequired, h.HandleUpdatePassword)
	users.Put("/:id/admin", authRequired, middleware.AdminOnly(), h.HandleSetAdmin)
	users.Delete("/:id", authRequired, middleware.AdminOnly(), h.HandleDeleteUser)

	admin := router.Group("/admin", authRequired, middleware.AdminOnly())
	admin.Post("/make_admin/:id", h.HandleMakeAdmin)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Login    string `json:"login" validate:"required,min=3,max=50"`
	Username string `json:"username" validate:"required,min=1,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// HandleRegister creates an account and returns an access token for it.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if handled, err := bind(c, h.validate, &req); handled {
		return err
	}

	_, access, err := h.authService.RegisterUser(c.UserContext(), services.RegisterInput{
		Login:    req.Login,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		log.Printf("Error registering user %s: %v", req.Login, err)
		return respondError(c, err, "register user")
	}

	return c.JSON(fiber.Map{
		"access_token": access.Token,
		"token_type":   tokenTypeBearer,
	})
}

// LoginRequest is the form-encoded login body. Username carries the login.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// HandleLogin verifies credentials and sets the session cookies.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if handled, err := bind(c, h.validate, &req); handled {
		return err
	}

	session, err := h.authService.LoginUser(c.UserContext(), req.Username, req.Password)
	if err != nil {
		log.Printf("Error during login for user %s: %v", req.Username, err)
		return respondError(c, err, "log in")
	}

	h.setAccessCookie(c, session.Access)
	c.Cookie(&fiber.Cookie{
		Name:     middleware.RefreshTokenCookie,
		Value:    session.RefreshToken,
		Path:     "/",
		Expires:  session.RefreshExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"access_token": session.Access.Token,
		"token_type":   tokenTypeBearer,
	})
}

// HandleRefresh issues a new access token from the refresh cookie.
func (h *UserHandler) HandleRefresh(c *fiber.Ctx) error {
	access, err := h.authService.RefreshAccessToken(c.UserContext(), c.Cookies(middleware.RefreshTokenCookie))
	if err != nil {
		return respondError(c, err, "refresh token")
	}

	h.setAccessCookie(c, access)
	return c.JSON(fiber.Map{
		"access_token": access.Token,
		"token_type":   tokenTypeBearer,
	})
}

// HandleLogout clears the cookies and drops the refresh session. It
// always succeeds.
func (h *UserHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), c.Cookies(middleware.RefreshTokenCookie)); err != nil {
		log.Printf("Error deleting refresh session on logout: %v", err)
	}
	h.clearCookies(c)
	return c.JSON(fiber.Map{"message": "Successfully logged out"})
}

// HandleLogoutAll revokes every session of the caller.
func (h *UserHandler) HandleLogoutAll(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := h.authService.LogoutEverywhere(c.UserContext(), user.ID); err != nil {
		return respondError(c, err, "log out")
	}
	h.clearCookies(c)
	return c.JSON(fiber.Map{"message": "Logged out from all sessions"})
}

func (h *UserHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	p, handled, err := page(c, h.validate)
	if handled {
		return err
	}
	users, err := h.userService.ListUsers(c.UserContext(), middleware.CurrentUser(c), p.Skip, p.Limit)
	if err != nil {
		return respondError(c, err, "list users")
	}
	return c.JSON(users)
}

func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.userService.GetUser(c.UserContext(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "get user")
	}
	return c.JSON(user)
}

type updateUsernameRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
}

func (h *UserHandler) HandleUpdateUsername(c *fiber.Ctx) error {
	var req updateUsernameRequest
	if handled, err := bind(c, h.validate, &req); handled {
		return err
	}
	user, err := h.userService.UpdateUsername(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), req.Username)
	if err != nil {
		return respondError(c, err, "update username")
	}
	return c.JSON(user)
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
}

func (h *UserHandler) HandleUpdatePassword(c *fiber.Ctx) error {
	var req updatePasswordRequest
	if handled, err := bind(c, h.validate, &req); handled {
		return err
	}
	_, err := h.userService.UpdatePassword(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), req.CurrentPassword, req.NewPassword)
	if err != nil {
		return respondError(c, err, "update password")
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

type setAdminRequest struct {
	IsAdmin *bool `json:"is_admin" validate:"required"`
}

func (h *UserHandler) HandleSetAdmin(c *fiber.Ctx) error {
	var req setAdminRequest
	if handled, err := bind(c, h.validate, &req); handled {
		return err
	}
	user, err := h.userService.SetAdmin(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), *req.IsAdmin)
	if err != nil {
		return respondError(c, err, "change admin flag")
	}
	return c.JSON(user)
}

// HandleMakeAdmin grants the admin flag.
func (h *UserHandler) HandleMakeAdmin(c *fiber.Ctx) error {
	user, err := h.userService.SetAdmin(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), true)
	if err != nil {
		return respondError(c, err, "change admin flag")
	}
	return c.JSON(fiber.Map{"message": "User " + user.Login + " is now an admin"})
}

func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.userService.DeleteUser(c.UserContext(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return respondError(c, err, "delete user")
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

func (h *UserHandler) setAccessCookie(c *fiber.Ctx, access services.AccessToken) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "Bearer " + access.Token,
		Path:     "/",
		Expires:  access.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *UserHandler) clearCookies(c *fiber.Ctx) {
	for _, name := range []string{middleware.AccessTokenCookie, middleware.RefreshTokenCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			Secure:   h.secureCookies,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
}
