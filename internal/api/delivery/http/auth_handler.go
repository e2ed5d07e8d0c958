package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"regintel/internal/api/dto"
	"regintel/internal/api/service"
	"regintel/pkg/logger"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService  service.AuthService
	sessions     *SessionMiddleware
	cookieName   string
	sessionTTL   time.Duration
	secureCookie bool
	logger       *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, sessions *SessionMiddleware, cookieName string, sessionTTL time.Duration, secureCookie bool, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		sessions:     sessions,
		cookieName:   cookieName,
		sessionTTL:   sessionTTL,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// RegisterRoutes registers the auth routes to the Echo group. The login
// route carries its own rate limiter.
func (h *AuthHandler) RegisterRoutes(g *echo.Group, loginLimiter echo.MiddlewareFunc) {
	g.POST("/login", h.Login, loginLimiter)
	g.POST("/logout", h.Logout, h.sessions.Authenticate)
	g.GET("/me", h.Me, h.sessions.Authenticate)
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and set the session cookie
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials  body    dto.LoginRequest   true    "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password are required"})
	}

	resp, token, err := h.authService.Login(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
		}
		h.logger.Error("Login failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Log out
// @Description Discard the session and clear the cookie
// @Tags auth
// @Produce  json
// @Success 204 {object} nil
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			h.logger.Error("Logout failed", logger.ErrorField(err))
		}
		h.sessions.Forget(cookie.Value)
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.NoContent(http.StatusNoContent)
}

// Me godoc
// @Summary Current session
// @Description Return the authenticated user's session
// @Tags auth
// @Produce  json
// @Success 200 {object} service.Session
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	session, _ := c.Get(contextKeySession).(*service.Session)
	if session == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	return c.JSON(http.StatusOK, session)
}
