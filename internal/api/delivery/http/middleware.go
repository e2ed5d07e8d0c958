package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"regintel/internal/api/service"
)

const (
	contextKeyUserID  = "user_id"
	contextKeySession = "session"

	// Validated sessions are kept in-process briefly so hot request paths
	// do not hit Redis on every call.
	sessionCacheTTL     = time.Minute
	sessionCacheCleanup = 5 * time.Minute
)

// SessionMiddleware authenticates requests from the session cookie.
type SessionMiddleware struct {
	authService service.AuthService
	cookieName  string
	cache       *gocache.Cache
}

// NewSessionMiddleware creates a new session middleware.
func NewSessionMiddleware(authService service.AuthService, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{
		authService: authService,
		cookieName:  cookieName,
		cache:       gocache.New(sessionCacheTTL, sessionCacheCleanup),
	}
}

// Authenticate resolves the session cookie and stores the user on the
// request context. Requests without a valid session get a 401.
func (m *SessionMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
		}

		session, err := m.resolve(c, cookie.Value)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired session"})
		}

		c.Set(contextKeyUserID, session.UserID)
		c.Set(contextKeySession, session)
		return next(c)
	}
}

// Forget drops a token from the local cache, e.g. on logout.
func (m *SessionMiddleware) Forget(token string) {
	m.cache.Delete(token)
}

func (m *SessionMiddleware) resolve(c echo.Context, token string) (*service.Session, error) {
	if cached, ok := m.cache.Get(token); ok {
		return cached.(*service.Session), nil
	}

	session, err := m.authService.ValidateSession(c.Request().Context(), token)
	if err != nil {
		return nil, err
	}
	m.cache.SetDefault(token, session)
	return session, nil
}

// userID returns the authenticated user's ID from the request context.
func userID(c echo.Context) string {
	id, _ := c.Get(contextKeyUserID).(string)
	return id
}

// LoginRateLimiter returns a per-IP rate limiter for the login endpoint.
func LoginRateLimiter(limit float64, burst int) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(limit),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
	})
}
