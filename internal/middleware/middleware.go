package middleware

import (
	"Pasikuthu/domain"
	"Pasikuthu/internal/api/presenters"
	"Pasikuthu/pkg/jwt"
	"context"
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	// SessionSource reports the signed-in session, dropping it once it has expired.
	SessionSource interface {
		CurrentSession(ctx context.Context) (*domain.Session, error)
	}

	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService, sessions SessionSource) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

// AuthMiddleware admits a request only when its bearer token is a valid session
// token and is the access token of the current, unexpired session.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService, sessions SessionSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, err := sessions.CurrentSession(c.Context())
		if err != nil {
			return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedProcessRequest, err)
		}
		if current == nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageSessionRequired, domain.ErrNoSession)
		}

		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageSessionRequired, domain.ErrTokenInvalid)
		}

		claims, err := jwtService.ValidateSessionToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageSessionRequired, err)
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(current.AccessToken)) != 1 || claims.UserID != current.UserID {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageSessionRequired, domain.ErrTokenInvalid)
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("email", claims.Email)
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
