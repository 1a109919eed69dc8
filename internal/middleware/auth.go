package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/domain"
	apihttp "github.com/Azeezfasasi/Tofar-Logistics-Backend/pkg/http"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const callerLocalsKey = "caller"

// Claims carries the resolved caller identity inside the access token. The
// account system issues the token; this backend only verifies it.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAuth verifies the Bearer token and stores the resolved caller on the
// request context.
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return apihttp.UnauthorizedResponse(c, "Authorization header required")
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return apihttp.UnauthorizedResponse(c, "Invalid authorization header format")
		}

		caller, err := resolveCaller(tokenParts[1], secret)
		if err != nil {
			return apihttp.UnauthorizedResponse(c, "Invalid token")
		}

		c.Locals(callerLocalsKey, caller)
		return c.Next()
	}
}

// RequireRoles allows the request through only when the already-resolved
// caller holds one of the given roles.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := CallerFromContext(c)
		if caller == nil {
			return apihttp.UnauthorizedResponse(c, "User not found in context")
		}
		if !caller.HasRole(roles...) {
			return apihttp.ForbiddenResponse(c, "Access denied")
		}
		return c.Next()
	}
}

func CallerFromContext(c *fiber.Ctx) *domain.Caller {
	caller, _ := c.Locals(callerLocalsKey).(*domain.Caller)
	return caller
}

func resolveCaller(tokenString, secret string) (*domain.Caller, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in token: %v", err)
	}

	return &domain.Caller{
		ID:    userID,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}

// GenerateToken signs an access token for the given caller. Used by tests and
// local tooling; production tokens come from the account system.
func GenerateToken(secret string, caller domain.Caller, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: caller.ID.String(),
		Email:  caller.Email,
		Role:   caller.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
