package http

import (
	"errors"
	"net/http"
	"strings"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const claimsContextKey = "dispatch.claims"

// Claims is the token payload every authenticated request carries. The
// token is issued by the account service; this side only verifies it.
type Claims struct {
	CallerID   string `json:"callerId"`
	BusinessID string `json:"businessId"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies the bearer token and stores the claims on the
// request context. Requests without a valid token get 401.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims := new(Claims)
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				if _, isHMAC := t.Method.(*jwt.SigningMethodHMAC); !isHMAC {
					return nil, errors.New("unexpected signing method")
				}
				return secret, nil
			})
			if err != nil || !parsed.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// RequireRoles rejects callers whose role is not in the allowed set.
// It must run after AuthMiddleware.
func RequireRoles(roles ...courier.Role) echo.MiddlewareFunc {
	allowed := make(map[courier.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := callerClaims(c)
			if err != nil {
				return err
			}

			role, err := courier.RoleFromString(claims.Role)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "unknown role")
			}

			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}

			return next(c)
		}
	}
}

func callerClaims(c echo.Context) (*Claims, error) {
	claims, ok := c.Get(claimsContextKey).(*Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing claims")
	}
	return claims, nil
}

func callerID(c echo.Context) (kernel.UUID, error) {
	claims, err := callerClaims(c)
	if err != nil {
		return kernel.UUID{}, err
	}

	id, err := kernel.UUIDFromString(claims.CallerID)
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid caller id")
	}
	return id, nil
}

func callerBusinessID(c echo.Context) (kernel.UUID, error) {
	claims, err := callerClaims(c)
	if err != nil {
		return kernel.UUID{}, err
	}

	id, err := kernel.UUIDFromString(claims.BusinessID)
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid business id")
	}
	return id, nil
}

func callerRole(c echo.Context) (courier.Role, error) {
	claims, err := callerClaims(c)
	if err != nil {
		return "", err
	}

	role, err := courier.RoleFromString(claims.Role)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusForbidden, "unknown role")
	}
	return role, nil
}
