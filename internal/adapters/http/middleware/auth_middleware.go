package middleware

import (
	"strconv"
	"strings"

	"github.com/anietieasuquo/vending-machine/internal/config"
	"github.com/anietieasuquo/vending-machine/internal/core/domain"
	"github.com/anietieasuquo/vending-machine/internal/core/services"
	"github.com/anietieasuquo/vending-machine/internal/pkg/jwt"
	"github.com/anietieasuquo/vending-machine/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Fail(c, fiber.StatusUnauthorized, "access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Fail(c, fiber.StatusUnauthorized, "access token expired")
			}
			return response.Fail(c, fiber.StatusUnauthorized, "invalid access token")
		}

		// 5. Set user info in context
		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)
		c.Locals("isAdmin", claims.IsAdmin)

		return c.Next()
	}
}

// PermissionsConfig describes what a protected route requires: a role
// intersection, an ownership constraint, or both. ReadOnly marks routes
// admins may always read.
type PermissionsConfig struct {
	Roles     []string
	OnlyOwner bool
	Entity    string // "product" or "user"
	ReadOnly  bool
}

// PermissionGuard decides whether a caller's resolved identity permits an
// operation. It runs after AuthMiddleware and before the handler; the
// services behind the routes perform no authorization of their own.
type PermissionGuard struct {
	productService *services.ProductService
}

// NewPermissionGuard creates a new permission guard
func NewPermissionGuard(productService *services.ProductService) *PermissionGuard {
	return &PermissionGuard{productService: productService}
}

// Permissions creates the authorization middleware for one route
func (g *PermissionGuard) Permissions(cfg PermissionsConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(uint)
		if !ok {
			return response.Fail(c, fiber.StatusUnauthorized, "unauthorized")
		}
		role, _ := c.Locals("role").(string)
		isAdmin, _ := c.Locals("isAdmin").(bool)

		// Admins read everything.
		if isAdmin && cfg.ReadOnly {
			return c.Next()
		}

		if cfg.OnlyOwner {
			if err := g.checkOwnership(c, cfg.Entity, userID, isAdmin); err != nil {
				return response.Error(c, err)
			}
		}

		if len(cfg.Roles) > 0 && !matchesRole(role, isAdmin, cfg.Roles) {
			return response.Fail(c, fiber.StatusForbidden, "you don't have permission to access this resource")
		}

		return c.Next()
	}
}

func (g *PermissionGuard) checkOwnership(c *fiber.Ctx, entity string, userID uint, isAdmin bool) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return domain.Validation("invalid resource id")
	}

	switch entity {
	case "user":
		if uint(id) != userID && !isAdmin {
			return domain.Forbidden("forbidden")
		}
	case "product":
		product, err := g.productService.FindProductByID(c.Context(), uint(id))
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("product not found")
		}
		if product.SellerID != userID && !isAdmin {
			return domain.Forbidden("forbidden")
		}
	}
	return nil
}

func matchesRole(role string, isAdmin bool, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(role, a) {
			return true
		}
		if isAdmin && strings.EqualFold(a, "admin") {
			return true
		}
	}
	return false
}
