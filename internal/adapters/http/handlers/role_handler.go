package handlers

import (
	"github.com/anietieasuquo/vending-machine/internal/core/services"
	"github.com/anietieasuquo/vending-machine/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RoleHandler handles role endpoints (admin only)
type RoleHandler struct {
	roleService *services.RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// CreateRole handles role creation
// @Summary Create role
// @Tags Roles
// @Security BearerAuth
// @Router /roles [post]
func (h *RoleHandler) CreateRole(c *fiber.Ctx) error {
	var input services.CreateRoleInput
	if err := c.BodyParser(&input); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	role, err := h.roleService.CreateRole(c.Context(), &input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "Role created successfully", role)
}

// ListRoles handles listing all roles
// @Summary List roles
// @Tags Roles
// @Security BearerAuth
// @Router /roles [get]
func (h *RoleHandler) ListRoles(c *fiber.Ctx) error {
	roles, err := h.roleService.GetRoles(c.Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Roles retrieved successfully", roles)
}
