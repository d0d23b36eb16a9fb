package handlers

import (
	"strconv"

	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/models"
	"github.com/anietieasuquo/vending-machine/internal/core/services"
	"github.com/anietieasuquo/vending-machine/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user account endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser handles buyer/seller registration
// @Summary Create user
// @Description Register a new buyer or seller account
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.CreateUserInput true "User data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.userService.CreateUser(c.Context(), &input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "User created successfully", user.ToResponse())
}

// CreateAdmin handles admin creation (admin only)
// @Summary Create admin
// @Tags Users
// @Security BearerAuth
// @Router /users/admin [post]
func (h *UserHandler) CreateAdmin(c *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.userService.CreateAdmin(c.Context(), &input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "Admin created successfully", user.ToResponse())
}

// ListUsers handles listing all users (admin only)
// @Summary List users
// @Tags Users
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.FindAll(c.Context())
	if err != nil {
		return response.Error(c, err)
	}

	out := make([]*models.UserResponse, len(users))
	for i, user := range users {
		out[i] = user.ToResponse()
	}
	return response.Success(c, "Users retrieved successfully", out)
}

// GetUser handles fetching a user by ID (owner only)
// @Summary Get user by ID
// @Tags Users
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid user ID")
	}

	user, err := h.userService.FindUserByID(c.Context(), id)
	if err != nil {
		return response.Error(c, err)
	}
	if user == nil {
		return response.Fail(c, fiber.StatusNotFound, "user not found")
	}

	return response.Success(c, "User retrieved successfully", user.ToResponse())
}

// DepositRequest represents a deposit request body
type DepositRequest struct {
	Amount models.Amount `json:"amount"`
}

// MakeDeposit handles depositing a single coin (buyer, owner only)
// @Summary Make deposit
// @Tags Users
// @Security BearerAuth
// @Router /users/{id}/deposits [post]
func (h *UserHandler) MakeDeposit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid user ID")
	}

	var req DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.userService.MakeDeposit(c.Context(), id, req.Amount)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Deposit successful", fiber.Map{
		"deposit": user.Deposit,
	})
}

// ResetDeposit handles resetting a deposit to zero (buyer, owner only)
// @Summary Reset deposit
// @Tags Users
// @Security BearerAuth
// @Router /users/{id}/deposits/reset [post]
func (h *UserHandler) ResetDeposit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid user ID")
	}

	user, err := h.userService.ResetDeposit(c.Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Deposit reset successfully", fiber.Map{
		"deposit": user.Deposit,
	})
}

// ChangePasswordRequest represents a password change request body
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// ChangePassword handles password changes (owner only)
// @Summary Change password
// @Tags Users
// @Security BearerAuth
// @Router /users/{id}/password [patch]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid user ID")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.userService.ChangePassword(c.Context(), id, req.Password); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Password changed successfully", nil)
}

// UpdateRoleRequest represents a role update request body
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateRole handles role changes (admin only)
// @Summary Update user role
// @Tags Users
// @Security BearerAuth
// @Router /users/{id}/roles [patch]
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid user ID")
	}

	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.userService.UpdateRole(c.Context(), id, req.Role)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Role updated successfully", user.ToResponse())
}

// DeleteUser handles account deletion (owner only)
// @Summary Delete user
// @Tags Users
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid user ID")
	}

	if err := h.userService.RemoveUser(c.Context(), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "User deleted successfully", nil)
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
