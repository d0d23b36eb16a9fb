package services

import (
	"context"

	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/models"
	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/repositories"
	"github.com/anietieasuquo/vending-machine/internal/core/domain"
)

// RoleService handles role reference data
type RoleService struct {
	roleRepo repositories.RoleRepository
}

// NewRoleService creates a new role service
func NewRoleService(roleRepo repositories.RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

// CreateRoleInput represents create role input
type CreateRoleInput struct {
	Name       string             `json:"name"`
	Privileges []models.Privilege `json:"privileges"`
	IsAdmin    bool               `json:"is_admin"`
}

// CreateRole creates a new role with its privilege set
func (s *RoleService) CreateRole(ctx context.Context, input *CreateRoleInput) (*models.Role, error) {
	if input.Name == "" || len(input.Privileges) == 0 {
		return nil, domain.Validation("invalid role data")
	}

	existing, err := s.roleRepo.FindByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("role already exists")
	}

	role := &models.Role{
		Name:       input.Name,
		Privileges: input.Privileges,
		IsAdmin:    input.IsAdmin,
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// GetRoles lists all roles
func (s *RoleService) GetRoles(ctx context.Context) ([]*models.Role, error) {
	return s.roleRepo.FindAll(ctx)
}

// FindRoleByID gets a role by ID; absence is not an error
func (s *RoleService) FindRoleByID(ctx context.Context, id uint) (*models.Role, error) {
	return s.roleRepo.FindByID(ctx, id)
}

// FindRoleByName gets a role by name; absence is not an error
func (s *RoleService) FindRoleByName(ctx context.Context, name string) (*models.Role, error) {
	return s.roleRepo.FindByName(ctx, name)
}
