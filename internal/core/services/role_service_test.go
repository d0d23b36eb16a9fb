package services

import (
	"context"
	"testing"

	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/models"
	"github.com/anietieasuquo/vending-machine/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRole(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	service := NewRoleService(&fakeRoleRepository{store: store})
	ctx := context.Background()

	role, err := service.CreateRole(ctx, &CreateRoleInput{
		Name:       "Auditor",
		Privileges: []models.Privilege{models.PrivilegeViewProduct},
	})
	require.NoError(t, err)
	assert.Equal(t, "Auditor", role.Name)
	assert.False(t, role.IsAdmin)

	_, err = service.CreateRole(ctx, &CreateRoleInput{Name: "", Privileges: []models.Privilege{models.PrivilegeAll}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = service.CreateRole(ctx, &CreateRoleInput{Name: "Empty"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Role names are unique, case-insensitively
	_, err = service.CreateRole(ctx, &CreateRoleInput{
		Name:       "auditor",
		Privileges: []models.Privilege{models.PrivilegeViewProduct},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestFindRoles(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	buyer := store.addRole(models.Role{Name: "Buyer", Privileges: []models.Privilege{models.PrivilegePurchase}})
	store.addRole(models.Role{Name: "Seller", Privileges: []models.Privilege{models.PrivilegeAddProduct}})
	service := NewRoleService(&fakeRoleRepository{store: store})
	ctx := context.Background()

	roles, err := service.GetRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 2)

	found, err := service.FindRoleByID(ctx, buyer.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Buyer", found.Name)

	found, err = service.FindRoleByName(ctx, "seller")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Seller", found.Name)

	found, err = service.FindRoleByName(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, found)
}
