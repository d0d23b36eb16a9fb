package repositories

import (
	"context"

	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/models"
)

// Lookups return (nil, nil) when no row matches: absence is a normal
// outcome, not an error. Callers that require presence raise their own
// not-found error. Update methods compare-and-swap on the record's Version
// and fail with a conflict error when the stored version moved.

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

// ProductRepository defines product repository interface
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	FindBySellerAndName(ctx context.Context, sellerID uint, name string) (*models.Product, error)
	FindAll(ctx context.Context) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}

// PurchaseFilter narrows purchase listings. Nil fields match everything.
type PurchaseFilter struct {
	ProductID *uint
	BuyerID   *uint
	Status    *string
}

// PurchaseRepository defines purchase repository interface
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	FindByID(ctx context.Context, id uint) (*models.Purchase, error)
	FindAll(ctx context.Context, filter *PurchaseFilter) ([]*models.Purchase, error)
	Update(ctx context.Context, purchase *models.Purchase) error
}

// RoleRepository defines role repository interface
type RoleRepository interface {
	Create(ctx context.Context, role *models.Role) error
	FindByID(ctx context.Context, id uint) (*models.Role, error)
	FindByName(ctx context.Context, name string) (*models.Role, error)
	FindAll(ctx context.Context) ([]*models.Role, error)
}

// MachineRepository defines machine client repository interface
type MachineRepository interface {
	Create(ctx context.Context, machine *models.Machine) error
	FindByName(ctx context.Context, name string) (*models.Machine, error)
}

// TxRepositories is the transaction-scoped repository set handed to a
// transaction callback. Every write inside the callback must go through it.
type TxRepositories interface {
	Users() UserRepository
	Products() ProductRepository
	Purchases() PurchaseRepository
}

// TransactionManager runs a callback inside one atomic transaction. The
// transaction commits only if the callback returns nil; any error rolls
// back every write issued through the TxRepositories handle.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(tx TxRepositories) error) error
}
