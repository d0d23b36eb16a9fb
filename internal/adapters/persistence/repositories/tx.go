package repositories

import (
	"context"

	"gorm.io/gorm"
)

// gormTransactionManager implements TransactionManager on a gorm DB.
type gormTransactionManager struct {
	db *gorm.DB
}

// NewTransactionManager creates a transaction manager bound to db
func NewTransactionManager(db *gorm.DB) TransactionManager {
	return &gormTransactionManager{db: db}
}

// RunInTransaction executes fn inside one database transaction. The
// repositories handed to fn are bound to the transaction connection, so
// every read and write through them is part of the same atomic unit.
// gorm rolls back when fn returns an error and commits otherwise.
func (m *gormTransactionManager) RunInTransaction(ctx context.Context, fn func(tx TxRepositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTxRepositories{tx: tx})
	})
}

// gormTxRepositories hands out repositories bound to one transaction.
type gormTxRepositories struct {
	tx *gorm.DB
}

func (r *gormTxRepositories) Users() UserRepository {
	return NewUserRepository(r.tx)
}

func (r *gormTxRepositories) Products() ProductRepository {
	return NewProductRepository(r.tx)
}

func (r *gormTxRepositories) Purchases() PurchaseRepository {
	return NewPurchaseRepository(r.tx)
}
