package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/models"
	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/repositories"
	"github.com/anietieasuquo/vending-machine/internal/core/domain"
	"github.com/anietieasuquo/vending-machine/internal/pkg/coins"
)

// PurchaseService orchestrates the purchase transaction: it debits the
// buyer's deposit, decrements product stock, computes exact change and
// persists all three state changes atomically. Authorization is the
// caller's responsibility; the engine trusts it already happened.
type PurchaseService struct {
	txManager    repositories.TransactionManager
	purchaseRepo repositories.PurchaseRepository
	userRepo     repositories.UserRepository
	productRepo  repositories.ProductRepository
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	txManager repositories.TransactionManager,
	purchaseRepo repositories.PurchaseRepository,
	userRepo repositories.UserRepository,
	productRepo repositories.ProductRepository,
) *PurchaseService {
	return &PurchaseService{
		txManager:    txManager,
		purchaseRepo: purchaseRepo,
		userRepo:     userRepo,
		productRepo:  productRepo,
	}
}

// PurchaseInput represents a purchase request
type PurchaseInput struct {
	UserID   uint  `json:"user_id"`
	Quantity int64 `json:"quantity"`
}

// PurchaseResult is assembled from post-transaction state
type PurchaseResult struct {
	ID          uint                    `json:"id"`
	BuyerID     uint                    `json:"buyer_id"`
	TotalSpent  models.Amount           `json:"total_spent"`
	Change      models.CompositeAmount  `json:"change"`
	Product     *models.ProductResponse `json:"product"`
	DateCreated time.Time               `json:"date_created"`
}

// CreatePurchase executes a purchase of quantity units of the product.
//
// Preconditions fail fast with no side effects. The writes - purchase row,
// buyer deposit, product stock, COMPLETED transition - happen inside one
// transaction; if any optimistic write loses a race the whole set rolls
// back and the caller sees a single internal error, never partial state.
//
// Retrying is not idempotent: a retry re-checks funds and stock and would
// create a second purchase.
func (s *PurchaseService) CreatePurchase(ctx context.Context, productID uint, input *PurchaseInput) (*PurchaseResult, error) {
	if productID == 0 || input == nil || input.UserID == 0 {
		return nil, domain.Validation("invalid purchase data")
	}
	if input.Quantity <= 0 {
		return nil, domain.Validation("invalid quantity, must be greater than 0")
	}

	user, product, err := s.fetchUserAndProduct(ctx, input.UserID, productID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("user not found")
	}
	if product == nil {
		return nil, domain.NotFound("product not found")
	}

	if product.AmountAvailable < input.Quantity {
		return nil, domain.OutOfStock("out of stock")
	}

	totalSpent := product.Cost.Value * input.Quantity
	if user.Deposit.Value < totalSpent {
		return nil, domain.InsufficientFunds("insufficient funds")
	}

	var result *PurchaseResult
	err = s.txManager.RunInTransaction(ctx, func(tx repositories.TxRepositories) error {
		purchase := &models.Purchase{
			ProductID: productID,
			BuyerID:   input.UserID,
			SellerID:  product.SellerID,
			Amount: models.Amount{
				Value:    totalSpent,
				Currency: product.Cost.Currency,
				Unit:     product.Cost.Unit,
			},
			Status:  models.PurchaseStatusPending,
			Version: 1,
		}
		if err := tx.Purchases().Create(ctx, purchase); err != nil {
			return err
		}

		// Change the buyer is owed. If it cannot be dispensed as exact
		// coins the purchase still completes and the full amount stays on
		// the buyer's deposit instead of vending nothing back.
		change := user.Deposit.Value - totalSpent
		leftover := change
		changeList, changeErr := coins.MakeChange(coins.Denominations, change)
		if changeErr != nil {
			log.Printf("purchase: cannot make change of %d, buyer keeps change: %v", change, changeErr)
			changeList = []int64{}
		} else {
			leftover = 0
		}

		user.Deposit.Value = leftover
		if err := tx.Users().Update(ctx, user); err != nil {
			return domain.Internal("failed to complete purchase")
		}

		product.AmountAvailable -= input.Quantity
		if err := tx.Products().Update(ctx, product); err != nil {
			return domain.Internal("failed to complete purchase")
		}

		purchase.Status = models.PurchaseStatusCompleted
		if err := tx.Purchases().Update(ctx, purchase); err != nil {
			return domain.Internal("failed to finalize purchase")
		}

		result = &PurchaseResult{
			ID:         purchase.ID,
			BuyerID:    purchase.BuyerID,
			TotalSpent: purchase.Amount,
			Change: models.CompositeAmount{
				Value:    changeList,
				Currency: user.Deposit.Currency,
				Unit:     user.Deposit.Unit,
			},
			Product:     product.ToResponse(),
			DateCreated: purchase.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// fetchUserAndProduct reads both records concurrently; each datastore read
// is its own suspension point so neither lookup blocks the other.
func (s *PurchaseService) fetchUserAndProduct(ctx context.Context, userID, productID uint) (*models.User, *models.Product, error) {
	var (
		wg         sync.WaitGroup
		user       *models.User
		product    *models.Product
		userErr    error
		productErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		user, userErr = s.userRepo.FindByID(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		product, productErr = s.productRepo.FindByID(ctx, productID)
	}()
	wg.Wait()

	if userErr != nil {
		return nil, nil, userErr
	}
	if productErr != nil {
		return nil, nil, productErr
	}
	return user, product, nil
}

// GetPurchases lists purchases matching the optional filter; read-only
func (s *PurchaseService) GetPurchases(ctx context.Context, filter *repositories.PurchaseFilter) ([]*models.Purchase, error) {
	return s.purchaseRepo.FindAll(ctx, filter)
}
