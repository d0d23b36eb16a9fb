package repositories

import (
	"context"
	"errors"

	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/models"
	"github.com/anietieasuquo/vending-machine/internal/core/domain"

	"gorm.io/gorm"
)

// purchaseRepository implements PurchaseRepository interface
type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

// Create creates a new purchase row
func (r *purchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

// FindByID gets a purchase by ID
func (r *purchaseRepository) FindByID(ctx context.Context, id uint) (*models.Purchase, error) {
	var purchase models.Purchase
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&purchase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// FindAll lists purchases matching the filter
func (r *purchaseRepository) FindAll(ctx context.Context, filter *PurchaseFilter) ([]*models.Purchase, error) {
	query := r.db.WithContext(ctx).Model(&models.Purchase{})
	if filter != nil {
		if filter.ProductID != nil {
			query = query.Where("product_id = ?", *filter.ProductID)
		}
		if filter.BuyerID != nil {
			query = query.Where("buyer_id = ?", *filter.BuyerID)
		}
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
	}

	var purchases []*models.Purchase
	if err := query.Order("id").Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// Update writes the purchase status with compare-and-swap on Version.
func (r *purchaseRepository) Update(ctx context.Context, purchase *models.Purchase) error {
	res := r.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("id = ? AND version = ?", purchase.ID, purchase.Version).
		Updates(map[string]interface{}{
			"status":  purchase.Status,
			"version": purchase.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Conflict("purchase was modified concurrently")
	}
	purchase.Version++
	return nil
}
