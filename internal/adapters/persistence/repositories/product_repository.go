package repositories

import (
	"context"
	"errors"

	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/models"
	"github.com/anietieasuquo/vending-machine/internal/core/domain"

	"gorm.io/gorm"
)

// productRepository implements ProductRepository interface
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create creates a new product
func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID gets a product by ID
func (r *productRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySellerAndName gets a product by its unique (seller, name) pair
func (r *productRepository) FindBySellerAndName(ctx context.Context, sellerID uint, name string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("seller_id = ? AND product_name = ?", sellerID, name).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindAll lists all products
func (r *productRepository) FindAll(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Update writes the product with compare-and-swap on Version. SellerID is
// deliberately absent from the update set: a product never changes seller.
func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND version = ?", product.ID, product.Version).
		Updates(map[string]interface{}{
			"product_name":        product.ProductName,
			"product_description": product.ProductDescription,
			"amount_available":    product.AmountAvailable,
			"cost_value":          product.Cost.Value,
			"cost_currency":       product.Cost.Currency,
			"cost_unit":           product.Cost.Unit,
			"version":             product.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Conflict("product was modified concurrently")
	}
	product.Version++
	return nil
}

// Delete removes a product
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, id).Error
}
