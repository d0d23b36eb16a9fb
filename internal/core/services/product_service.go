package services

import (
	"context"

	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/models"
	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/repositories"
	"github.com/anietieasuquo/vending-machine/internal/core/domain"
	"github.com/anietieasuquo/vending-machine/internal/pkg/coins"
)

// ProductService handles product catalog business logic
type ProductService struct {
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repositories.ProductRepository,
	userRepo repositories.UserRepository,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// CreateProductInput represents create product input
type CreateProductInput struct {
	ProductName        string         `json:"product_name"`
	ProductDescription string         `json:"product_description,omitempty"`
	AmountAvailable    int64          `json:"amount_available"`
	Cost               *models.Amount `json:"cost"`
	SellerID           uint           `json:"seller_id"`
}

// UpdateProductInput represents partial product update input. Nil fields
// are left unchanged. SellerID is accepted only so that attempts to change
// it can be rejected explicitly.
type UpdateProductInput struct {
	ProductName        *string        `json:"product_name"`
	ProductDescription *string        `json:"product_description"`
	AmountAvailable    *int64         `json:"amount_available"`
	Cost               *models.Amount `json:"cost"`
	SellerID           *uint          `json:"seller_id"`
}

// CreateProduct validates and persists a new product for a seller
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*models.Product, error) {
	if input.ProductName == "" || input.SellerID == 0 {
		return nil, domain.Validation("invalid product data")
	}
	if input.AmountAvailable < 0 {
		return nil, domain.Validation("invalid amount available")
	}
	if input.Cost == nil || !coins.ValidCost(input.Cost.Value) {
		return nil, domain.Validation("invalid cost: only positive multiples of %d are allowed", coins.SmallestDenomination)
	}

	seller, err := s.userRepo.FindByID(ctx, input.SellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, domain.NotFound("seller not found")
	}

	existing, err := s.productRepo.FindBySellerAndName(ctx, input.SellerID, input.ProductName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("product already exists")
	}

	cost := *input.Cost
	if cost.Currency == "" {
		cost.Currency = models.DefaultCurrency
		cost.Unit = models.DefaultUnit
	}

	product := &models.Product{
		ProductName:        input.ProductName,
		ProductDescription: input.ProductDescription,
		AmountAvailable:    input.AmountAvailable,
		Cost:               cost,
		SellerID:           input.SellerID,
		Version:            1,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// FindProductByID gets a product by ID; absence is not an error
func (s *ProductService) FindProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// FindAllProducts lists all products
func (s *ProductService) FindAllProducts(ctx context.Context) ([]*models.Product, error) {
	return s.productRepo.FindAll(ctx)
}

// UpdateProduct applies a partial update under optimistic concurrency.
// The seller of a product can never change.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, input *UpdateProductInput) (*models.Product, error) {
	if input.ProductName != nil && *input.ProductName == "" {
		return nil, domain.Validation("product name cannot be empty")
	}
	if input.Cost != nil && !coins.ValidCost(input.Cost.Value) {
		return nil, domain.Validation("invalid cost: only positive multiples of %d are allowed", coins.SmallestDenomination)
	}
	if input.AmountAvailable != nil && *input.AmountAvailable < 0 {
		return nil, domain.Validation("invalid amount available")
	}

	product, err := s.getExpectedProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.SellerID != nil && *input.SellerID != product.SellerID {
		return nil, domain.Validation("the seller of a product cannot be changed; delete and create a new product")
	}

	if input.ProductName != nil {
		product.ProductName = *input.ProductName
	}
	if input.ProductDescription != nil {
		product.ProductDescription = *input.ProductDescription
	}
	if input.AmountAvailable != nil {
		product.AmountAvailable = *input.AmountAvailable
	}
	if input.Cost != nil {
		cost := *input.Cost
		if cost.Currency == "" {
			cost.Currency = product.Cost.Currency
			cost.Unit = product.Cost.Unit
		}
		product.Cost = cost
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.getExpectedProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *ProductService) getExpectedProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product not found")
	}
	return product, nil
}
