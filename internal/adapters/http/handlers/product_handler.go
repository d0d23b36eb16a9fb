package handlers

import (
	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/models"
	"github.com/anietieasuquo/vending-machine/internal/core/services"
	"github.com/anietieasuquo/vending-machine/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	productService *services.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProduct handles product creation (seller only). The seller is the
// authenticated caller, never taken from the body.
// @Summary Create product
// @Tags Products
// @Security BearerAuth
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var input services.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	sellerID, _ := c.Locals("userID").(uint)
	input.SellerID = sellerID

	product, err := h.productService.CreateProduct(c.Context(), &input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "Product created successfully", product.ToResponse())
}

// ListProducts handles listing all products
// @Summary List products
// @Tags Products
// @Security BearerAuth
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.productService.FindAllProducts(c.Context())
	if err != nil {
		return response.Error(c, err)
	}

	out := make([]*models.ProductResponse, len(products))
	for i, product := range products {
		out[i] = product.ToResponse()
	}
	return response.Success(c, "Products retrieved successfully", out)
}

// GetProduct handles fetching a product by ID
// @Summary Get product by ID
// @Tags Products
// @Security BearerAuth
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid product ID")
	}

	product, err := h.productService.FindProductByID(c.Context(), id)
	if err != nil {
		return response.Error(c, err)
	}
	if product == nil {
		return response.Fail(c, fiber.StatusNotFound, "product not found")
	}

	return response.Success(c, "Product retrieved successfully", product.ToResponse())
}

// UpdateProduct handles partial product updates (owning seller only)
// @Summary Update product
// @Tags Products
// @Security BearerAuth
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid product ID")
	}

	var input services.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	product, err := h.productService.UpdateProduct(c.Context(), id, &input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Product updated successfully", product.ToResponse())
}

// DeleteProduct handles product deletion (owning seller only)
// @Summary Delete product
// @Tags Products
// @Security BearerAuth
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid product ID")
	}

	if err := h.productService.DeleteProduct(c.Context(), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Product deleted successfully", nil)
}
