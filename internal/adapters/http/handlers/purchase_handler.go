package handlers

import (
	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/repositories"
	"github.com/anietieasuquo/vending-machine/internal/core/services"
	"github.com/anietieasuquo/vending-machine/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PurchaseHandler handles purchase endpoints
type PurchaseHandler struct {
	purchaseService *services.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// MakePurchase handles buying a product (buyer only). The buyer is the
// authenticated caller.
// @Summary Buy product
// @Tags Purchases
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 402 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /products/{id}/buy [post]
func (h *PurchaseHandler) MakePurchase(c *fiber.Ctx) error {
	productID, err := parseID(c)
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid product ID")
	}

	var input services.PurchaseInput
	if err := c.BodyParser(&input); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	buyerID, _ := c.Locals("userID").(uint)
	input.UserID = buyerID

	result, err := h.purchaseService.CreatePurchase(c.Context(), productID, &input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "Purchase completed successfully", result)
}

// ListPurchases handles listing all purchases (admin only), optionally
// filtered by userId and status query parameters
// @Summary List purchases
// @Tags Purchases
// @Security BearerAuth
// @Router /purchases [get]
func (h *PurchaseHandler) ListPurchases(c *fiber.Ctx) error {
	filter := &repositories.PurchaseFilter{}
	if v := c.QueryInt("userId", -1); v >= 0 {
		buyerID := uint(v)
		filter.BuyerID = &buyerID
	}
	if v := c.QueryInt("productId", -1); v >= 0 {
		productID := uint(v)
		filter.ProductID = &productID
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}

	purchases, err := h.purchaseService.GetPurchases(c.Context(), filter)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Purchases retrieved successfully", purchases)
}

// ListProductPurchases handles listing purchases of one product (owning
// seller only)
// @Summary List purchases for a product
// @Tags Purchases
// @Security BearerAuth
// @Router /products/{id}/purchases [get]
func (h *PurchaseHandler) ListProductPurchases(c *fiber.Ctx) error {
	productID, err := parseID(c)
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "invalid product ID")
	}

	filter := &repositories.PurchaseFilter{ProductID: &productID}
	purchases, err := h.purchaseService.GetPurchases(c.Context(), filter)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Purchases retrieved successfully", purchases)
}
