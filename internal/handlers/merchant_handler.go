package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
	"pasarumkm/internal/middleware"
)

// MerchantHandler is the mitra dashboard surface: store registration and
// settings, the product catalog, and incoming orders.
type MerchantHandler struct {
	merchants domain.MerchantUseCase
	products  domain.ProductUseCase
	orders    domain.OrderUseCase
	log       *logrus.Logger
}

func NewMerchantHandler(merchants domain.MerchantUseCase, products domain.ProductUseCase, orders domain.OrderUseCase, logger *logrus.Logger) *MerchantHandler {
	return &MerchantHandler{
		merchants: merchants,
		products:  products,
		orders:    orders,
		log:       logger,
	}
}

type RegisterMerchantRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required,oneof=food retail service"`
	Description string `json:"description"`
}

func (h *MerchantHandler) RegisterMerchant(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "RegisterMerchant")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	var req RegisterMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind request: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	merchant, err := h.merchants.RegisterMerchant(c.Request.Context(), userID, req.Name, domain.MerchantCategory(req.Category), req.Description)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusCreated, merchant)
}

func (h *MerchantHandler) GetOwnStore(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "GetOwnStore")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	merchant, err := h.merchants.GetOwnMerchant(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, merchant)
}

func (h *MerchantHandler) UpdateStoreSettings(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "UpdateStoreSettings")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	var req domain.StoreSettingsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind request: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	merchant, err := h.merchants.UpdateStoreSettings(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, merchant)
}

type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"min=0"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Available   *bool  `json:"available"`
}

func (h *MerchantHandler) CreateProduct(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "CreateProduct")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind request: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	product, err := h.products.CreateProduct(c.Request.Context(), userID, &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    domain.MerchantCategory(req.Category),
		Available:   available,
	})
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Image       *string `json:"image"`
	Available   *bool   `json:"available"`
}

func (h *MerchantHandler) UpdateProduct(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "UpdateProduct")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind request: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Available != nil {
		updates["available"] = *req.Available
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), userID, c.Param("id"), updates)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *MerchantHandler) DeleteProduct(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "DeleteProduct")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	if err := h.products.DeleteProduct(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (h *MerchantHandler) ListProducts(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "ListOwnProducts")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	products, err := h.products.ListOwnProducts(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

func (h *MerchantHandler) ListOrders(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "ListMerchantOrders")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	merchant, err := h.merchants.GetOwnMerchant(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	limit, offset := parsePage(c)
	orders, err := h.orders.ListOrdersByMerchantID(c.Request.Context(), merchant.ID, limit, offset)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new processing ready completed"`
}

func (h *MerchantHandler) UpdateOrderStatus(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "UpdateOrderStatus")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind request: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	merchant, err := h.merchants.GetOwnMerchant(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	order, err := h.orders.UpdateOrderStatus(c.Request.Context(), merchant.ID, c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *MerchantHandler) MarkPaymentReceived(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "MarkPaymentReceived")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	merchant, err := h.merchants.GetOwnMerchant(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	order, err := h.orders.MarkPaymentReceived(c.Request.Context(), merchant.ID, c.Param("id"))
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
