package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
	"pasarumkm/internal/middleware"
)

// CheckoutHandler turns the session cart into an order for the
// authenticated customer.
type CheckoutHandler struct {
	checkout domain.CheckoutUseCase
	carts    domain.CartUseCase
	log      *logrus.Logger
}

func NewCheckoutHandler(checkout domain.CheckoutUseCase, carts domain.CartUseCase, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		carts:    carts,
		log:      logger,
	}
}

type CheckoutRequest struct {
	CustomerName   string `json:"customer_name" binding:"required"`
	CustomerPhone  string `json:"customer_phone" binding:"required"`
	DeliveryMethod string `json:"delivery_method" binding:"required,oneof=pickup delivery"`
	AddressID      int64  `json:"address_id"`
	DeliveryAddr   string `json:"delivery_address"`
	Note           string `json:"note"`
	PaymentMethod  string `json:"payment_method" binding:"required,oneof=cash transfer qris"`
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "Checkout")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	token := c.GetHeader(CartSessionHeader)
	if token == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Cart session header required"})
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind request: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	cart, err := h.carts.GetCart(c.Request.Context(), token)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	order, err := h.checkout.Checkout(c.Request.Context(), userID, *cart, domain.CheckoutInput{
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		DeliveryMethod: domain.DeliveryMethod(req.DeliveryMethod),
		AddressID:      req.AddressID,
		DeliveryAddr:   req.DeliveryAddr,
		Note:           req.Note,
		PaymentMethod:  domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	// The order exists; reset the cart and pin the reference so the
	// confirmation page can still render. Failures here are logged, not
	// surfaced.
	finalCart := cart
	if cleared, clearErr := h.carts.ClearCart(c.Request.Context(), token); clearErr != nil {
		handlerLogger.Warnf("Order %s created but cart clear failed: %v", order.ID, clearErr)
	} else {
		finalCart = cleared
	}
	if withRef, refErr := h.carts.StartOrder(c.Request.Context(), token, domain.OrderRef{
		OrderID:      order.ID,
		MerchantName: order.MerchantName,
		Total:        order.Total,
	}); refErr != nil {
		handlerLogger.Warnf("Order %s created but pending ref save failed: %v", order.ID, refErr)
	} else {
		finalCart = withRef
	}

	c.JSON(http.StatusCreated, gin.H{
		"order": order,
		"cart":  finalCart,
	})
}

func (h *CheckoutHandler) ConfirmPayment(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "ConfirmPayment")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	order, err := h.checkout.ConfirmPayment(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
