package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
)

// CartSessionHeader carries the opaque cart session token. Clients that
// arrive without one get a fresh token echoed back on every response.
const CartSessionHeader = "X-Cart-Session"

type CartHandler struct {
	carts domain.CartUseCase
	log   *logrus.Logger
}

func NewCartHandler(carts domain.CartUseCase, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		carts: carts,
		log:   logger,
	}
}

func (h *CartHandler) sessionToken(c *gin.Context) string {
	token := c.GetHeader(CartSessionHeader)
	if token == "" {
		token = uuid.NewString()
	}
	c.Header(CartSessionHeader, token)
	return token
}

func (h *CartHandler) GetCart(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "GetCart")
	token := h.sessionToken(c)

	cart, err := h.carts.GetCart(c.Request.Context(), token)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// AddItemRequest carries no quantity: adding always puts one unit in
// the cart, and repeats of the same item merge. Quantities are adjusted
// through SetQuantity.
type AddItemRequest struct {
	ID    string `json:"id" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Price int64  `json:"price" binding:"min=0"`
	Image string `json:"image"`
	UMKM  string `json:"umkm" binding:"required"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "AddItem")
	token := h.sessionToken(c)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind request: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	cart, err := h.carts.AddItem(c.Request.Context(), token, domain.CartItem{
		ID:    req.ID,
		Name:  req.Name,
		Price: req.Price,
		Image: req.Image,
		UMKM:  req.UMKM,
	})
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *CartHandler) SetQuantity(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "SetQuantity")
	token := h.sessionToken(c)

	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind request: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	cart, err := h.carts.SetQuantity(c.Request.Context(), token, c.Param("itemId"), *req.Quantity)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "RemoveItem")
	token := h.sessionToken(c)

	cart, err := h.carts.RemoveItem(c.Request.Context(), token, c.Param("itemId"))
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "ClearCart")
	token := h.sessionToken(c)

	cart, err := h.carts.ClearCart(c.Request.Context(), token)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}
