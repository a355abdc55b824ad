package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
	"pasarumkm/internal/middleware"
)

type AddressHandler struct {
	addresses domain.AddressUseCase
	log       *logrus.Logger
}

func NewAddressHandler(addresses domain.AddressUseCase, logger *logrus.Logger) *AddressHandler {
	return &AddressHandler{
		addresses: addresses,
		log:       logger,
	}
}

type AddressRequest struct {
	Label      string `json:"label"`
	Recipient  string `json:"recipient" binding:"required"`
	Phone      string `json:"phone"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code"`
	IsPrimary  bool   `json:"is_primary"`
}

func (h *AddressHandler) CreateAddress(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "CreateAddress")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind request: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	address, err := h.addresses.CreateAddress(c.Request.Context(), userID, &domain.Address{
		Label:      req.Label,
		Recipient:  req.Recipient,
		Phone:      req.Phone,
		Street:     req.Street,
		City:       req.City,
		PostalCode: req.PostalCode,
		IsPrimary:  req.IsPrimary,
	})
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusCreated, address)
}

func (h *AddressHandler) ListAddresses(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "ListAddresses")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	addresses, err := h.addresses.ListAddresses(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses, "count": len(addresses)})
}

type UpdateAddressRequest struct {
	Label      *string `json:"label"`
	Recipient  *string `json:"recipient"`
	Phone      *string `json:"phone"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	PostalCode *string `json:"postal_code"`
}

func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "UpdateAddress")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	addressID, err := parseAddressID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid address ID format"})
		return
	}

	var req UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind request: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Label != nil {
		updates["label"] = *req.Label
	}
	if req.Recipient != nil {
		updates["recipient"] = *req.Recipient
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Street != nil {
		updates["street"] = *req.Street
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.PostalCode != nil {
		updates["postal_code"] = *req.PostalCode
	}

	address, err := h.addresses.UpdateAddress(c.Request.Context(), userID, addressID, updates)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, address)
}

func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "DeleteAddress")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	addressID, err := parseAddressID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid address ID format"})
		return
	}

	if err := h.addresses.DeleteAddress(c.Request.Context(), userID, addressID); err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}

func (h *AddressHandler) SetPrimary(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "SetPrimaryAddress")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	addressID, err := parseAddressID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid address ID format"})
		return
	}

	if err := h.addresses.SetPrimary(c.Request.Context(), userID, addressID); err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Primary address updated"})
}

func parseAddressID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
