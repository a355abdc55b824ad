package handlers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
	"pasarumkm/internal/middleware"
	"pasarumkm/internal/tracker"
)

// sseHeartbeat keeps idle event streams from being reaped by proxies.
const sseHeartbeat = 25 * time.Second

type OrderHandler struct {
	orders domain.OrderUseCase
	hub    *tracker.Hub
	log    *logrus.Logger
}

func NewOrderHandler(orders domain.OrderUseCase, hub *tracker.Hub, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		hub:    hub,
		log:    logger,
	}
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "ListOrders")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	limit, offset := parsePage(c)
	orders, err := h.orders.ListOrdersByUserID(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// GetOrder returns the order together with the current progress
// estimate, so a client without a live subscription still gets a
// sensible progress bar position.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "GetOrder")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	order, err := h.loadOwnOrder(c, userID)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":    order,
		"progress": tracker.Estimate(order, time.Now()),
	})
}

// StreamOrderEvents pushes status changes for one order over SSE. The
// initial state is sent immediately so the client never renders blind,
// then each hub update follows as its own event.
func (h *OrderHandler) StreamOrderEvents(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "StreamOrderEvents")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	order, err := h.loadOwnOrder(c, userID)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	updates, cancel := h.hub.Subscribe(order.ID)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.SSEvent("status", tracker.Update{
		OrderID:       order.ID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		At:            time.Now(),
	})
	c.Writer.Flush()

	heartbeat := time.NewTicker(sseHeartbeat)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case update, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("status", update)
			// Terminal status: deliver and close the stream.
			return update.Status != domain.StatusCompleted
		case <-heartbeat.C:
			c.SSEvent("heartbeat", gin.H{"at": time.Now()})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})

	handlerLogger.Debugf("Event stream for order %s closed", order.ID)
}

func (h *OrderHandler) loadOwnOrder(c *gin.Context, userID int64) (*domain.Order, error) {
	order, err := h.orders.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, errNotYourOrder
	}
	return order, nil
}

func parsePage(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
