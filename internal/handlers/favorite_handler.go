package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
	"pasarumkm/internal/middleware"
)

type FavoriteHandler struct {
	favorites domain.FavoriteUseCase
	log       *logrus.Logger
}

func NewFavoriteHandler(favorites domain.FavoriteUseCase, logger *logrus.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favorites: favorites,
		log:       logger,
	}
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "AddFavorite")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	if err := h.favorites.AddFavorite(c.Request.Context(), userID, c.Param("merchantId")); err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Merchant favorited"})
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "RemoveFavorite")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	if err := h.favorites.RemoveFavorite(c.Request.Context(), userID, c.Param("merchantId")); err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Merchant unfavorited"})
}

func (h *FavoriteHandler) GetFavoriteStatus(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "GetFavoriteStatus")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	favorited, err := h.favorites.IsFavorite(c.Request.Context(), userID, c.Param("merchantId"))
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "ListFavorites")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	merchants, err := h.favorites.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"merchants": merchants, "count": len(merchants)})
}
