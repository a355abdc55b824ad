package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
)

// CatalogHandler serves the public directory: merchant listings, store
// pages and their product catalogs. No auth required.
type CatalogHandler struct {
	catalog domain.CatalogUseCase
	log     *logrus.Logger
}

func NewCatalogHandler(catalog domain.CatalogUseCase, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		log:     logger,
	}
}

func (h *CatalogHandler) ListMerchants(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "ListMerchants")

	query := c.Query("q")
	category := domain.MerchantCategory(c.Query("category"))

	merchants, err := h.catalog.ListMerchants(c.Request.Context(), query, category)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"merchants": merchants, "count": len(merchants)})
}

func (h *CatalogHandler) GetMerchant(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "GetMerchant")

	merchant, err := h.catalog.GetMerchantBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, merchant)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "ListProducts")

	products, err := h.catalog.ListProductsBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}
