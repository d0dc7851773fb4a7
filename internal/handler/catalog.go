package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Vaibhav-12521/Invento/internal/apierror"
	"github.com/Vaibhav-12521/Invento/internal/dto"
	"github.com/Vaibhav-12521/Invento/internal/repository"
	"github.com/Vaibhav-12521/Invento/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const availabilityCacheTTL = 5 * time.Minute

// CatalogHandler serves the minimal read-only JSON projections for external
// API consumers. No authentication, no side effects.
type CatalogHandler struct {
	productSvc  service.ProductService
	saleSvc     service.SaleService
	productRepo repository.ProductRepository
	rdb         *redis.Client
}

func NewCatalogHandler(productSvc service.ProductService, saleSvc service.SaleService, productRepo repository.ProductRepository, rdb *redis.Client) *CatalogHandler {
	return &CatalogHandler{productSvc: productSvc, saleSvc: saleSvc, productRepo: productRepo, rdb: rdb}
}

// ListProducts returns [{id, name, price, stock_quantity}].
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	resp, err := h.productSvc.ListSummaries(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list products"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSale returns the external sale projection.
func (h *CatalogHandler) GetSale(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	resp, err := h.saleSvc.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Sale not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to load sale"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetAvailability serves a cached price/stock lookup for a single product.
func (h *CatalogHandler) GetAvailability(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cacheKey := "availability:" + c.Param("id")

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.AvailabilityResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	product, err := h.productRepo.FindByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Product not found"))
		return
	}

	resp := dto.AvailabilityResponse{
		Name:           product.Name,
		Price:          product.Price,
		StockAvailable: product.StockQuantity,
		Category:       product.Category,
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, availabilityCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
