package handler

import (
	"errors"
	"net/http"

	"github.com/Vaibhav-12521/Invento/internal/apierror"
	"github.com/Vaibhav-12521/Invento/internal/dto"
	"github.com/Vaibhav-12521/Invento/internal/infra"
	"github.com/Vaibhav-12521/Invento/internal/repository"
	"github.com/Vaibhav-12521/Invento/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct {
	svc      service.SaleService
	saleRepo repository.SaleRepository
	pdfDir   string
}

func NewSalesHandler(svc service.SaleService, saleRepo repository.SaleRepository, pdfDir string) *SalesHandler {
	return &SalesHandler{svc: svc, saleRepo: saleRepo, pdfDir: pdfDir}
}

// RecordSale godoc
// @Summary      Record a sale
// @Description  Atomically decrements product stock and appends a ledger row.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body body dto.RecordSaleRequest true "Sale details"
// @Success      201  {object} dto.SaleResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/sales [post]
func (h *SalesHandler) RecordSale(c *gin.Context) {
	var req dto.RecordSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordSale(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, apierror.New("Product not found"))
		case errors.Is(err, service.ErrInsufficientStock):
			c.JSON(http.StatusConflict, apierror.New("Insufficient stock"))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SalesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list sales"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SalesHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
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

// Delete removes a sale from the ledger. Stock is not restored.
func (h *SalesHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Sale not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to delete sale"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Receipt generates (or regenerates) the PDF receipt for a sale and serves it.
func (h *SalesHandler) Receipt(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	sale, err := h.saleRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Sale not found"))
		return
	}
	path, err := infra.GenerateReceiptPDF(sale, h.pdfDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to generate receipt"))
		return
	}
	c.FileAttachment(path, "receipt.pdf")
}
