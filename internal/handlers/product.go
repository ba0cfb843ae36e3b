package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	dom "github.com/JulianPasquale/fudo-rack/internal/domain"
	"github.com/JulianPasquale/fudo-rack/internal/dto"
	"github.com/JulianPasquale/fudo-rack/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductHandler handles product creation, listing and status polling.
type ProductHandler struct {
	svc           *service.ProductService
	acceptMessage string
}

// NewProductHandler returns a new ProductHandler. delay is only used for the
// human-readable 202 message.
func NewProductHandler(svc *service.ProductService, delay time.Duration) *ProductHandler {
	return &ProductHandler{
		svc: svc,
		acceptMessage: fmt.Sprintf(
			"Product creation started. It will be available in %d seconds.",
			int(delay.Seconds()),
		),
	}
}

// Create godoc
// @Summary      Create a product
// @Description  Accepts the product and finalizes it in the background.
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateProductRequest  true  "Product body"
// @Success      202   {object}  dto.CreateProductResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	p, err := h.svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrMissingName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing product name"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product creation failed"})
		return
	}
	c.JSON(http.StatusAccepted, dto.CreateProductResponse{
		ID:      p.ID,
		Status:  string(dom.StatusPending),
		Message: h.acceptMessage,
	})
}

// List godoc
// @Summary      List products
// @Description  Returns completed products only, in completion order.
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListProductsResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ListProductsResponse{Products: productsToResponses(list)})
}

// Status godoc
// @Summary      Product status
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "Product ID"
// @Success      200  {object}  dto.ProductStatusResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /products/status [get]
func (h *ProductHandler) Status(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing product id"})
		return
	}
	res, err := h.svc.Status(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := dto.ProductStatusResponse{ID: id, Status: string(res.Status)}
	if res.Status == dom.StatusCompleted {
		p := productToResponse(res.Product)
		resp.Product = &p
	}
	c.JSON(http.StatusOK, resp)
}

func productToResponse(p dom.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}

func productsToResponses(list []dom.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, len(list))
	for i := range list {
		out[i] = productToResponse(list[i])
	}
	return out
}
