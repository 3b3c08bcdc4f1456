package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/smartshelf/inventory-system/internal/api/metrics"
	"github.com/smartshelf/inventory-system/internal/core/ports"
)

// ProductHandler handles HTTP requests for inventory operations.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        category  query     string  false  "Exact category"
// @Param        supplier  query     string  false  "Exact supplier"
// @Param        maxStock  query     int     false  "Only products with quantity <= maxStock"
// @Success      200       {array}   domain.Product
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	filter := ports.ProductFilter{
		Category: c.QueryParam("category"),
		Supplier: c.QueryParam("supplier"),
	}
	if raw := c.QueryParam("maxStock"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "maxStock must be an integer")
		}
		filter.MaxStock = &n
	}

	products, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get handles GET /products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	in, err := bindProduct(c)
	if err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.ProductChangesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, p)
}

// Update handles PUT /products/:id. Every writable field is replaced.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product ID"
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	in, err := bindProduct(c)
	if err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}

	metrics.ProductChangesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id   path  string  true  "Product ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.ProductChangesTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

func bindProduct(c echo.Context) (ports.ProductInput, error) {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return ports.ProductInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.ProductInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return ports.ProductInput{
		ProductName: req.ProductName,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Supplier:    req.Supplier,
		ImageURL:    req.ImageURL,
	}, nil
}
