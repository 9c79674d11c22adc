package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ListProducts returns the product catalog.
// GET /v1/products
func (h *Handler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.store.ListProducts(ctx)
	if err != nil {
		log.Printf("ERROR: failed to list products: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list products"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
	})
}

// GetProduct returns a single product.
// GET /v1/products/:product_id
func (h *Handler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid product id"})
	}

	product, err := h.store.GetProduct(ctx, id)
	if err != nil {
		log.Printf("ERROR: failed to get product: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get product"})
	}
	if product == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "product not found"})
	}

	return c.JSON(http.StatusOK, product)
}
