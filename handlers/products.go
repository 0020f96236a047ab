package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/kikelara/kikelara-backend-go/models"
	"github.com/kikelara/kikelara-backend-go/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// GetProducts returns the public catalog.
func GetProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, store.Products())
}

// GetProduct returns a single catalog entry.
func GetProduct(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid id"})
	}
	for _, p := range store.Products() {
		if p.ID == id {
			return c.JSON(http.StatusOK, p)
		}
	}
	return c.JSON(http.StatusNotFound, map[string]any{"success": false, "message": "Product not found"})
}

// CreateProduct adds a catalog entry.
func CreateProduct(c echo.Context) error {
	var product models.Product
	if err := c.Bind(&product); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid payload"})
	}
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" || product.Price < 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Name and a non-negative price are required"})
	}

	now := time.Now()
	product.ID = utils.NewID(now)
	product.TouchTimestamps(now)

	products := store.Products()
	products = append(products, product)
	if err := store.WriteProducts(products); err != nil {
		log.Error().Err(err).Msg("failed to save product")
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": "Failed to save product"})
	}
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "product": product})
}

// UpdateProduct replaces a catalog entry, keeping its id and createdAt.
func UpdateProduct(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid id"})
	}

	var product models.Product
	if err := c.Bind(&product); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid payload"})
	}
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" || product.Price < 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Name and a non-negative price are required"})
	}

	products := store.Products()
	for i := range products {
		if products[i].ID != id {
			continue
		}
		product.ID = id
		product.CreatedAt = products[i].CreatedAt
		product.TouchTimestamps(time.Now())
		products[i] = product
		if err := store.WriteProducts(products); err != nil {
			log.Error().Err(err).Int64("productId", id).Msg("failed to update product")
			return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": "Failed to save product"})
		}
		return c.JSON(http.StatusOK, map[string]any{"success": true, "product": product})
	}
	return c.JSON(http.StatusNotFound, map[string]any{"success": false, "message": "Product not found"})
}

// DeleteProduct removes a catalog entry.
func DeleteProduct(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid id"})
	}

	products := store.Products()
	next := products[:0:0]
	for _, p := range products {
		if p.ID != id {
			next = append(next, p)
		}
	}
	if len(next) == len(products) {
		return c.JSON(http.StatusNotFound, map[string]any{"success": false, "message": "Product not found"})
	}
	if err := store.WriteProducts(next); err != nil {
		log.Error().Err(err).Int64("productId", id).Msg("failed to delete product")
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": "Failed to delete product"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}
