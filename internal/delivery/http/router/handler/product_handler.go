package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"freshfarm/internal/delivery/http/middleware"
	"freshfarm/internal/delivery/http/response"
	"freshfarm/internal/domain/entity"
	"freshfarm/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for catalog handlers.
type ProductHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: logger}
}

// CreateProduct posts a new listing. Farmer only.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	farmerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input usecase.CreateProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), farmerID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

// UpdateProduct applies partial updates to an owned listing. Farmer only.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	farmerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	var input usecase.UpdateProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), farmerID, productID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

// DeleteProduct removes an owned listing and everything referencing it. Farmer only.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	farmerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), farmerID, productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// UploadProductImage stores a listing image and records its URL. Farmer only.
func (h *ProductHandler) UploadProductImage(c echo.Context) error {
	farmerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	product, err := h.uc.UploadProductImage(c.Request().Context(), farmerID, productID, contentType, file)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product image uploaded successfully")
}

// GetProduct returns a single listing.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	product, err := h.uc.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}

// ListProducts browses the catalog. A failed browse degrades to an
// empty list rather than erroring the storefront.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	input := usecase.ListProductsInput{
		Keyword:       c.QueryParam("keyword"),
		Category:      c.QueryParam("category"),
		Status:        c.QueryParam("status"),
		MinPrice:      parsePriceParam(c.QueryParam("minPrice")),
		MaxPrice:      parsePriceParam(c.QueryParam("maxPrice")),
		Location:      c.QueryParam("location"),
		AvailableOnly: c.QueryParam("available") == "true",
	}

	products, err := h.uc.ListProducts(c.Request().Context(), input)
	if err != nil {
		h.logger.Error("catalog browse failed", slog.String("error", err.Error()))

		return response.Success(c, http.StatusOK, []*entity.Product{}, "Products retrieved successfully")
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
}

// parsePriceParam returns nil for an absent or malformed price bound so a
// bad query string never narrows the browse result.
func parsePriceParam(raw string) *float64 {
	if raw == "" {
		return nil
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	return &price
}

// ListMyProducts returns the authenticated farmer's listings.
func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	farmerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	products, err := h.uc.ListFarmerProducts(c.Request().Context(), farmerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
}
