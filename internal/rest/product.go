package rest

import (
	"context"
	"net/http"
	"strconv"

	"shirtshop/business/product"
	"shirtshop/domain"
	"shirtshop/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	ProductHandler struct {
		validate       *validator.Validate
		productService ProductService
	}

	ProductService interface {
		ListProducts(ctx context.Context, category string, page, size int) (product.ProductPage, error)
		GetProduct(ctx context.Context, id string) (domain.Product, error)
		CreateProduct(ctx context.Context, p *domain.Product) (domain.Product, error)
		UpdateProduct(ctx context.Context, p *domain.Product) (domain.Product, error)
		DeleteProduct(ctx context.Context, id string) error
		LowStockReport(ctx context.Context, threshold, page, size int) (product.ProductPage, error)
	}

	ProductInput struct {
		Name            string                `json:"name" validate:"required"`
		Description     string                `json:"description"`
		Price           int                   `json:"price" validate:"required,gt=0"`
		Category        string                `json:"category" validate:"required"`
		ImageURLs       []string              `json:"image_urls"`
		AvailableColors []string              `json:"available_colors"`
		AvailableSizes  []string              `json:"available_sizes"`
		VariantStocks   []domain.VariantStock `json:"variant_stocks"`
	}
)

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		validate:       validator.New(),
		productService: productService,
	}
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	result, err := h.productService.ListProducts(c.Request().Context(), c.QueryParam("category"), page, size)
	if err != nil {
		logger.Error("Failed to list products", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	p, err := h.productService.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		logger.Error("Failed to get product by id", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(p))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var request ProductInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed product validation", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	created, err := h.productService.CreateProduct(c.Request().Context(), request.toDomain(""))
	if err != nil {
		logger.Error("Failed to create product", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var request ProductInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed product validation", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	updated, err := h.productService.UpdateProduct(c.Request().Context(), request.toDomain(c.Param("id")))
	if err != nil {
		logger.Error("Failed to update product", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	if err := h.productService.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		logger.Error("Failed to delete product", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Product deleted successfully"))
}

func (h *ProductHandler) LowStockReport(c echo.Context) error {
	threshold, _ := strconv.Atoi(c.QueryParam("threshold"))
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	result, err := h.productService.LowStockReport(c.Request().Context(), threshold, page, size)
	if err != nil {
		logger.Error("Failed to build low stock report", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

func (in ProductInput) toDomain(id string) *domain.Product {
	return &domain.Product{
		ID:              id,
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		Category:        in.Category,
		ImageURLs:       in.ImageURLs,
		AvailableColors: in.AvailableColors,
		AvailableSizes:  in.AvailableSizes,
		VariantStocks:   in.VariantStocks,
	}
}
