package rest

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"shirtshop/business/orders"
	"shirtshop/domain"
	"shirtshop/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	OrdersHandler struct {
		validate      *validator.Validate
		ordersService OrdersService
	}

	OrdersService interface {
		CreateOrder(ctx context.Context, userID, addressID string) (domain.Order, error)
		GetOrder(ctx context.Context, orderID, callerID string, isAdmin bool) (domain.Order, error)
		UploadSlip(ctx context.Context, orderID, userID, filename string, file io.Reader) (domain.Order, error)
		ListMyOrders(ctx context.Context, userID string, statuses []domain.OrderStatus, page, size int) (orders.OrderPage, error)
		RestoreCart(ctx context.Context, orderID, userID string) (domain.Cart, error)
	}

	CreateOrderInput struct {
		AddressID string `json:"address_id" validate:"required"`
	}
)

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		validate:      validator.New(),
		ordersService: ordersService,
	}
}

func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	userID := callerID(c)

	var request CreateOrderInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed create order validation", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	order, err := h.ordersService.CreateOrder(c.Request().Context(), userID, request.AddressID)
	if err != nil {
		logger.Error("Failed to create order", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

func (h *OrdersHandler) GetOrderByID(c echo.Context) error {
	order, err := h.ordersService.GetOrder(c.Request().Context(), c.Param("id"), callerID(c), isAdmin(c))
	if err != nil {
		logger.Error("Failed to get order by id", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

func (h *OrdersHandler) UploadSlip(c echo.Context) error {
	fileHeader, err := c.FormFile("slip")
	if err != nil {
		logger.Error("Missing slip file", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "slip file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open slip file", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	defer file.Close()

	order, err := h.ordersService.UploadSlip(c.Request().Context(), c.Param("id"), callerID(c), fileHeader.Filename, file)
	if err != nil {
		logger.Error("Failed to upload slip", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

func (h *OrdersHandler) GetMyOrders(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	statuses := parseStatuses(c.QueryParam("status"))

	result, err := h.ordersService.ListMyOrders(c.Request().Context(), callerID(c), statuses, page, size)
	if err != nil {
		logger.Error("Failed to list orders", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

func (h *OrdersHandler) RestoreCart(c echo.Context) error {
	cart, err := h.ordersService.RestoreCart(c.Request().Context(), c.Param("id"), callerID(c))
	if err != nil {
		logger.Error("Failed to restore cart from order", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cart))
}
