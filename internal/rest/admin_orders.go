package rest

import (
	"context"
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
	AdminOrdersHandler struct {
		validate      *validator.Validate
		ordersService AdminOrdersService
	}

	AdminOrdersService interface {
		AdminList(ctx context.Context, keyword string, statuses []domain.OrderStatus, page, size int) (orders.OrderPage, error)
		AdminChangeStatus(ctx context.Context, orderID string, next domain.OrderStatus, adminID, note string) (domain.Order, error)
	}

	ChangeStatusInput struct {
		Status string `json:"status" validate:"required"`
		Note   string `json:"note"`
	}
)

func NewAdminOrdersHandler(ordersService AdminOrdersService) *AdminOrdersHandler {
	return &AdminOrdersHandler{
		validate:      validator.New(),
		ordersService: ordersService,
	}
}

func (h *AdminOrdersHandler) ListOrders(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	statuses := parseStatuses(c.QueryParam("status"))

	result, err := h.ordersService.AdminList(c.Request().Context(), c.QueryParam("keyword"), statuses, page, size)
	if err != nil {
		logger.Error("Failed to list orders for admin", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

func (h *AdminOrdersHandler) ChangeStatus(c echo.Context) error {
	var request ChangeStatusInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed change status validation", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	order, err := h.ordersService.AdminChangeStatus(
		c.Request().Context(),
		c.Param("id"),
		domain.OrderStatus(request.Status),
		callerID(c),
		request.Note,
	)
	if err != nil {
		logger.Error("Failed to change order status", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}
