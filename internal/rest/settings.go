package rest

import (
	"context"
	"net/http"

	"shirtshop/domain"
	"shirtshop/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	SettingsHandler struct {
		validate        *validator.Validate
		settingsService SettingsService
	}

	SettingsService interface {
		GetOrInit(ctx context.Context) (domain.PaymentSettings, error)
		Update(ctx context.Context, target string, expireMinutes int, enabled bool) (domain.PaymentSettings, error)
	}

	SettingsInput struct {
		Target        string `json:"target" validate:"required"`
		ExpireMinutes int    `json:"expire_minutes" validate:"required,min=1,max=1440"`
		Enabled       bool   `json:"enabled"`
	}
)

func NewSettingsHandler(settingsService SettingsService) *SettingsHandler {
	return &SettingsHandler{
		validate:        validator.New(),
		settingsService: settingsService,
	}
}

func (h *SettingsHandler) GetSettings(c echo.Context) error {
	settings, err := h.settingsService.GetOrInit(c.Request().Context())
	if err != nil {
		logger.Error("Failed to get payment settings", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(settings))
}

func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	var request SettingsInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed settings validation", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	settings, err := h.settingsService.Update(c.Request().Context(), request.Target, request.ExpireMinutes, request.Enabled)
	if err != nil {
		logger.Error("Failed to update payment settings", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(settings))
}
