package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/taskhive-backend/internal/service"
)

type PaymentHandler struct {
	payments *service.PaymentService
}

func RegisterPayments(e *echo.Echo, payments *service.PaymentService) {
	handler := &PaymentHandler{payments: payments}

	g := e.Group("/payment")
	g.POST("/create-order", handler.createOrder)
}

// createOrder is a thin passthrough to the payment gateway; the order
// payload is returned as-is.
func (h *PaymentHandler) createOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "invalid request body"))
	}

	order, err := h.payments.CreateOrder(c.Request().Context(), req.Amount, req.Currency, req.Receipt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, err.Error()))
	}
	return c.JSON(http.StatusOK, order)
}
