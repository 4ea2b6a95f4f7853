package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/ordering-system/internal/core/domain"
	"github.com/bistroboss/ordering-system/internal/core/ports"
)

// PaymentHandler serves payment intents and checkout finalization.
type PaymentHandler struct {
	payments  ports.PaymentService
	checkouts ports.CheckoutService
}

func NewPaymentHandler(payments ports.PaymentService, checkouts ports.CheckoutService) *PaymentHandler {
	return &PaymentHandler{payments: payments, checkouts: checkouts}
}

// CreateIntent handles POST /create-payment-intent.
//
// @Summary      Create a payment intent
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createIntentRequest  true  "Price in major units"
// @Success      200   {object}  createIntentResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      401   {object}  errorEnvelope
// @Failure      422   {object}  errorEnvelope
// @Failure      502   {object}  errorEnvelope
// @Router       /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	caller, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req createIntentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.payments.CreateIntent(c.Request().Context(), ports.CreateIntentInput{
		Email:       caller,
		Price:       req.Price,
		CartItemIDs: req.CartItems,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, createIntentResponse{ClientSecret: res.ClientSecret})
}

// Finalize handles POST /payment.
//
// @Summary      Record a payment and clear the paid cart items
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string          false  "Rejects a repeated submission with 409"
// @Param        body             body      paymentRequest  true   "Confirmed payment"
// @Success      200              {object}  paymentResponse
// @Failure      400              {object}  errorEnvelope
// @Failure      401              {object}  errorEnvelope
// @Failure      403              {object}  errorEnvelope
// @Failure      409              {object}  errorEnvelope
// @Router       /payment [post]
func (h *PaymentHandler) Finalize(c echo.Context) error {
	caller, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req paymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Email != caller {
		return domain.ErrForbidden
	}

	res, err := h.checkouts.Finalize(c.Request().Context(), ports.FinalizeInput{
		Email:          caller,
		Price:          req.Price,
		TransactionID:  req.TransactionID,
		CartItemIDs:    req.CartItems,
		MenuItemIDs:    req.MenuItems,
		ItemNames:      req.ItemNames,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, paymentResponse{
		Result: insertAck{Acknowledged: true, InsertedID: res.InsertedID},
		DeletedRes: deleteAck{
			Acknowledged: !res.CleanupPending,
			DeletedCount: res.DeletedCount,
			Pending:      res.CleanupPending,
		},
	})
}
