package payment_webhook

import (
	"errors"
	"net/http"

	"github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers"
	confirmPayment "github.com/daiki-lova/Privateskytour-sub000/internal/usecase/confirm_payment"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgReservationNotFound = "reservation not found"
	msgInvalidTransition   = "payment outcome conflicts with reservation state"
)

// WebhookRequest is the delivery body posted by the payment gateway.
type WebhookRequest struct {
	BookingNumber string `json:"bookingNumber"`
	Outcome       string `json:"outcome"`
	TransactionID string `json:"transactionId"`
}

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/webhooks/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req WebhookRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /webhooks/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmPayment.Request{
		BookingNumber: req.BookingNumber,
		Outcome:       req.Outcome,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /webhooks/payment - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, confirmPayment.ErrReservationNotFound):
			h.logger.Warn("POST /webhooks/payment - Reservation not found: number=%s", req.BookingNumber)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, confirmPayment.ErrInvalidTransition):
			h.logger.Warn("POST /webhooks/payment - Invalid transition: number=%s", req.BookingNumber)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("POST /webhooks/payment - Failed: number=%s, error=%v", req.BookingNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /webhooks/payment - Applied: number=%s, outcome=%s, applied=%t",
		req.BookingNumber, req.Outcome, result.Applied)
	handlers.RespondJSON(w, http.StatusOK, result)
}
