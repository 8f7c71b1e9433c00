package payment

import (
	"net/http"

	"courtbook/infras/otel"
	"courtbook/internal/domains/payment/model/dto"
	"courtbook/internal/domains/payment/service"
	"courtbook/shared"
	"courtbook/shared/constant"
	"courtbook/shared/failure"
	"courtbook/shared/validator"
	"courtbook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payment", func(routerGroup chi.Router) {
		routerGroup.Get("/create-payment-url", handler.CreatePaymentURL)
		routerGroup.Post("/confirm-transfer", handler.ConfirmTransfer)
	})
}

// CreatePaymentURL builds a gateway payment URL for a pending booking.
// @Summary Create a payment URL
// @Description Build a payment gateway URL for a pending booking owned by the caller.
// @Tags Payment
// @Accept json
// @Produce json
// @Param booking_id query string true "Booking ID"
// @Param amount query integer true "Amount to pay, must equal the booking total"
// @Success 200 {object} response.Data[dto.PaymentURLResponse] "Payment URL"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payment/create-payment-url [get]
// @Security BearerAuth
func (handler *Handler) CreatePaymentURL(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePaymentURL")
	defer scope.End()

	req := dto.CreatePaymentURLRequest{
		BookingID: r.URL.Query().Get(constant.RequestParamBooking),
	}

	amountStr := r.URL.Query().Get(constant.RequestParamAmount)
	if amountStr != "" {
		amount, err := shared.ConvertStringToInt64(amountStr)
		if err != nil {
			badReq := failure.BadRequestFromString("amount must be a whole number")
			scope.TraceError(badReq)
			log.Error().Err(err).Msg("failed to parse payment amount")

			response.WithError(w, badReq)

			return
		}

		req.Amount = amount
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	paymentURL, err := handler.service.CreatePaymentURL(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create payment URL")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Payment URL created successfully for user " + user)

	response.WithJSON(w, http.StatusOK, paymentURL)
}

// ConfirmTransfer marks a pending booking as waiting for payment verification.
// @Summary Confirm a bank transfer
// @Description Report that the transfer for a booking was made, moving it to WAITING.
// @Tags Payment
// @Accept json
// @Produce json
// @Param booking_id query string true "Booking ID"
// @Success 200 {object} response.Data[dto.ConfirmTransferResponse] "Booking payment status"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payment/confirm-transfer [post]
// @Security BearerAuth
func (handler *Handler) ConfirmTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmTransfer")
	defer scope.End()

	bookingID := r.URL.Query().Get(constant.RequestParamBooking)
	if bookingID == "" {
		err := failure.BadRequestFromString("booking_id is required")
		scope.TraceError(err)
		log.Error().Err(err).Msg("missing booking_id")

		response.WithError(w, err)

		return
	}

	result, err := handler.service.ConfirmTransfer(ctx, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm transfer")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Transfer confirmed successfully by user " + user)

	response.WithJSON(w, http.StatusOK, result)
}
