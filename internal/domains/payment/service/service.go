package service

import (
	"context"
	"fmt"

	"courtbook/config"
	"courtbook/infras/kafka"
	"courtbook/infras/otel"
	bookingModel "courtbook/internal/domains/booking/model"
	bookingRepo "courtbook/internal/domains/booking/repository"
	"courtbook/internal/domains/payment/model/dto"
	"courtbook/shared"
	"courtbook/shared/cache"
	"courtbook/shared/constant"
	"courtbook/shared/failure"
	"courtbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	EventTransferConfirmed = "payment.transfer_confirmed"
)

type Payment interface {
	CreatePaymentURL(ctx context.Context, req dto.CreatePaymentURLRequest) (dto.PaymentURLResponse, error)
	ConfirmTransfer(ctx context.Context, bookingID string) (dto.ConfirmTransferResponse, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	kafka       kafka.Client
}

func New(bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client) Payment {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		kafka:       kafka,
	}
}

func (s *serviceImpl) CreatePaymentURL(ctx context.Context, req dto.CreatePaymentURLRequest) (res dto.PaymentURLResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreatePaymentURL")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, status, err := s.getOwnedBooking(ctx, req.BookingID)
	if err != nil {
		return res, err
	}

	if status != bookingModel.StatusPending {
		return res, failure.Conflict(fmt.Sprintf("booking in status %s cannot be paid", status)) // nolint:wrapcheck
	}

	if req.Amount != booking.TotalPrice {
		return res, failure.BadRequestFromString("amount does not match the booking total") // nolint:wrapcheck
	}

	if err = res.FromBooking(s.cfg.Payment.TransferURL, booking.ID, s.cfg.Payment.Currency, booking.TotalPrice); err != nil {
		log.Error().Err(err).Msg("failed to build payment URL")

		return res, fmt.Errorf("failed to build payment URL: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) ConfirmTransfer(ctx context.Context, bookingID string) (res dto.ConfirmTransferResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmTransfer")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, status, err := s.getOwnedBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	// A transfer already reported is a success, not a conflict.
	if status == bookingModel.StatusWaiting {
		res.BookingID = booking.ID
		res.Status = string(status)

		return res, nil
	}

	if !status.CanTransition(bookingModel.StatusWaiting) {
		return res, failure.Conflict(fmt.Sprintf("booking in status %s cannot accept a transfer", status)) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	updatedFields := map[string]any{
		bookingModel.FieldStatus: string(bookingModel.StatusWaiting),
		constant.FieldModifiedBy: user,
		constant.FieldModifiedAt: timezone.Now(),
	}

	filter := shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)
	if err = s.bookingRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to mark booking as waiting")

		return res, fmt.Errorf("failed to mark booking as waiting: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(bookingModel.CacheKeyGet, booking.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, bookingModel.CacheKeyList)
		shared.InvalidateCaches(c, s.cache, bookingModel.CacheKeyCount)
		shared.InvalidateCaches(c, s.cache, bookingModel.CacheKeyAvailability)
	}()

	go func() {
		c := context.WithoutCancel(ctx)

		msg := kafka.Message{
			Key: booking.ID,
			Value: dto.PaymentEvent{
				Event:      EventTransferConfirmed,
				BookingID:  booking.ID,
				UserID:     booking.CreatedBy,
				Amount:     booking.TotalPrice,
				OccurredAt: timezone.Now(),
			},
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, msg); err != nil {
			log.Error().Err(err).Msg("failed to publish payment event")
		}
	}()

	res.BookingID = booking.ID
	res.Status = string(bookingModel.StatusWaiting)

	return res, nil
}

func (s *serviceImpl) getOwnedBooking(ctx context.Context, bookingID string) (bookingModel.Booking, bookingModel.Status, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, "", fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, "", failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.CreatedBy != user {
		return booking, "", failure.Forbidden("not allowed to pay for this booking") // nolint:wrapcheck
	}

	status, err := bookingModel.ParseStatus(booking.Status)
	if err != nil {
		log.Error().Err(err).Str("bookingID", bookingID).Msg("booking row carries an invalid status")

		return booking, status, failure.InternalError(err) // nolint:wrapcheck
	}

	return booking, status, nil
}
