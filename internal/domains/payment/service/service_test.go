package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"courtbook/config"
	kafkaMocks "courtbook/infras/kafka/mocks"
	"courtbook/infras/otel/mocks"
	bookingMocks "courtbook/internal/domains/booking/mocks"
	bookingModel "courtbook/internal/domains/booking/model"
	"courtbook/internal/domains/payment/model/dto"
	"courtbook/internal/domains/payment/service"
	"courtbook/shared"
	cacheMocks "courtbook/shared/cache/mocks"
	"courtbook/shared/constant"
	"courtbook/shared/failure"
	gModel "courtbook/shared/model"
)

func newPaymentService(t *testing.T) (service.Payment, *bookingMocks.MockBooking, *cacheMocks.MockRedisCache, *kafkaMocks.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Payment.TransferURL = "https://pay.example.com/transfer"
	cfg.Payment.Currency = "VND"
	cfg.Kafka.Topics.BookingEvents = "booking.events"

	svc := service.New(mockBookingRepo, cfg, mockCache, mockOtel, mockKafka)

	return svc, mockBookingRepo, mockCache, mockKafka
}

func ownedBooking(status bookingModel.Status) bookingModel.Booking {
	return bookingModel.Booking{
		ID:         "booking-1",
		CourtID:    "court-1",
		TotalPrice: 135000,
		Status:     string(status),
		Metadata:   gModel.Metadata{CreatedBy: "user-1"},
	}
}

func TestPaymentService_CreatePaymentURL(t *testing.T) {
	svc, mockBookingRepo, _, _ := newPaymentService(t)

	userCtx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	otherCtx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-2")

	validReq := dto.CreatePaymentURLRequest{BookingID: "booking-1", Amount: 135000}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreatePaymentURLRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful url creation",
			ctx:  userCtx,
			req:  validReq,
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking(bookingModel.StatusPending), nil)
			},
			wantErr: false,
		},
		{
			name: "booking not found",
			ctx:  userCtx,
			req:  validReq,
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "not the booking owner",
			ctx:  otherCtx,
			req:  validReq,
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking(bookingModel.StatusPending), nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name: "booking already waiting",
			ctx:  userCtx,
			req:  validReq,
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking(bookingModel.StatusWaiting), nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "amount mismatch",
			ctx:  userCtx,
			req:  dto.CreatePaymentURLRequest{BookingID: "booking-1", Amount: 90000},
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking(bookingModel.StatusPending), nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "repository error",
			ctx:  userCtx,
			req:  validReq,
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.CreatePaymentURL(tt.ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "booking-1", res.BookingID)
			assert.Contains(t, res.PaymentURL, "https://pay.example.com/transfer")
			// Gateway amounts are in hundredths.
			assert.Contains(t, res.PaymentURL, "vnp_Amount=13500000")
			assert.Contains(t, res.PaymentURL, "vnp_TxnRef=booking-1")
			assert.Contains(t, res.PaymentURL, "vnp_CurrCode=VND")
		})
	}
}

func TestPaymentService_ConfirmTransfer(t *testing.T) {
	svc, mockBookingRepo, mockCache, mockKafka := newPaymentService(t)

	userCtx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")

	tests := []struct {
		name       string
		setupMock  func()
		wantErr    bool
		wantCode   int
		wantStatus string
	}{
		{
			name: "pending moves to waiting",
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking(bookingModel.StatusPending), nil)

				mockBookingRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), shared.BuildCacheKey(bookingModel.CacheKeyGet, "booking-1")).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockKafka.EXPECT().
					SendMessages(gomock.Any(), "booking.events", gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:    false,
			wantStatus: string(bookingModel.StatusWaiting),
		},
		{
			name: "already waiting is idempotent",
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking(bookingModel.StatusWaiting), nil)
			},
			wantErr:    false,
			wantStatus: string(bookingModel.StatusWaiting),
		},
		{
			name: "confirmed booking rejects a transfer",
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking(bookingModel.StatusConfirmed), nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "cancelled booking rejects a transfer",
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking(bookingModel.StatusCancelled), nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "update error",
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking(bookingModel.StatusPending), nil)

				mockBookingRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.ConfirmTransfer(userCtx, "booking-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "booking-1", res.BookingID)
			assert.Equal(t, tt.wantStatus, res.Status)
		})
	}
}
