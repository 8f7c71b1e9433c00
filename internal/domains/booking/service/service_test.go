package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"courtbook/config"
	kafkaMocks "courtbook/infras/kafka/mocks"
	"courtbook/infras/otel/mocks"
	bookingMocks "courtbook/internal/domains/booking/mocks"
	"courtbook/internal/domains/booking/model"
	"courtbook/internal/domains/booking/model/dto"
	"courtbook/internal/domains/booking/service"
	courtMocks "courtbook/internal/domains/court/mocks"
	courtModel "courtbook/internal/domains/court/model"
	cacheMocks "courtbook/shared/cache/mocks"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	"courtbook/shared/failure"
	gModel "courtbook/shared/model"
	"courtbook/shared/timezone"
)

func newBookingService(t *testing.T) (service.Booking, *bookingMocks.MockBooking, *courtMocks.MockCourt, *cacheMocks.MockRedisCache, *kafkaMocks.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockCourtRepo := courtMocks.NewMockCourt(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.SlotMinutes = 30
	cfg.Kafka.Topics.BookingEvents = "booking.events"

	svc := service.New(mockRepo, mockCourtRepo, cfg, mockCache, mockOtel, mockKafka)

	return svc, mockRepo, mockCourtRepo, mockCache, mockKafka
}

func futureBookingRequest() dto.CreateBookingRequest {
	day := timezone.Now().AddDate(0, 0, 7)

	return dto.CreateBookingRequest{
		CourtID:   "court-1",
		Date:      timezone.Format(day, constant.DateOnlyFormat),
		StartTime: "18:00",
		EndTime:   "19:30",
	}
}

func activeCourt() courtModel.Court {
	return courtModel.Court{
		ID:           "court-1",
		Name:         "Center Court",
		PricePerHour: 90000,
		OpenTime:     "06:00",
		CloseTime:    "23:00",
		Active:       true,
	}
}

func TestBookingService_Create(t *testing.T) {
	svc, mockRepo, mockCourtRepo, mockCache, mockKafka := newBookingService(t)

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name:      "unauthenticated",
			ctx:       context.Background(),
			req:       futureBookingRequest(),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  401,
		},
		{
			name: "invalid date format",
			ctx:  context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1"),
			req: dto.CreateBookingRequest{
				CourtID:   "court-1",
				Date:      "not-a-date",
				StartTime: "18:00",
				EndTime:   "19:30",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "end before start",
			ctx:  context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1"),
			req: func() dto.CreateBookingRequest {
				req := futureBookingRequest()
				req.StartTime = "19:30"
				req.EndTime = "18:00"

				return req
			}(),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "unaligned start time",
			ctx:  context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1"),
			req: func() dto.CreateBookingRequest {
				req := futureBookingRequest()
				req.StartTime = "18:10"

				return req
			}(),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "court does not exist",
			ctx:  context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1"),
			req:  futureBookingRequest(),
			setupMock: func() {
				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(courtModel.Court{}, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "court inactive",
			ctx:  context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1"),
			req:  futureBookingRequest(),
			setupMock: func() {
				court := activeCourt()
				court.Active = false

				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(court, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "outside operating hours",
			ctx:  context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1"),
			req: func() dto.CreateBookingRequest {
				req := futureBookingRequest()
				req.StartTime = "05:00"
				req.EndTime = "06:00"

				return req
			}(),
			setupMock: func() {
				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeCourt(), nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "overlapping booking",
			ctx:  context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1"),
			req:  futureBookingRequest(),
			setupMock: func() {
				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeCourt(), nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "successful creation",
			ctx:  context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1"),
			req:  futureBookingRequest(),
			setupMock: func() {
				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeCourt(), nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockKafka.EXPECT().
					SendMessages(gomock.Any(), "booking.events", gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "insert error",
			ctx:  context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1"),
			req:  futureBookingRequest(),
			setupMock: func() {
				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeCourt(), nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "concurrent create trips the exclusion constraint",
			ctx:  context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1"),
			req:  futureBookingRequest(),
			setupMock: func() {
				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeCourt(), nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to insert data (booking): %w", &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeExclusionViolation)}))
			},
			wantErr:  true,
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(tt.ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "court-1", res.CourtID)
			assert.Equal(t, "Center Court", res.CourtName)
			assert.Equal(t, string(model.StatusPending), res.Status)
			// 90 minutes at 90000/hour.
			assert.Equal(t, int64(135000), res.TotalPrice)
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	svc, mockRepo, _, mockCache, mockKafka := newBookingService(t)

	future := timezone.Now().Add(48 * time.Hour)
	past := timezone.Now().Add(-time.Hour)

	ownedBooking := func(status model.Status, start time.Time) model.Booking {
		return model.Booking{
			ID:        "booking-1",
			CourtID:   "court-1",
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			Status:    string(status),
			Metadata:  gModel.Metadata{CreatedBy: "user-1"},
		}
	}

	userCtx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	userCtx = context.WithValue(userCtx, constant.ContextKeyUserRole, constant.RoleUser)

	otherUserCtx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-2")
	otherUserCtx = context.WithValue(otherUserCtx, constant.ContextKeyUserRole, constant.RoleUser)

	adminCtx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
	adminCtx = context.WithValue(adminCtx, constant.ContextKeyUserRole, constant.RoleAdmin)

	expectSuccessfulTransition := func() {
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		mockCache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
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
	}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "owner cancels pending booking",
			ctx:  userCtx,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking(model.StatusPending, future), nil)

				expectSuccessfulTransition()
			},
			wantErr: false,
		},
		{
			name: "owner cancels waiting booking",
			ctx:  userCtx,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking(model.StatusWaiting, future), nil)

				expectSuccessfulTransition()
			},
			wantErr: false,
		},
		{
			name: "booking not found",
			ctx:  userCtx,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "non-owner forbidden",
			ctx:  otherUserCtx,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking(model.StatusPending, future), nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name: "already cancelled",
			ctx:  userCtx,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking(model.StatusCancelled, future), nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "owner cannot cancel started booking",
			ctx:  userCtx,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking(model.StatusConfirmed, past), nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "admin cancels started booking",
			ctx:  adminCtx,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking(model.StatusConfirmed, past), nil)

				expectSuccessfulTransition()
			},
			wantErr: false,
		},
		{
			name: "admin cancels another user's booking",
			ctx:  adminCtx,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedBooking(model.StatusPending, future), nil)

				expectSuccessfulTransition()
			},
			wantErr: false,
		},
		{
			name: "corrupt status row",
			ctx:  userCtx,
			setupMock: func() {
				booking := ownedBooking(model.StatusPending, future)
				booking.Status = "garbage"

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Cancel(tt.ctx, "booking-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Confirm(t *testing.T) {
	svc, mockRepo, _, mockCache, mockKafka := newBookingService(t)

	adminCtx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
	adminCtx = context.WithValue(adminCtx, constant.ContextKeyUserRole, constant.RoleAdmin)

	booking := func(status model.Status) model.Booking {
		return model.Booking{
			ID:       "booking-1",
			CourtID:  "court-1",
			Status:   string(status),
			Metadata: gModel.Metadata{CreatedBy: "user-1"},
		}
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "confirm waiting booking",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking(model.StatusWaiting), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
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
			wantErr: false,
		},
		{
			name: "already confirmed",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking(model.StatusConfirmed), nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "cancelled cannot be confirmed",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking(model.StatusCancelled), nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Confirm(adminCtx, "booking-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_CheckAvailability(t *testing.T) {
	svc, mockRepo, mockCourtRepo, mockCache, _ := newBookingService(t)

	start := timezone.Now().AddDate(0, 0, 3)

	tests := []struct {
		name      string
		date      string
		setupMock func()
		wantErr   bool
		wantSlots int
	}{
		{
			name:      "invalid date",
			date:      "June 1st",
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "cache hit",
			date: "2025-06-01",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "court not found",
			date: "2025-06-01",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockCourtRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "busy slots returned",
			date: "2025-06-01",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockCourtRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{
						{ID: "b1", StartTime: start, EndTime: start.Add(time.Hour)},
						{ID: "b2", StartTime: start.Add(2 * time.Hour), EndTime: start.Add(3 * time.Hour)},
					}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:   false,
			wantSlots: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.CheckAvailability(context.Background(), "court-1", tt.date)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)

			if tt.wantSlots > 0 {
				assert.Len(t, res.BusySlots, tt.wantSlots)
				assert.Equal(t, "court-1", res.CourtID)
			}
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	svc, mockRepo, _, mockCache, _ := newBookingService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantTotal int
	}{
		{
			name: "successful get all",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{{ID: "b1", CourtID: "court-1", Status: string(model.StatusPending)}}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:   false,
			wantTotal: 1,
		},
		{
			name: "count error",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			params := gDto.QueryParams{Limit: 10, Page: 1}
			res, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{})

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTotal, res.TotalData)
			}
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	svc, mockRepo, _, mockCache, _ := newBookingService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "cache miss, found in db",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-1", Status: string(model.StatusPending)}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "not found",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), "booking-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "booking-1", res.ID)
		})
	}
}
