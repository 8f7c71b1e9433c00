package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"courtbook/config"
	"courtbook/infras/otel/mocks"
	s3Mocks "courtbook/infras/s3/mocks"
	courtMocks "courtbook/internal/domains/court/mocks"
	"courtbook/internal/domains/court/model"
	"courtbook/internal/domains/court/model/dto"
	"courtbook/internal/domains/court/service"
	cacheMocks "courtbook/shared/cache/mocks"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	"courtbook/shared/failure"
)

func newCourtService(t *testing.T) (service.Court, *courtMocks.MockCourt, *cacheMocks.MockRedisCache, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := courtMocks.NewMockCourt(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "test-bucket"

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockS3)

	return svc, mockRepo, mockCache, mockS3
}

func TestCourtService_Create(t *testing.T) {
	svc, mockRepo, mockCache, mockS3 := newCourtService(t)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	validReq := dto.CreateCourtRequest{
		Name:         "Center Court",
		Address:      "Jl. Kenari No. 1",
		Area:         "Jakarta Selatan",
		PricePerHour: 90000,
		OpenTime:     "06:00",
		CloseTime:    "23:00",
	}

	tests := []struct {
		name      string
		req       dto.CreateCourtRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation without image",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "close time not after open time",
			req: func() dto.CreateCourtRequest {
				req := validReq
				req.OpenTime = "23:00"
				req.CloseTime = "06:00"

				return req
			}(),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "successful creation with image",
			req: func() dto.CreateCourtRequest {
				req := validReq
				req.Image = &multipart.FileHeader{Filename: "court.png"}

				return req
			}(),
			setupMock: func() {
				mockS3.EXPECT().
					UploadFile(gomock.Any(), "test-bucket", model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/court/abc.png", nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "upload failure",
			req: func() dto.CreateCourtRequest {
				req := validReq
				req.Image = &multipart.FileHeader{Filename: "court.png"}

				return req
			}(),
			setupMock: func() {
				mockS3.EXPECT().
					UploadFile(gomock.Any(), "test-bucket", model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("upload error"))
			},
			wantErr: true,
		},
		{
			name: "insert failure cleans up uploaded image",
			req: func() dto.CreateCourtRequest {
				req := validReq
				req.Image = &multipart.FileHeader{Filename: "court.png"}

				return req
			}(),
			setupMock: func() {
				mockS3.EXPECT().
					UploadFile(gomock.Any(), "test-bucket", model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/court/abc.png", nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))

				mockS3.EXPECT().
					DeleteFile(gomock.Any(), "test-bucket", model.EntityName, gomock.Any()).
					Return(nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Create(ctx, tt.req)

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

func TestCourtService_Update(t *testing.T) {
	svc, mockRepo, mockCache, mockS3 := newCourtService(t)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	existing := model.Court{
		ID:           "court-1",
		Name:         "Center Court",
		PricePerHour: 90000,
		OpenTime:     "06:00",
		CloseTime:    "23:00",
		Image:        "https://cdn.example.com/court/old.png",
		Active:       true,
	}

	name := "Renovated Court"

	tests := []struct {
		name      string
		req       dto.UpdateCourtRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful update",
			req:  dto.UpdateCourtRequest{Name: name},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

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
			},
			wantErr: false,
		},
		{
			name: "court not found",
			req:  dto.UpdateCourtRequest{Name: name},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Court{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "new open time collides with current close time",
			req:  dto.UpdateCourtRequest{OpenTime: "23:30"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "new close time collides with current open time",
			req:  dto.UpdateCourtRequest{CloseTime: "05:00"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "new image replaces old one",
			req: dto.UpdateCourtRequest{
				Image: &multipart.FileHeader{Filename: "new.jpg"},
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

				mockS3.EXPECT().
					UploadFile(gomock.Any(), "test-bucket", model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/court/new.jpg", nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockS3.EXPECT().
					GetObjectNameFromURL("test-bucket", existing.Image).
					Return("old.png")

				mockS3.EXPECT().
					DeleteFile(gomock.Any(), "test-bucket", model.EntityName, "old.png").
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(ctx, tt.req, "court-1")

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

func TestCourtService_Get(t *testing.T) {
	svc, mockRepo, mockCache, _ := newCourtService(t)

	tests := []struct {
		name        string
		setupMock   func()
		wantErr     bool
		wantBracket string
	}{
		{
			name: "cache hit",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, found in db",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Court{ID: "court-1", PricePerHour: 120000}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:     false,
			wantBracket: model.PriceBracketHigh,
		},
		{
			name: "not found",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Court{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), "court-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)

			if tt.wantBracket != constant.Empty {
				assert.Equal(t, tt.wantBracket, res.PriceBracket)
			}
		})
	}
}

func TestCourtService_GetAll(t *testing.T) {
	svc, mockRepo, mockCache, _ := newCourtService(t)

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
					Return(2, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Court{
						{ID: "court-1", PricePerHour: 75000},
						{ID: "court-2", PricePerHour: 95000},
					}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:   false,
			wantTotal: 2,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(2, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
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

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.TotalData)
			assert.Equal(t, model.PriceBracketLow, res.Courts[0].PriceBracket)
			assert.Equal(t, model.PriceBracketMid, res.Courts[1].PriceBracket)
		})
	}
}

func TestCourtService_Delete(t *testing.T) {
	svc, mockRepo, mockCache, _ := newCourtService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful delete",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
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
			name: "court not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), "court-1")

			time.Sleep(50 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
