package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courtbook/config"
	"courtbook/infras/kafka"
	"courtbook/infras/otel"
	"courtbook/internal/domains/booking/model"
	"courtbook/internal/domains/booking/model/dto"
	"courtbook/internal/domains/booking/repository"
	courtModel "courtbook/internal/domains/court/model"
	courtRepo "courtbook/internal/domains/court/repository"
	"courtbook/shared"
	"courtbook/shared/cache"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	"courtbook/shared/failure"
	"courtbook/shared/timezone"

	"github.com/lib/pq"

	"github.com/rs/zerolog/log"
)

const (
	EventBookingCreated  = "booking.created"
	EventBookingWaiting  = "booking.waiting"
	EventBookingApproved = "booking.confirmed"
	EventBookingCanceled = "booking.cancelled"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) error
	Confirm(ctx context.Context, id string) error
	CheckAvailability(ctx context.Context, courtID, date string) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	courtRepo courtRepo.Court
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	kafka     kafka.Client
}

func New(repo repository.Booking, courtRepo courtRepo.Court, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client) Booking {
	return &serviceImpl{
		repo:      repo,
		courtRepo: courtRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		kafka:     kafka,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return res, failure.Unauthorized("sign in to book a court") // nolint:wrapcheck
	}

	start, end, err := req.Interval()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking interval")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if err = dto.ValidateInterval(start, end, timezone.Now(), s.cfg.Booking.SlotMinutes); err != nil {
		return res, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	court, err := s.courtRepo.Get(ctx, shared.FilterByID(req.CourtID, courtModel.FieldID, courtModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get court")

		return res, fmt.Errorf("failed to get court: %w", err)
	}

	if court.ID == constant.Empty {
		return res, failure.BadRequestFromString("court does not exist") // nolint:wrapcheck
	}

	if !court.Active {
		return res, failure.BadRequestFromString("court is not open for booking") // nolint:wrapcheck
	}

	if req.StartTime < court.OpenTime || req.EndTime > court.CloseTime {
		return res, failure.BadRequestFromString(fmt.Sprintf("court is open from %s to %s", court.OpenTime, court.CloseTime)) // nolint:wrapcheck
	}

	taken, err := s.repo.Exist(ctx, overlapFilter(req.CourtID, start, end))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return res, fmt.Errorf("failed to check booking overlap: %w", err)
	}

	if taken {
		return res, failure.Conflict("time slot is already booked") // nolint:wrapcheck
	}

	booking := req.ToModel(user, start, end, model.TotalPrice(start, end, court.PricePerHour))
	if err = s.repo.Insert(ctx, booking); err != nil {
		// The bookings table carries an exclusion constraint on
		// (court_id, time range), so a concurrent create that slipped past
		// the overlap check above surfaces here as a conflict, not a 500.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusionViolation {
			return res, failure.Conflict("time slot is already booked") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	booking.CourtName = court.Name
	res.FromModel(booking)

	s.publishEvent(ctx, EventBookingCreated, booking)
	s.invalidateListCaches(ctx)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheKeyList, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheKeyCount, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(model.CacheKeyGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	isAdmin := role == constant.RoleAdmin

	booking, err := s.getForUpdate(ctx, id)
	if err != nil {
		return err
	}

	if !isAdmin && booking.CreatedBy != user {
		return failure.Forbidden("not allowed to cancel this booking") // nolint:wrapcheck
	}

	status, err := model.ParseStatus(booking.Status)
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("booking row carries an invalid status")

		return failure.InternalError(err) // nolint:wrapcheck
	}

	if status.Terminal() {
		return failure.Conflict("booking is already cancelled") // nolint:wrapcheck
	}

	if !status.CanTransition(model.StatusCancelled) {
		return failure.Conflict(fmt.Sprintf("booking cannot be cancelled from status %s", status)) // nolint:wrapcheck
	}

	// Admins may cancel past bookings, owners may not.
	if !isAdmin && !booking.StartTime.After(timezone.Now()) {
		return failure.BadRequestFromString("booking has already started") // nolint:wrapcheck
	}

	if err = s.transition(ctx, booking, model.StatusCancelled, user); err != nil {
		return err
	}

	booking.Status = string(model.StatusCancelled)
	s.publishEvent(ctx, EventBookingCanceled, booking)

	return nil
}

func (s *serviceImpl) Confirm(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getForUpdate(ctx, id)
	if err != nil {
		return err
	}

	status, err := model.ParseStatus(booking.Status)
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("booking row carries an invalid status")

		return failure.InternalError(err) // nolint:wrapcheck
	}

	if !status.CanTransition(model.StatusConfirmed) {
		return failure.Conflict(fmt.Sprintf("booking cannot be confirmed from status %s", status)) // nolint:wrapcheck
	}

	if err = s.transition(ctx, booking, model.StatusConfirmed, user); err != nil {
		return err
	}

	booking.Status = string(model.StatusConfirmed)
	s.publishEvent(ctx, EventBookingApproved, booking)

	return nil
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, courtID, date string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	dayStart, err := timezone.Parse(constant.DateOnlyFormat, date)
	if err != nil {
		return res, failure.BadRequestFromString("invalid date format, expected YYYY-MM-DD") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(model.CacheKeyAvailability, courtID, date)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for availability")

		return res, nil
	}

	exist, err := s.courtRepo.Exist(ctx, shared.FilterByID(courtID, courtModel.FieldID, courtModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if court exists")

		return res, fmt.Errorf("failed to check if court exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("court not found") // nolint:wrapcheck
	}

	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldStartTime,
		SortDir: "ASC",
	}

	models, err := s.repo.GetAll(ctx, params, dayFilter(courtID, dayStart, dayStart.AddDate(0, 0, 1)))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for availability")

		return res, fmt.Errorf("failed to get bookings for availability: %w", err)
	}

	res.FromModels(courtID, date, models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getForUpdate(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) transition(ctx context.Context, booking model.Booking, next model.Status, user string) error {
	updatedFields := map[string]any{
		model.FieldStatus:        string(next),
		constant.FieldModifiedBy: user,
		constant.FieldModifiedAt: timezone.Now(),
	}

	filter := shared.FilterByID(booking.ID, model.FieldID, model.TableName)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheKeyGet, booking.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}
	}()
	s.invalidateListCaches(ctx)

	return nil
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, model.CacheKeyList)
		shared.InvalidateCaches(c, s.cache, model.CacheKeyCount)
		shared.InvalidateCaches(c, s.cache, model.CacheKeyAvailability)
	}()
}

func (s *serviceImpl) publishEvent(ctx context.Context, event string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		msg := kafka.Message{
			Key: booking.ID,
			Value: dto.BookingEvent{
				Event:      event,
				BookingID:  booking.ID,
				CourtID:    booking.CourtID,
				UserID:     booking.CreatedBy,
				Status:     booking.Status,
				TotalPrice: booking.TotalPrice,
				OccurredAt: timezone.Now(),
			},
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, msg); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish booking event")
		}
	}()
}

func overlapFilter(courtID string, start, end time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldCourtID, Table: model.TableName, Operator: gDto.FilterOperatorEq, Value: courtID},
			gDto.Filter{Field: model.FieldStatus, Table: model.TableName, Operator: gDto.FilterOperatorNotEq, Value: string(model.StatusCancelled)},
			gDto.Filter{ArgName: "overlap_end", Field: model.FieldStartTime, Table: model.TableName, Operator: gDto.FilterOperatorLess, Value: end},
			gDto.Filter{ArgName: "overlap_start", Field: model.FieldEndTime, Table: model.TableName, Operator: gDto.FilterOperatorGreater, Value: start},
		},
	}
}

func dayFilter(courtID string, dayStart, dayEnd time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldCourtID, Table: model.TableName, Operator: gDto.FilterOperatorEq, Value: courtID},
			gDto.Filter{Field: model.FieldStatus, Table: model.TableName, Operator: gDto.FilterOperatorNotEq, Value: string(model.StatusCancelled)},
			gDto.Filter{ArgName: "day_start", Field: model.FieldStartTime, Table: model.TableName, Operator: gDto.FilterOperatorGreaterEq, Value: dayStart},
			gDto.Filter{ArgName: "day_end", Field: model.FieldStartTime, Table: model.TableName, Operator: gDto.FilterOperatorLess, Value: dayEnd},
		},
	}
}
