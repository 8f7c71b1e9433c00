package court

import (
	"net/http"

	"courtbook/infras/otel"
	"courtbook/internal/domains/court/model"
	"courtbook/internal/domains/court/model/dto"
	"courtbook/internal/domains/court/service"
	"courtbook/shared"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	"courtbook/shared/failure"
	"courtbook/shared/validator"
	"courtbook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Court
	otel    otel.Otel
}

func New(service service.Court, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/courts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCourt)
		routerGroup.Get("/", handler.GetCourts)
		routerGroup.Get("/{id}", handler.GetCourtByID)
		routerGroup.Patch("/{id}", handler.UpdateCourt)
		routerGroup.Delete("/{id}", handler.DeleteCourt)
	})
}

// CreateCourt handles the creation of a new court.
// @Summary Create a new court
// @Description Create a new badminton court with the provided details.
// @Tags Court
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Court name"
// @Param address formData string true "Court address"
// @Param area formData string true "Court area"
// @Param price_per_hour formData integer true "Hourly price in VND"
// @Param open_time formData string true "Opening time (HH:MM)"
// @Param close_time formData string true "Closing time (HH:MM)"
// @Param description formData string false "Court description"
// @Param active formData boolean false "Court active status"
// @Param image formData file false "Court cover image"
// @Success 201 {object} response.Message "Court created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts [post]
// @Security BearerAuth
func (handler *Handler) CreateCourt(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCourt")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreateCourtRequest{
		Name:        request.FormValue("name"),
		Address:     request.FormValue("address"),
		Area:        request.FormValue("area"),
		OpenTime:    request.FormValue("open_time"),
		CloseTime:   request.FormValue("close_time"),
		Description: request.FormValue("description"),
	}

	if priceStr := request.FormValue("price_per_hour"); priceStr != "" {
		if p, err := shared.ConvertStringToInt64(priceStr); err == nil {
			req.PricePerHour = p
		}
	}

	if activeStr := request.FormValue("active"); activeStr != "" {
		req.Active = shared.ConvertStringToBool(activeStr)
	}

	file, fileHeader, err := request.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create court")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Court created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Court created successfully")
}

// GetCourts retrieves all courts based on query parameters.
// @Summary Get all courts
// @Description Retrieve all courts with optional filtering and pagination.
// @Tags Court
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name (substring)"
// @Param area query string false "Filter by area"
// @Param bracket query string false "Filter by price bracket (low, mid, high)"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.CourtResponse] "List of courts"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts [get]
func (handler *Handler) GetCourts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCourts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldName),
				Table:    model.TableName,
			},
		},
	}

	if area := r.URL.Query().Get(model.FieldArea); area != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldArea,
			Operator: gDto.FilterOperatorEq,
			Value:    area,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	if bracket := r.URL.Query().Get("bracket"); bracket != "" {
		filters, err := bracketFilters(bracket)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("invalid price bracket")

			response.WithError(w, err)

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, filters...)
	}

	courts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get courts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Courts retrieved successfully")

	response.WithJSON(w, http.StatusOK, courts)
}

// GetCourtByID retrieves a court by its ID.
// @Summary Get a court by ID
// @Description Retrieve a court by its unique identifier.
// @Tags Court
// @Accept json
// @Produce json
// @Param id path string true "Court ID"
// @Success 200 {object} response.Data[dto.CourtResponse] "Court details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id} [get]
func (handler *Handler) GetCourtByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCourtByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	court, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get court by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Court retrieved successfully")

	response.WithJSON(w, http.StatusOK, court)
}

// UpdateCourt updates an existing court by its ID.
// @Summary Update a court by ID
// @Description Update the details of an existing court.
// @Tags Court
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Court ID"
// @Param name formData string false "Court name"
// @Param address formData string false "Court address"
// @Param area formData string false "Court area"
// @Param price_per_hour formData integer false "Hourly price in VND"
// @Param open_time formData string false "Opening time (HH:MM)"
// @Param close_time formData string false "Closing time (HH:MM)"
// @Param description formData string false "Court description"
// @Param active formData boolean false "Court active status"
// @Param image formData file false "Court cover image"
// @Success 200 {object} response.Message "Court updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCourt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCourt")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateCourtRequest{
		Name:        r.FormValue("name"),
		Address:     r.FormValue("address"),
		Area:        r.FormValue("area"),
		OpenTime:    r.FormValue("open_time"),
		CloseTime:   r.FormValue("close_time"),
		Description: r.FormValue("description"),
	}

	if priceStr := r.FormValue("price_per_hour"); priceStr != "" {
		if p, err := shared.ConvertStringToInt64(priceStr); err == nil {
			req.PricePerHour = &p
		}
	}

	if activeStr := r.FormValue("active"); activeStr != "" {
		req.Active = shared.ConvertStringToBool(activeStr)
	}

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update court")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Court updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Court updated successfully")
}

// DeleteCourt deletes a court by its ID.
// @Summary Delete a court by ID
// @Description Delete a court using its unique identifier.
// @Tags Court
// @Accept json
// @Produce json
// @Param id path string true "Court ID"
// @Success 200 {object} response.Message "Court deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCourt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCourt")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete court")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Court deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Court deleted successfully")
}

func bracketFilters(bracket string) ([]any, error) {
	switch bracket {
	case model.PriceBracketLow:
		return []any{
			gDto.Filter{ArgName: "price_low_max", Field: model.FieldPricePerHour, Operator: gDto.FilterOperatorLess, Value: model.PriceBracketMidMin, Table: model.TableName},
		}, nil
	case model.PriceBracketMid:
		return []any{
			gDto.Filter{ArgName: "price_mid_min", Field: model.FieldPricePerHour, Operator: gDto.FilterOperatorGreaterEq, Value: model.PriceBracketMidMin, Table: model.TableName},
			gDto.Filter{ArgName: "price_mid_max", Field: model.FieldPricePerHour, Operator: gDto.FilterOperatorLessEq, Value: model.PriceBracketMidMax, Table: model.TableName},
		}, nil
	case model.PriceBracketHigh:
		return []any{
			gDto.Filter{ArgName: "price_high_min", Field: model.FieldPricePerHour, Operator: gDto.FilterOperatorGreater, Value: model.PriceBracketMidMax, Table: model.TableName},
		}, nil
	default:
		return nil, failure.BadRequestFromString("bracket must be one of low, mid, high") // nolint:wrapcheck
	}
}
