// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"courtbook/config"
	"courtbook/infras/jwt"
	"courtbook/infras/kafka"
	"courtbook/infras/otel"
	"courtbook/infras/postgres"
	"courtbook/infras/redis"
	"courtbook/infras/s3"
	"courtbook/internal/domains/auth/service"
	repository4 "courtbook/internal/domains/booking/repository"
	service5 "courtbook/internal/domains/booking/service"
	repository3 "courtbook/internal/domains/category/repository"
	service4 "courtbook/internal/domains/category/service"
	repository2 "courtbook/internal/domains/court/repository"
	service3 "courtbook/internal/domains/court/service"
	repository6 "courtbook/internal/domains/gallery/repository"
	service8 "courtbook/internal/domains/gallery/service"
	service6 "courtbook/internal/domains/payment/service"
	repository5 "courtbook/internal/domains/review/repository"
	service7 "courtbook/internal/domains/review/service"
	"courtbook/internal/domains/user/repository"
	service2 "courtbook/internal/domains/user/service"
	"courtbook/internal/handlers/auth"
	"courtbook/internal/handlers/booking"
	"courtbook/internal/handlers/category"
	"courtbook/internal/handlers/court"
	"courtbook/internal/handlers/gallery"
	"courtbook/internal/handlers/payment"
	"courtbook/internal/handlers/review"
	"courtbook/internal/handlers/user"
	"courtbook/permissions"
	"courtbook/shared/cache"
	"courtbook/transport/http"
	"courtbook/transport/http/middleware"
	"courtbook/transport/http/router"
	"github.com/google/wire"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	repositoryUser := repository.New(connection, otelOtel)
	jwtJWT := jwt.New(configConfig)
	serviceAuth := service.New(repositoryUser, configConfig, otelOtel, jwtJWT)
	handler := auth.New(serviceAuth, otelOtel)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	serviceUser := service2.New(repositoryUser, configConfig, redisCache, otelOtel)
	userHandler := user.New(serviceUser, otelOtel)
	repositoryCourt := repository2.New(connection, otelOtel)
	s3S3 := s3.New(configConfig, otelOtel)
	serviceCourt := service3.New(repositoryCourt, configConfig, redisCache, otelOtel, s3S3)
	courtHandler := court.New(serviceCourt, otelOtel)
	repositoryCategory := repository3.New(connection, otelOtel)
	serviceCategory := service4.New(repositoryCategory, configConfig, redisCache, otelOtel)
	categoryHandler := category.New(serviceCategory, otelOtel)
	repositoryBooking := repository4.New(connection, otelOtel)
	kafkaClient := kafka.New(configConfig)
	serviceBooking := service5.New(repositoryBooking, repositoryCourt, configConfig, redisCache, otelOtel, kafkaClient)
	bookingHandler := booking.New(serviceBooking, otelOtel)
	servicePayment := service6.New(repositoryBooking, configConfig, redisCache, otelOtel, kafkaClient)
	paymentHandler := payment.New(servicePayment, otelOtel)
	repositoryReview := repository5.New(connection, otelOtel)
	serviceReview := service7.New(repositoryReview, repositoryBooking, configConfig, redisCache, otelOtel)
	reviewHandler := review.New(serviceReview, otelOtel)
	repositoryGallery := repository6.New(connection, otelOtel)
	serviceGallery := service8.New(repositoryGallery, repositoryCourt, configConfig, redisCache, otelOtel, s3S3)
	galleryHandler := gallery.New(serviceGallery, s3S3, otelOtel)
	domainHandlers := router.DomainHandlers{
		Auth:     handler,
		User:     userHandler,
		Court:    courtHandler,
		Category: categoryHandler,
		Booking:  bookingHandler,
		Payment:  paymentHandler,
		Review:   reviewHandler,
		Gallery:  galleryHandler,
	}
	permissionData := permissions.Get()
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, otelOtel, permissionData, configConfig)
	routerRouter := router.New(domainHandlers, authRole)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware)
	return httpHTTP
}

// wire.go:

var configurations = wire.NewSet(config.Get, permissions.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, jwt.New, kafka.New, s3.New)

var middlewares = wire.NewSet(middleware.NewAppMiddleware, middleware.NewAuthRoleMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var authDomain = wire.NewSet(repository.New, service.New)

var userDomain = wire.NewSet(service2.New)

var courtDomain = wire.NewSet(repository2.New, service3.New)

var categoryDomain = wire.NewSet(repository3.New, service4.New)

var bookingDomain = wire.NewSet(repository4.New, service5.New)

var paymentDomain = wire.NewSet(service6.New)

var reviewDomain = wire.NewSet(repository5.New, service7.New)

var galleryDomain = wire.NewSet(repository6.New, service8.New)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	courtDomain,
	categoryDomain,
	bookingDomain,
	paymentDomain,
	reviewDomain,
	galleryDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), auth.New, user.New, court.New, category.New, booking.New, payment.New, review.New, gallery.New, router.New)
