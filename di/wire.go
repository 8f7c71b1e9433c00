//go:build wireinject
// +build wireinject

package di

import (
	"courtbook/config"
	"courtbook/infras/jwt"
	"courtbook/infras/kafka"
	"courtbook/infras/otel"
	"courtbook/infras/postgres"
	"courtbook/infras/redis"
	"courtbook/infras/s3"
	"courtbook/permissions"
	"courtbook/shared/cache"
	"courtbook/transport/http"
	"courtbook/transport/http/middleware"
	"courtbook/transport/http/router"

	"github.com/google/wire"

	authService "courtbook/internal/domains/auth/service"
	bookingRepository "courtbook/internal/domains/booking/repository"
	bookingService "courtbook/internal/domains/booking/service"
	categoryRepository "courtbook/internal/domains/category/repository"
	categoryService "courtbook/internal/domains/category/service"
	courtRepository "courtbook/internal/domains/court/repository"
	courtService "courtbook/internal/domains/court/service"
	galleryRepository "courtbook/internal/domains/gallery/repository"
	galleryService "courtbook/internal/domains/gallery/service"
	paymentService "courtbook/internal/domains/payment/service"
	reviewRepository "courtbook/internal/domains/review/repository"
	reviewService "courtbook/internal/domains/review/service"
	userRepository "courtbook/internal/domains/user/repository"
	userService "courtbook/internal/domains/user/service"
	authHandler "courtbook/internal/handlers/auth"
	bookingHandler "courtbook/internal/handlers/booking"
	categoryHandler "courtbook/internal/handlers/category"
	courtHandler "courtbook/internal/handlers/court"
	galleryHandler "courtbook/internal/handlers/gallery"
	paymentHandler "courtbook/internal/handlers/payment"
	reviewHandler "courtbook/internal/handlers/review"
	userHandler "courtbook/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var userDomain = wire.NewSet(
	userService.New,
)

var courtDomain = wire.NewSet(
	courtRepository.New,
	courtService.New,
)

var categoryDomain = wire.NewSet(
	categoryRepository.New,
	categoryService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var galleryDomain = wire.NewSet(
	galleryRepository.New,
	galleryService.New,
)

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

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	courtHandler.New,
	categoryHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	reviewHandler.New,
	galleryHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
