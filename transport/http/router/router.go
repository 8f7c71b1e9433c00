package router

import (
	"courtbook/internal/handlers/auth"
	"courtbook/internal/handlers/booking"
	"courtbook/internal/handlers/category"
	"courtbook/internal/handlers/court"
	"courtbook/internal/handlers/gallery"
	"courtbook/internal/handlers/payment"
	"courtbook/internal/handlers/review"
	"courtbook/internal/handlers/user"
	"courtbook/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	User     user.Handler
	Court    court.Handler
	Category category.Handler
	Booking  booking.Handler
	Payment  payment.Handler
	Review   review.Handler
	Gallery  gallery.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.APIKey)
		routerGroup.Use(r.AuthRole.Auth)
		routerGroup.Use(r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Court.Router(routerGroup)
		r.DomainHandlers.Category.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Gallery.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
