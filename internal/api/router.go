package api

import (
	"net/http"

	"github.com/cadastro-api/cadastro-be/internal/api/handlers"
	"github.com/cadastro-api/cadastro-be/internal/auth"
	"github.com/cadastro-api/cadastro-be/internal/router"
	"github.com/cadastro-api/cadastro-be/internal/services"
)

// NewRouter builds the route table and wires the user handlers onto it.
// When protectUsers is set, the /users routes require a Bearer token.
func NewRouter(userService services.UserServiceProvider, issuer *auth.TokenIssuer, protectUsers bool) *router.Router {
	userHandler := handlers.NewUserHandler(userService, issuer)

	guard := func(h http.HandlerFunc) http.Handler {
		if protectUsers {
			return auth.RequireAuth(issuer, h)
		}
		return h
	}

	r := router.New()

	r.HandleFunc(http.MethodPost, "/register", userHandler.Register)
	r.HandleFunc(http.MethodPost, "/login", userHandler.Login)

	r.Handle(http.MethodGet, "/users", guard(userHandler.List))
	r.Handle(http.MethodGet, "/users/:id", guard(userHandler.Get))
	r.Handle(http.MethodPut, "/users/:id", guard(userHandler.Update))
	r.Handle(http.MethodDelete, "/users/:id", guard(userHandler.Delete))

	return r
}
