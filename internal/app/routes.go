package app

import (
	"net/http"

	"github.com/kegliz/ftcompile/internal/server/router"
)

func (a *appServer) routes() []*router.Route {
	return []*router.Route{
		{
			Name:        "root",
			Method:      http.MethodGet,
			Pattern:     "/",
			HandlerFunc: a.RootHandler,
		},
		{
			Name:        "health",
			Method:      http.MethodGet,
			Pattern:     "/health",
			HandlerFunc: a.HealthHandler,
		},
		{
			Name:        "circuits.create",
			Method:      http.MethodPost,
			Pattern:     "/circuits",
			HandlerFunc: a.CreateCircuit,
		},
		{
			Name:        "circuits.run",
			Method:      http.MethodPost,
			Pattern:     "/circuits/:id/run",
			HandlerFunc: a.RunCircuit,
		},
	}
}
