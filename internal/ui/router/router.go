// Package router sets up HTTP routes for the UI server.
package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/traceviz/internal/ui/features/graphview"
	"github.com/leapstack-labs/traceviz/internal/ui/notifier"
	"github.com/leapstack-labs/traceviz/internal/ui/resources"
)

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(
	router chi.Router,
	provider graphview.InstanceProvider,
	sessionStore *sessions.CookieStore,
	notify *notifier.Notifier,
) error {
	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	return graphview.SetupRoutes(router, provider, sessionStore, notify)
}
