package graphview

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/traceviz/internal/ui/notifier"
)

// SetupRoutes registers the graph view feature routes.
func SetupRoutes(
	router chi.Router,
	provider InstanceProvider,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
) error {
	handlers := NewHandlers(provider, sessionStore, notify)

	// Page route (full page render with content)
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/graph", http.StatusFound)
	})
	router.Get("/graph", handlers.HandleGraphPage)

	// SSE routes (filter transitions and live rebuild updates)
	router.Get("/graph/filter", handlers.FilterSSE)
	router.Get("/graph/updates", handlers.GraphPageUpdates)

	// API routes
	router.Route("/api", func(r chi.Router) {
		r.Get("/graph.json", handlers.HandleGraphJSON)
		r.Get("/highlight", handlers.HandleHighlight)
	})

	return nil
}
