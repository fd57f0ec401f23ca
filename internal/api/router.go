package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the chi router with the standard middleware stack.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))
	r.Use(CORS(allowedOrigins))

	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers every API route on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/strategies", h.ListStrategies)
		r.Get("/strategies/{id}", h.GetStrategy)
		r.Get("/reference", h.GetReference)

		r.Route("/notes", func(r chi.Router) {
			r.Use(h.requireHydrated)
			r.Get("/", h.GetNotes)
			r.Put("/{id}/{field}", h.PutNote)
			r.Post("/{id}/{field}/save", h.SaveNote)
			r.Get("/{id}/ack", h.GetAck)
		})

		r.Route("/chats", func(r chi.Router) {
			r.Post("/", h.CreateChat)
			r.Get("/{cid}", h.GetChat)
			r.Post("/{cid}/messages", h.PostMessage)
			r.Put("/{cid}/strategy", h.PutChatStrategy)
		})

		r.Post("/render", h.Render)
	})
}
