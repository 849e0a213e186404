package news

import "github.com/go-chi/chi/v5"

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/news", func(r chi.Router) {
		r.Get("/", h.listNewsHandler)
		r.Post("/", h.createNewsHandler)
		r.Get("/{news_id}", h.getNewsHandler)
		r.Delete("/{news_id}", h.deleteNewsHandler)
	})
}
