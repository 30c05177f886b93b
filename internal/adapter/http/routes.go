package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		// Version
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":"0.1.0"}`))
		})

		// Auth
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)
		r.Get("/auth/me", h.Me)

		// Ventures
		r.Get("/ventures", h.ListVentures)
		r.Post("/ventures", h.CreateVenture)
		r.Get("/ventures/{id}", h.GetVenture)
		r.Put("/ventures/{id}", h.UpdateVenture)
		r.Delete("/ventures/{id}", h.DeleteVenture)

		// Brand guide (one per venture, write is an upsert)
		r.Get("/ventures/{id}/brand-guide", h.GetBrandGuide)
		r.Post("/ventures/{id}/brand-guide", h.UpsertBrandGuide)

		// Content drafts
		r.Get("/content", h.ListContent)
		r.Post("/content", h.CreateContent)
		r.Get("/content/{id}", h.GetContent)
		r.Put("/content/{id}", h.UpdateContent)
		r.Delete("/content/{id}", h.DeleteContent)
		r.Post("/content/{id}/approve", h.ApproveContent)
		r.Post("/content/{id}/reject", h.RejectContent)
		r.Post("/content/{id}/publish", h.PublishContent)

		// Prospects and outreach
		r.Get("/prospects", h.ListProspects)
		r.Post("/prospects", h.CreateProspect)
		r.Get("/prospects/{id}", h.GetProspect)
		r.Delete("/prospects/{id}", h.DeleteProspect)
		r.Get("/prospects/{id}/outreach", h.ListOutreach)
		r.Post("/prospects/{id}/outreach", h.CreateOutreach)

		// TC3D catalogs (public) and per-user capability scores
		r.Get("/tc3d/tools", h.ListTools)
		r.Get("/tc3d/tiers", h.ListTiers)
		r.Get("/tc3d/tasks", h.ListTasks)
		r.Get("/tc3d/capabilities", h.ListCapabilities)
		r.Post("/tc3d/capabilities", h.UpsertCapability)

		// Writing and suggestion agents
		r.Post("/ai/generate", h.GenerateContent)
		r.Post("/ai/revise", h.ReviseContent)
		r.Post("/ai/suggestions/insights", h.SuggestInsights)
		r.Post("/ai/suggestions/topics", h.SuggestTopics)
		r.Post("/ai/suggestions/schedule", h.SuggestSchedule)

		// Dashboard
		r.Get("/dashboard/summary", h.DashboardSummary)
	})
}
