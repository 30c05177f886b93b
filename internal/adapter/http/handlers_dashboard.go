package http

import "net/http"

// DashboardSummary handles GET /api/v1/dashboard/summary.
func (h *Handlers) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	summary, err := h.Dashboard.Summary(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, err, "summary not found")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
