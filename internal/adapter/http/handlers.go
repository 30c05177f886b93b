package http

import (
	"net/http"

	"github.com/reachforge/reachforge/internal/middleware"
	"github.com/reachforge/reachforge/internal/service"
)

// Handlers bundles the service layer for route registration.
type Handlers struct {
	Auth         *service.AuthService
	Ventures     *service.VentureService
	BrandGuides  *service.BrandGuideService
	Content      *service.ContentService
	Prospects    *service.ProspectService
	Outreach     *service.OutreachService
	Capabilities *service.CapabilityService
	Writer       *service.WriterService
	Suggest      *service.SuggestService
	Dashboard    *service.DashboardService
}

// currentUserID extracts the authenticated user's ID, writing a 401
// when the auth middleware did not run or rejected the request.
func currentUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	u := middleware.UserFromContext(r.Context())
	if u == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return "", false
	}
	return u.ID, true
}
