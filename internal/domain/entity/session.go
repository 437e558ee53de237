package entity

import "time"

// Session is a signed-in operator. UpstreamToken is the bearer token the
// clinic API issued at login; it never leaves the server.
type Session struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Username      string          `json:"username"`
	Role          string          `json:"role"`
	UpstreamToken string          `json:"upstream_token"`
	Permissions   map[string]bool `json:"permissions"`
	CreatedAt     time.Time       `json:"created_at"`
	ExpiresAt     time.Time       `json:"expires_at"`
}

// Can reports whether the named permission check is granted.
func (s *Session) Can(permission string) bool {
	if s == nil || permission == "" {
		return false
	}
	return s.Permissions[permission]
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Permission checks used by the route guard.
const (
	PermissionAppointmentsView     = "appointments.view"
	PermissionAppointmentsManage   = "appointments.manage"
	PermissionConsultationsView    = "consultations.view"
	PermissionConsultationsManage  = "consultations.manage"
	PermissionProductsView         = "products.view"
	PermissionProductsManage       = "products.manage"
	PermissionServicesView         = "services.view"
	PermissionServicesManage       = "services.manage"
	PermissionTreatmentPlansView   = "treatment_plans.view"
	PermissionTreatmentPlansManage = "treatment_plans.manage"
	PermissionAdmissionsView       = "admissions.view"
	PermissionAdmissionsManage     = "admissions.manage"
	PermissionAdmissionsDischarge  = "admissions.discharge"
	PermissionAnalyticsView        = "analytics.view"
	PermissionActivityView         = "activity.view"
)

// PermissionMap turns the upstream list of granted permission names into the
// lookup the guard consults. Unknown names are kept.
func PermissionMap(granted []string) map[string]bool {
	m := make(map[string]bool, len(granted))
	for _, p := range granted {
		if p != "" {
			m[p] = true
		}
	}
	return m
}
