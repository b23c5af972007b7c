package routes

const (
	// Health
	Health = "/health"

	// Auth (public)
	AuthLogin                = "/api/v1/auth/login"
	AuthLogout               = "/api/v1/auth/logout"
	AuthPasswordResetRequest = "/api/v1/auth/password-reset/request"
	AuthPasswordResetConfirm = "/api/v1/auth/password-reset/confirm"

	// Any signed-in user
	Me = "/api/v1/me"

	// Staff run sheet
	JobsMy       = "/api/v1/jobs/my"
	JobsComplete = "/api/v1/jobs/complete"

	// Client-submitted property requests
	Requests = "/api/v1/requests"

	// Client account's own serviced properties
	MyClients = "/api/v1/my/clients"

	// Admin
	AdminClients         = "/api/v1/admin/clients"
	AdminClientByID      = "/api/v1/admin/clients/{id}"
	AdminJobs            = "/api/v1/admin/jobs"
	AdminJobsGenerate    = "/api/v1/admin/jobs/generate"
	AdminRequests        = "/api/v1/admin/requests"
	AdminRequestApprove  = "/api/v1/admin/requests/{id}/approve"
	AdminRequestReject   = "/api/v1/admin/requests/{id}/reject"
	AdminLogs            = "/api/v1/admin/logs"
	AdminLogByID         = "/api/v1/admin/logs/{id}"
	AdminLogPhoto        = "/api/v1/admin/logs/{id}/photo"
	AdminPortalTokens    = "/api/v1/admin/portal-tokens"
	AdminPhotoPreference = "/api/v1/admin/clients/{id}/photo-preferences"

	// Client portal (X-Portal-Token auth)
	PortalSummary          = "/api/v1/portal/summary"
	PortalLogs             = "/api/v1/portal/logs"
	PortalPhotoPreferences = "/api/v1/portal/photo-preferences"
)
