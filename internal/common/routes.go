// File: internal/common/routes.go
package common

// Client-side routes the API directs the frontend to after an
// operation completes. The router itself lives in the frontend.
const (
	RouteLanding        = "/"
	RouteLogin          = "/login"
	RouteDonation       = "/donation"
	RouteAdminDashboard = "/admin-dashboard"
	RoutePaymentSuccess = "/payment-success"
)
