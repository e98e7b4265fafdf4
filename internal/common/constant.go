// Package common contains shared constants and sentinel errors used across
// jobtracker components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access token
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName tags every outbound request so server logs can be
// correlated with client logs.
const RequestIDHeaderName = "X-Request-ID"

// Keys of the credential pair in the token store.
const (
	AccessTokenKey  = "token"
	RefreshTokenKey = "refreshToken"
)

// Navigation locations the client knows about.
const (
	LoginPath        = "/login"
	RegisterPath     = "/register"
	VerifyEmailPath  = "/verify-email"
	DashboardPath    = "/dashboard"
	ApplicationsPath = "/applications"
	BudgetPath       = "/budget"
	SavingsPath      = "/savings"
)
