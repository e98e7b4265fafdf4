// Package client is the authenticated HTTP client of the tracker API.
//
// # Overview
//
// Client attaches the stored access token to every request as a bearer
// credential. When the API answers 401 on a protected endpoint, the client
// exchanges the stored refresh token for a new access token and replays the
// request once. Requests that hit 401 while that exchange is in flight do
// not start their own: they wait in a FIFO queue and are released, in
// arrival order, with the outcome of the single in-flight refresh.
//
// When the session cannot be renewed (no refresh token, or the refresh call
// failed) the client performs a forced logout: both stored tokens are removed
// and the navigator is sent to the login screen, unless the user is on the
// email verification screen, which shows its own result.
//
// Authentication endpoints (/login, /register, /verify-email, /refresh) never
// trigger a refresh; their 401 is returned as is. Other statuses and transport
// errors are never intercepted.
//
// # Error Handling
//
// Non-2xx answers come back as *StatusError; a failed refresh as
// *RefreshError. Both match the sentinel errors ErrUnauthorized,
// ErrUnavailable and ErrRefreshFailed through errors.Is where it makes sense.
// Transport errors are returned unchanged.
//
// # Concurrency & Contexts
//
// A Client is safe for concurrent use. At most one refresh call is in flight
// per Client. The refresh itself is not cancelled by the context of the
// request that started it, since its outcome is shared by every waiter; a
// queued request stops waiting when its own context ends. The client adds no
// timeouts of its own; configure them on the *http.Client.
//
// Local persistence bootstrap (InitDatabase, RunMigrations) lives here too:
// it prepares the SQLite file that backs the durable token store.
package client
