// Package navigation tracks which screen of the CLI the user is on and lets
// non-UI code (the API client) send the user elsewhere, e.g. back to the
// login prompt after the session could not be renewed.
package navigation

import "sync"

// Navigator is the capability the API client needs from the UI layer.
type Navigator interface {
	RedirectTo(path string)
	CurrentPath() string
}

// Router is a concurrency-safe Navigator. Redirects are also published on a
// buffered channel so the REPL can react between commands; when nobody
// drains it, notifications past the buffer are dropped and the caller never
// blocks.
type Router struct {
	mu        sync.RWMutex
	current   string
	redirects chan string
}

func NewRouter(start string) *Router {
	return &Router{current: start, redirects: make(chan string, 8)}
}

// Go moves to path as a result of user action. It is not announced on
// Redirects.
func (r *Router) Go(path string) {
	r.mu.Lock()
	r.current = path
	r.mu.Unlock()
}

func (r *Router) RedirectTo(path string) {
	r.mu.Lock()
	r.current = path
	r.mu.Unlock()

	select {
	case r.redirects <- path:
	default:
	}
}

func (r *Router) CurrentPath() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Redirects delivers the targets of RedirectTo calls.
func (r *Router) Redirects() <-chan string {
	return r.redirects
}
