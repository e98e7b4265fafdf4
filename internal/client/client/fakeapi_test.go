package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/jobtracker/internal/client/tokens"
	"github.com/go-chi/chi/v5"
)

/*************
 * Fake tracker API
 *************/

type seenCall struct {
	path      string
	auth      string
	requestID string
}

type fakeAPI struct {
	srv *httptest.Server

	mu            sync.Mutex
	acceptToken   string // bearer accepted by protected routes; "" accepts none
	refreshStatus int
	refreshIssue  refreshResponse
	refreshGate   chan struct{} // when set, /refresh blocks until it is closed
	refreshBodies []refreshRequest
	seen          []seenCall
	onProtected   func(r *http.Request)

	refreshCalls atomic.Int32
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{
		acceptToken:   "fresh",
		refreshStatus: http.StatusOK,
		refreshIssue:  refreshResponse{Token: "fresh", RefreshToken: "R2"},
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/login", f.unauthorized)
		r.Post("/register", f.unauthorized)
		r.Get("/verify-email", f.unauthorized)
		r.Post("/refresh", f.handleRefresh)
		r.Post("/echo", f.handleEcho)
		r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "kaput"})
		})
		r.Get("/applications/{id}", f.handleProtected)
	})

	f.srv = httptest.NewServer(r)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) baseURL() string { return f.srv.URL + "/api" }

func (f *fakeAPI) set(fn func(f *fakeAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeAPI) calls() []seenCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]seenCall(nil), f.seen...)
}

func (f *fakeAPI) bodies() []refreshRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]refreshRequest(nil), f.refreshBodies...)
}

func (f *fakeAPI) countAuth(auth string) int {
	n := 0
	for _, c := range f.calls() {
		if c.auth == auth {
			n++
		}
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) unauthorized(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
}

func (f *fakeAPI) handleRefresh(w http.ResponseWriter, r *http.Request) {
	f.refreshCalls.Add(1)

	var body refreshRequest
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.refreshBodies = append(f.refreshBodies, body)
	gate, status, issue := f.refreshGate, f.refreshStatus, f.refreshIssue
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if status != http.StatusOK {
		writeJSON(w, status, map[string]string{"error": "refresh rejected"})
		return
	}
	writeJSON(w, http.StatusOK, issue)
}

func (f *fakeAPI) handleEcho(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	writeJSON(w, http.StatusCreated, map[string]string{
		"contentType": r.Header.Get("Content-Type"),
		"body":        string(b),
	})
}

func (f *fakeAPI) handleProtected(w http.ResponseWriter, r *http.Request) {
	auth := r.Header.Get("Authorization")

	f.mu.Lock()
	f.seen = append(f.seen, seenCall{path: r.URL.Path, auth: auth, requestID: r.Header.Get("X-Request-ID")})
	accept, hook := f.acceptToken, f.onProtected
	f.mu.Unlock()

	if hook != nil {
		hook(r)
	}
	if accept == "" || auth != "Bearer "+accept {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "token expired"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": chi.URLParam(r, "id"), "companyName": "Acme"})
}

/*************
 * Collaborator fakes
 *************/

type fakeNav struct {
	mu        sync.Mutex
	current   string
	redirects []string
}

func (n *fakeNav) RedirectTo(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = path
	n.redirects = append(n.redirects, path)
}

func (n *fakeNav) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *fakeNav) redirected() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.redirects...)
}

// countingStore counts atomic pair clears.
type countingStore struct {
	*tokens.MemoryStore
	clears atomic.Int32
}

func (s *countingStore) ClearPair(ctx context.Context) error {
	s.clears.Add(1)
	return s.MemoryStore.ClearPair(ctx)
}

func newStore(t *testing.T, p tokens.Pair) *countingStore {
	t.Helper()
	s := &countingStore{MemoryStore: tokens.NewMemoryStore()}
	if p.AccessToken != "" {
		if err := s.Set(context.Background(), "token", p.AccessToken); err != nil {
			t.Fatal(err)
		}
	}
	if p.RefreshToken != "" {
		if err := s.Set(context.Background(), "refreshToken", p.RefreshToken); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func newTestClient(f *fakeAPI, store tokens.Store, nav *fakeNav) *Client {
	return New(f.baseURL(), store, nav, WithHTTPClient(f.srv.Client()))
}
