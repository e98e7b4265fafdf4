package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/client/navigation"
	"github.com/dmitrijs2005/jobtracker/internal/client/tokens"
	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/logging"
	"github.com/google/uuid"
)

// Client talks to the tracker API on behalf of the logged-in user.
type Client struct {
	baseURL string
	http    *http.Client
	store   tokens.Store
	nav     navigation.Navigator
	log     logging.Logger

	refresh refreshState
}

type Option func(*Client)

// WithHTTPClient replaces the default transport (http.Client with a 15s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a Client for the API rooted at baseURL, e.g.
// "http://localhost:8080/api". store holds the credential pair and nav is
// told where to go after a forced logout.
func New(baseURL string, store tokens.Store, nav navigation.Navigator, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
		nav:     nav,
		log:     logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With("component", "apiclient")
	return c
}

// call is a request together with its place in the retry budget. The flag
// travels beside the request so the caller's Request is never mutated.
type call struct {
	req     *Request
	retried bool
}

// Do performs req with the stored access token, renewing the session once if
// the API reports it expired.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	token, _, err := c.store.Get(ctx, common.AccessTokenKey)
	if err != nil {
		return nil, fmt.Errorf("read access token: %w", err)
	}
	return c.execute(ctx, call{req: req}, token)
}

func (c *Client) execute(ctx context.Context, cl call, token string) (*Response, error) {
	resp, err := c.roundTrip(ctx, cl.req, token)
	if !c.recoverable(cl, err) {
		return resp, err
	}

	token, err = c.renew(ctx, err)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, call{req: cl.req, retried: true}, token)
}

// recoverable reports whether err is an access-token expiry worth a refresh.
func (c *Client) recoverable(cl call, err error) bool {
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusUnauthorized {
		return false
	}
	return !cl.retried && !isAuthEndpoint(cl.req.Path)
}

func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path})
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// Ping probes the API with a HEAD request on the base URL, outside the
// session handling. Transport failures and 5xx answers mean ErrUnavailable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return ErrUnavailable
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return ErrUnavailable
	}
	return nil
}

// roundTrip performs exactly one HTTP exchange. token, when non-empty, is
// sent as the bearer credential. Non-2xx answers become *StatusError;
// transport errors are returned unchanged.
func (c *Client) roundTrip(ctx context.Context, req *Request, token string) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if httpReq.Header.Get(common.RequestIDHeaderName) == "" {
		httpReq.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}
	if token != "" {
		httpReq.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.log.Debug(ctx, "api call",
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"request_id", httpReq.Header.Get(common.RequestIDHeaderName),
		"dur", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: req.Method, Path: req.Path, StatusCode: resp.StatusCode, Body: data}
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

var authEndpoints = map[string]struct{}{
	"/login":        {},
	"/register":     {},
	"/verify-email": {},
	"/refresh":      {},
}

// isAuthEndpoint reports whether path addresses one of the endpoints that
// issue or check credentials. A 401 from them is final.
func isAuthEndpoint(path string) bool {
	path, _, _ = strings.Cut(path, "?")
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}
	_, ok := authEndpoints[path]
	return ok
}
