package client

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrijs2005/jobtracker/internal/client/tokens"
	"github.com/dmitrijs2005/jobtracker/internal/common"
)

const refreshPath = "/refresh"

// waiter is a request parked until the in-flight refresh settles. Exactly one
// of resolve or reject is called, once.
type waiter struct {
	resolve func(token string)
	reject  func(err error)
}

// waitQueue holds waiters in arrival order.
type waitQueue struct {
	items []waiter
}

func (q *waitQueue) push(w waiter) {
	q.items = append(q.items, w)
}

func (q *waitQueue) len() int {
	return len(q.items)
}

// resolveAll releases every waiter with token, oldest first, and empties the
// queue.
func (q *waitQueue) resolveAll(token string) {
	items := q.items
	q.items = nil
	for _, w := range items {
		w.resolve(token)
	}
}

// rejectAll fails every waiter with err, oldest first, and empties the queue.
func (q *waitQueue) rejectAll(err error) {
	items := q.items
	q.items = nil
	for _, w := range items {
		w.reject(err)
	}
}

// refreshState guards the single in-flight refresh of a Client. refreshing
// is set before the refresh call starts and cleared only after the queue has
// been drained, both under mu.
type refreshState struct {
	mu         sync.Mutex
	refreshing bool
	queue      waitQueue
}

func (s *refreshState) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.len()
}

type settlement struct {
	token string
	err   error
}

// renew returns a fresh access token, either by running the refresh itself or
// by waiting for the one already in flight. cause is the 401 that triggered
// the renewal.
func (c *Client) renew(ctx context.Context, cause error) (string, error) {
	c.refresh.mu.Lock()
	if c.refresh.refreshing {
		done := make(chan settlement, 1)
		c.refresh.queue.push(waiter{
			resolve: func(token string) { done <- settlement{token: token} },
			reject:  func(err error) { done <- settlement{err: err} },
		})
		c.refresh.mu.Unlock()

		select {
		case s := <-done:
			return s.token, s.err
		case <-ctx.Done():
			// the entry stays queued; its buffered channel absorbs the settlement
			return "", ctx.Err()
		}
	}
	c.refresh.refreshing = true
	c.refresh.mu.Unlock()

	token, err := c.refreshSession(context.WithoutCancel(ctx), cause)

	c.refresh.mu.Lock()
	if err != nil {
		c.refresh.queue.rejectAll(err)
	} else {
		c.refresh.queue.resolveAll(token)
	}
	c.refresh.refreshing = false
	c.refresh.mu.Unlock()

	return token, err
}

// refreshSession exchanges the stored refresh token for a new pair and
// persists it. On any failure it performs the forced logout before returning,
// so callers and waiters only ever observe the settled state.
func (c *Client) refreshSession(ctx context.Context, cause error) (string, error) {
	refreshToken, ok, err := c.store.Get(ctx, common.RefreshTokenKey)
	if err != nil {
		return "", c.failRefresh(ctx, &RefreshError{Err: err})
	}
	if !ok || refreshToken == "" {
		c.log.Warn(ctx, "access token expired and no refresh token stored")
		return "", c.failRefresh(ctx, cause)
	}

	c.log.Info(ctx, "access token expired, refreshing")

	pair, err := c.requestRefresh(ctx, refreshToken)
	if err != nil {
		return "", c.failRefresh(ctx, &RefreshError{Err: err})
	}
	if err := tokens.SavePair(ctx, c.store, pair); err != nil {
		return "", c.failRefresh(ctx, &RefreshError{Err: err})
	}

	c.log.Info(ctx, "access token refreshed", "rotated", pair.RefreshToken != "", "waiters", c.refresh.pending())
	return pair.AccessToken, nil
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// requestRefresh calls the refresh endpoint without a bearer token. Transport
// errors, non-2xx answers, unreadable bodies and empty tokens all count as
// failure alike.
func (c *Client) requestRefresh(ctx context.Context, refreshToken string) (tokens.Pair, error) {
	resp, err := c.roundTrip(ctx, &Request{
		Method: http.MethodPost,
		Path:   refreshPath,
		Body:   refreshRequest{RefreshToken: refreshToken},
	}, "")
	if err != nil {
		return tokens.Pair{}, err
	}

	var rr refreshResponse
	if err := resp.Decode(&rr); err != nil {
		return tokens.Pair{}, err
	}
	if rr.Token == "" {
		return tokens.Pair{}, common.ErrInvalidToken
	}
	return tokens.Pair{AccessToken: rr.Token, RefreshToken: rr.RefreshToken}, nil
}

// failRefresh runs the forced logout and hands back err for propagation.
func (c *Client) failRefresh(ctx context.Context, err error) error {
	c.log.Warn(ctx, "session could not be renewed", "error", err)
	c.forceLogout(ctx)
	return err
}

// forceLogout drops both credentials and sends the user to the login screen.
// The email verification screen is left alone so it can show its own result.
func (c *Client) forceLogout(ctx context.Context) {
	if err := tokens.ClearPair(ctx, c.store); err != nil {
		c.log.Error(ctx, "failed to clear stored tokens", "error", err)
	}
	if c.nav == nil {
		return
	}
	if strings.Contains(c.nav.CurrentPath(), common.VerifyEmailPath) {
		c.log.Info(ctx, "forced logout on email verification screen, staying")
		return
	}
	c.nav.RedirectTo(common.LoginPath)
}
