package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/dmitrijs2005/jobtracker/internal/client/client"
)

// API is the part of *client.Client the services use.
type API interface {
	Get(ctx context.Context, path string) (*client.Response, error)
	Post(ctx context.Context, path string, body any) (*client.Response, error)
	Put(ctx context.Context, path string, body any) (*client.Response, error)
	Patch(ctx context.Context, path string, body any) (*client.Response, error)
	Delete(ctx context.Context, path string) (*client.Response, error)
	Ping(ctx context.Context) error
}

// decode reads the JSON body of a successful call, passing call errors on.
//
//	user, err := decode[models.User](api.Get(ctx, "/me"))
func decode[T any](resp *client.Response, err error) (T, error) {
	var v T
	if err != nil {
		return v, err
	}
	if err := resp.Decode(&v); err != nil {
		return v, fmt.Errorf("decode response: %w", err)
	}
	return v, nil
}

// Offline reports whether err means the API could not be reached, as opposed
// to the API answering with an error. A failed session renewal is never
// offline: the session is gone either way.
func Offline(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, client.ErrRefreshFailed) {
		return false
	}
	if errors.Is(err, client.ErrUnavailable) {
		return true
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}
