// Package tokens keeps the session credential pair: the short-lived access
// token and the refresh token it is renewed with.
//
// The pair lives under two keys, common.AccessTokenKey ("token") and
// common.RefreshTokenKey ("refreshToken"). Store implementations must be safe
// for concurrent use; concurrent writers race and the last write wins.
package tokens

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/jobtracker/internal/common"
)

// Store is a string key/value store. Get reports ok == false when the key is
// absent; Remove on an absent key is a no-op.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// PairWriter is implemented by stores that can replace or clear both
// credentials in one atomic step.
type PairWriter interface {
	SetPair(ctx context.Context, p Pair) error
	ClearPair(ctx context.Context) error
}

// Pair is the credential pair. An empty RefreshToken in a write means
// "keep the stored one".
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// SavePair stores p, atomically when the store supports it.
func SavePair(ctx context.Context, s Store, p Pair) error {
	if p.AccessToken == "" {
		return common.ErrInvalidToken
	}
	if pw, ok := s.(PairWriter); ok {
		return pw.SetPair(ctx, p)
	}
	if err := s.Set(ctx, common.AccessTokenKey, p.AccessToken); err != nil {
		return err
	}
	if p.RefreshToken == "" {
		return nil
	}
	return s.Set(ctx, common.RefreshTokenKey, p.RefreshToken)
}

// ReplacePair stores p as a whole new session: unlike SavePair, an empty
// RefreshToken removes the stored one.
func ReplacePair(ctx context.Context, s Store, p Pair) error {
	if err := SavePair(ctx, s, p); err != nil {
		return err
	}
	if p.RefreshToken != "" {
		return nil
	}
	return s.Remove(ctx, common.RefreshTokenKey)
}

// ClearPair removes both credentials. Both removals are attempted even when
// the first fails.
func ClearPair(ctx context.Context, s Store) error {
	if pw, ok := s.(PairWriter); ok {
		return pw.ClearPair(ctx)
	}
	return errors.Join(
		s.Remove(ctx, common.AccessTokenKey),
		s.Remove(ctx, common.RefreshTokenKey),
	)
}

// LoadPair returns whatever part of the pair is stored.
func LoadPair(ctx context.Context, s Store) (Pair, error) {
	var p Pair
	var err error
	if p.AccessToken, _, err = s.Get(ctx, common.AccessTokenKey); err != nil {
		return Pair{}, err
	}
	if p.RefreshToken, _, err = s.Get(ctx, common.RefreshTokenKey); err != nil {
		return Pair{}, err
	}
	return p, nil
}
