package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/repositories/applications"
	"github.com/dmitrijs2005/jobtracker/internal/client/tokens"
	"github.com/dmitrijs2005/jobtracker/internal/common"
)

// AuthService manages the session of the CLI user.
//
// Contract:
//   - Login: authenticate and store both tokens.
//   - Register: create the account; tokens are stored only when the API
//     reports the account as already verified.
//   - Logout: drop both tokens and the local cache.
//   - CurrentUser, VerifyEmail: plain API calls.
//   - IsLoggedIn, SessionExpiry: local reads, no network.
//   - Ping: API liveness.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Register(ctx context.Context, email string, password []byte, firstName, lastName string) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	VerifyEmail(ctx context.Context, token string) (*models.VerifyEmailResponse, error)
	IsLoggedIn(ctx context.Context) (bool, error)
	SessionExpiry(ctx context.Context) (time.Time, bool)
	Ping(ctx context.Context) error
}

type authService struct {
	api   API
	store tokens.Store
	cache applications.Repository
}

// NewAuthService binds the service to the API client and the token store the
// client reads from. cache may be nil.
func NewAuthService(api API, store tokens.Store, cache applications.Repository) AuthService {
	return &authService{api: api, store: store, cache: cache}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return nil, err
	}

	resp, err := decode[models.AuthResponse](a.api.Post(ctx, "/login", models.Credentials{Email: email, Password: string(password)}))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.startSession(ctx, resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (a *authService) Register(ctx context.Context, email string, password []byte, firstName, lastName string) (*models.AuthResponse, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return nil, err
	}

	resp, err := decode[models.AuthResponse](a.api.Post(ctx, "/register", models.Registration{
		Email:     email,
		Password:  string(password),
		FirstName: firstName,
		LastName:  lastName,
	}))
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}

	if resp.User.IsVerified {
		if err := a.startSession(ctx, resp); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}

// startSession replaces the stored pair with the issued one and drops
// whatever the previous session cached.
func (a *authService) startSession(ctx context.Context, resp models.AuthResponse) error {
	if resp.Token == "" {
		return fmt.Errorf("session error: %w", common.ErrInvalidToken)
	}
	if err := tokens.ReplacePair(ctx, a.store, tokens.Pair{AccessToken: resp.Token, RefreshToken: resp.RefreshToken}); err != nil {
		return fmt.Errorf("token saving error: %w", err)
	}
	if a.cache != nil {
		if err := a.cache.Clear(ctx); err != nil {
			return fmt.Errorf("cache clearing error: %w", err)
		}
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := tokens.ClearPair(ctx, a.store); err != nil {
		return fmt.Errorf("token clearing error: %w", err)
	}
	if a.cache != nil {
		if err := a.cache.Clear(ctx); err != nil {
			return fmt.Errorf("cache clearing error: %w", err)
		}
	}
	return nil
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	u, err := decode[models.User](a.api.Get(ctx, "/me"))
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *authService) VerifyEmail(ctx context.Context, token string) (*models.VerifyEmailResponse, error) {
	resp, err := decode[models.VerifyEmailResponse](a.api.Get(ctx, "/verify-email?token="+url.QueryEscape(token)))
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *authService) IsLoggedIn(ctx context.Context) (bool, error) {
	token, ok, err := a.store.Get(ctx, common.AccessTokenKey)
	if err != nil {
		return false, err
	}
	return ok && token != "", nil
}

// SessionExpiry reads the exp claim of the stored access token, for display.
func (a *authService) SessionExpiry(ctx context.Context) (time.Time, bool) {
	token, ok, err := a.store.Get(ctx, common.AccessTokenKey)
	if err != nil || !ok {
		return time.Time{}, false
	}
	return tokens.ExpiresAt(token)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.api.Ping(ctx)
}
