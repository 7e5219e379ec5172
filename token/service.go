package token

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Pair is the result of a successful login issuance.
type Pair struct {
	// AccessToken is the short-lived credential presented on requests.
	AccessToken string `json:"accessToken"`

	// RefreshToken is the long-lived credential used to obtain new access
	// tokens.
	RefreshToken string `json:"refreshToken"`

	// ExpiresIn is the configured access-token TTL in its textual form
	// (e.g. "15m").
	ExpiresIn string `json:"expiresIn"`
}

// Service implements the token lifecycle: pair issuance at login, access
// re-issuance from refresh tokens, and advisory expiry queries.
//
// Contract:
// - Concurrency: safe for concurrent use; all state is immutable after construction.
// - Errors: Refresh reports verification failures via the codec sentinels.
type Service struct {
	codec      *Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
	expiresIn  string
}

// NewService creates a lifecycle service. The TTL strings are parsed
// eagerly; a malformed TTL aborts construction.
func NewService(codec *Codec, accessTTL, refreshTTL string) (*Service, error) {
	access, err := ParseTTL(accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := ParseTTL(refreshTTL)
	if err != nil {
		return nil, err
	}
	return &Service{
		codec:      codec,
		accessTTL:  access,
		refreshTTL: refresh,
		expiresIn:  accessTTL,
	}, nil
}

// Codec returns the codec this service issues with.
func (s *Service) Codec() *Codec {
	return s.codec
}

// ExpiresIn returns the access-token TTL in its configured textual form.
func (s *Service) ExpiresIn() string {
	return s.expiresIn
}

// Login issues an access/refresh pair for the given identity claims. The
// two tokens are independent builds from the same claims, so they are
// issued concurrently; either failure fails the login.
func (s *Service) Login(ctx context.Context, claims Claims) (*Pair, error) {
	pair := &Pair{ExpiresIn: s.expiresIn}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		access, err := s.codec.Issue(claims, KindAccess, s.accessTTL)
		if err != nil {
			return err
		}
		pair.AccessToken = access
		return nil
	})
	g.Go(func() error {
		refresh, err := s.codec.Issue(claims, KindRefresh, s.refreshTTL)
		if err != nil {
			return err
		}
		pair.RefreshToken = refresh
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return pair, nil
}

// Refresh verifies a refresh token and issues a new access token carrying
// the same identity claims with a fresh TTL. Honors context cancellation
// before issuing; verification failures surface as "refresh token invalid
// or expired" to callers.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	claims, err := s.codec.Verify(refreshToken, KindRefresh)
	if err != nil {
		return "", err
	}
	return s.codec.Issue(claims.identityOnly(), KindAccess, s.accessTTL)
}

// RemainingSeconds reports how long the token stays valid, using an
// unverified decode. Advisory only. Returns false if the token cannot be
// parsed or carries no expiry claim.
func (s *Service) RemainingSeconds(tokenString string) (int64, bool) {
	claims := s.codec.DecodeUnsafe(tokenString)
	if claims == nil || claims.ExpiresAt == nil {
		return 0, false
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < 0 {
		remaining = 0
	}
	return int64(remaining.Seconds()), true
}

// ExpiringSoon reports whether the token expires within threshold, using an
// unverified decode. Tokens that cannot be parsed or carry no expiry are
// treated as expiring.
func (s *Service) ExpiringSoon(tokenString string, threshold time.Duration) bool {
	claims := s.codec.DecodeUnsafe(tokenString)
	if claims == nil || claims.ExpiresAt == nil {
		return true
	}
	return time.Until(claims.ExpiresAt.Time) <= threshold
}

// IssueAPIKey mints a non-expiring api-key token identifying a calling
// service.
func (s *Service) IssueAPIKey(identifier string) (string, error) {
	return s.codec.Issue(Claims{Identifier: identifier}, KindAPIKey, 0)
}

// VerifyAPIKey validates an api-key token and returns the service
// identifier it carries.
func (s *Service) VerifyAPIKey(key string) (string, error) {
	claims, err := s.codec.Verify(key, KindAPIKey)
	if err != nil {
		return "", err
	}
	return claims.Identifier, nil
}
