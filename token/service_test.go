package token

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(newTestCodec(t), "15m", "7d")
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func TestNewService_InvalidTTL(t *testing.T) {
	codec := newTestCodec(t)

	if _, err := NewService(codec, "15x", "7d"); !errors.Is(err, ErrInvalidTTL) {
		t.Errorf("NewService(bad access ttl) error = %v, want ErrInvalidTTL", err)
	}
	if _, err := NewService(codec, "15m", "seven days"); !errors.Is(err, ErrInvalidTTL) {
		t.Errorf("NewService(bad refresh ttl) error = %v, want ErrInvalidTTL", err)
	}
}

func TestService_Login(t *testing.T) {
	svc := newTestService(t)

	pair, err := svc.Login(context.Background(), Claims{
		UserID: "user-1",
		Email:  "user@example.com",
		Role:   "user",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if pair.ExpiresIn != "15m" {
		t.Errorf("ExpiresIn = %q, want 15m", pair.ExpiresIn)
	}

	access, err := svc.Codec().Verify(pair.AccessToken, KindAccess)
	if err != nil {
		t.Fatalf("Verify(access) error = %v", err)
	}
	if access.UserID != "user-1" || access.Role != "user" {
		t.Errorf("access claims = %+v", access)
	}

	refresh, err := svc.Codec().Verify(pair.RefreshToken, KindRefresh)
	if err != nil {
		t.Fatalf("Verify(refresh) error = %v", err)
	}
	if refresh.UserID != "user-1" {
		t.Errorf("refresh claims = %+v", refresh)
	}

	// The refresh token must not double as an access credential.
	if _, err := svc.Codec().Verify(pair.RefreshToken, KindAccess); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("Verify(refresh as access) error = %v, want ErrKindMismatch", err)
	}
}

func TestService_Refresh(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, Claims{UserID: "user-1", Email: "u@example.com", Role: "user"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	access, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	claims, err := svc.Codec().Verify(access, KindAccess)
	if err != nil {
		t.Fatalf("Verify(refreshed access) error = %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "u@example.com" || claims.Role != "user" {
		t.Errorf("refreshed claims = %+v", claims)
	}
}

func TestService_Refresh_NotSingleUse(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, Claims{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	first, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("first Refresh() error = %v", err)
	}
	time.Sleep(1100 * time.Millisecond) // advance iat/exp by a full second
	second, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("second Refresh() error = %v", err)
	}

	if first == second {
		t.Error("two refreshes produced byte-identical access tokens")
	}
	if _, err := svc.Codec().Verify(first, KindAccess); err != nil {
		t.Errorf("first refreshed token invalid: %v", err)
	}
	if _, err := svc.Codec().Verify(second, KindAccess); err != nil {
		t.Errorf("second refreshed token invalid: %v", err)
	}
}

func TestService_Refresh_Failures(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, Claims{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "access token rejected", token: pair.AccessToken, want: ErrKindMismatch},
		{name: "garbage", token: "garbage", want: ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Refresh(ctx, tt.token); !errors.Is(err, tt.want) {
				t.Errorf("Refresh() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestService_Refresh_CancelledContext(t *testing.T) {
	svc := newTestService(t)

	pair, err := svc.Login(context.Background(), Claims{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	access, err := svc.Refresh(ctx, pair.RefreshToken)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Refresh() error = %v, want context.Canceled", err)
	}
	if access != "" {
		t.Error("Refresh() issued a token under a cancelled context")
	}
}

func TestService_RemainingSeconds(t *testing.T) {
	svc := newTestService(t)

	pair, err := svc.Login(context.Background(), Claims{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	remaining, ok := svc.RemainingSeconds(pair.AccessToken)
	if !ok {
		t.Fatal("RemainingSeconds() ok = false for fresh token")
	}
	if remaining <= 0 || remaining > 15*60 {
		t.Errorf("RemainingSeconds() = %d, want within (0, 900]", remaining)
	}

	if _, ok := svc.RemainingSeconds("garbage"); ok {
		t.Error("RemainingSeconds(garbage) ok = true")
	}

	// Token with no expiry claim.
	apiKey, err := svc.IssueAPIKey("svc")
	if err != nil {
		t.Fatalf("IssueAPIKey() error = %v", err)
	}
	if _, ok := svc.RemainingSeconds(apiKey); ok {
		t.Error("RemainingSeconds(no exp) ok = true")
	}

	// Expired token clamps at zero rather than going negative.
	expired, err := svc.Codec().Issue(Claims{UserID: "u"}, KindAccess, -time.Minute)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	remaining, ok = svc.RemainingSeconds(expired)
	if !ok || remaining != 0 {
		t.Errorf("RemainingSeconds(expired) = %d, %v, want 0, true", remaining, ok)
	}
}

func TestService_ExpiringSoon(t *testing.T) {
	svc := newTestService(t)

	pair, err := svc.Login(context.Background(), Claims{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if svc.ExpiringSoon(pair.AccessToken, time.Minute) {
		t.Error("fresh 15m token reported as expiring within 1m")
	}
	if !svc.ExpiringSoon(pair.AccessToken, time.Hour) {
		t.Error("15m token not reported as expiring within 1h")
	}
	if !svc.ExpiringSoon("garbage", time.Minute) {
		t.Error("unparseable token should be treated as expiring")
	}
}

func TestService_APIKeys(t *testing.T) {
	svc := newTestService(t)

	key, err := svc.IssueAPIKey("reporting-service")
	if err != nil {
		t.Fatalf("IssueAPIKey() error = %v", err)
	}

	identifier, err := svc.VerifyAPIKey(key)
	if err != nil {
		t.Fatalf("VerifyAPIKey() error = %v", err)
	}
	if identifier != "reporting-service" {
		t.Errorf("identifier = %q, want reporting-service", identifier)
	}

	// User tokens are not api keys.
	pair, err := svc.Login(context.Background(), Claims{UserID: "u1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if _, err := svc.VerifyAPIKey(pair.AccessToken); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("VerifyAPIKey(access token) error = %v, want ErrKindMismatch", err)
	}
}
