package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := NewCodec([]byte("test-secret"), "test-issuer", "test-audience")
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	return codec
}

func TestNewCodec_EmptySecret(t *testing.T) {
	if _, err := NewCodec(nil, "iss", "aud"); !errors.Is(err, ErrNoSigningSecret) {
		t.Errorf("NewCodec(nil secret) error = %v, want ErrNoSigningSecret", err)
	}
}

func TestCodec_IssueVerify_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	claims := Claims{
		UserID:      "user-123",
		Email:       "user@example.com",
		Phone:       "13800000000",
		Role:        "user",
		Permissions: []string{"user:read", "user:update"},
	}

	tokenString, err := codec.Issue(claims, KindAccess, 15*time.Minute)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if parts := strings.Split(tokenString, "."); len(parts) != 3 {
		t.Errorf("Issue() produced %d dot-separated segments, want 3", len(parts))
	}

	got, err := codec.Verify(tokenString, KindAccess)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if got.UserID != claims.UserID {
		t.Errorf("UserID = %q, want %q", got.UserID, claims.UserID)
	}
	if got.Email != claims.Email {
		t.Errorf("Email = %q, want %q", got.Email, claims.Email)
	}
	if got.Phone != claims.Phone {
		t.Errorf("Phone = %q, want %q", got.Phone, claims.Phone)
	}
	if got.Role != claims.Role {
		t.Errorf("Role = %q, want %q", got.Role, claims.Role)
	}
	if len(got.Permissions) != 2 {
		t.Errorf("Permissions = %v, want 2 entries", got.Permissions)
	}
	if got.Kind != KindAccess {
		t.Errorf("Kind = %q, want %q", got.Kind, KindAccess)
	}
	if got.ExpiresAt == nil || got.IssuedAt == nil {
		t.Error("exp/iat not populated")
	}
	if got.Issuer != "test-issuer" {
		t.Errorf("Issuer = %q, want test-issuer", got.Issuer)
	}
	if got.RegisteredClaims.Subject != "user-123" {
		t.Errorf("sub = %q, want user-123", got.RegisteredClaims.Subject)
	}
}

func TestCodec_Verify_KindMismatch(t *testing.T) {
	codec := newTestCodec(t)

	refresh, err := codec.Issue(Claims{UserID: "u1"}, KindRefresh, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// A refresh token presented as an access token must fail on kind,
	// never on signature.
	_, err = codec.Verify(refresh, KindAccess)
	if !errors.Is(err, ErrKindMismatch) {
		t.Errorf("Verify(refresh as access) error = %v, want ErrKindMismatch", err)
	}

	access, err := codec.Issue(Claims{UserID: "u1"}, KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := codec.Verify(access, KindRefresh); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("Verify(access as refresh) error = %v, want ErrKindMismatch", err)
	}
}

func TestCodec_Verify_Expired(t *testing.T) {
	codec := newTestCodec(t)

	expired, err := codec.Issue(Claims{UserID: "u1"}, KindAccess, -time.Second)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = codec.Verify(expired, KindAccess)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Verify(expired) error = %v, want ErrTokenExpired", err)
	}
	if errors.Is(err, ErrSignatureInvalid) {
		t.Error("expiry must be distinct from signature invalidity")
	}
}

func TestCodec_Verify_Failures(t *testing.T) {
	codec := newTestCodec(t)

	otherSecret, err := NewCodec([]byte("other-secret"), "test-issuer", "test-audience")
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	otherIssuer, err := NewCodec([]byte("test-secret"), "other-issuer", "test-audience")
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	otherAudience, err := NewCodec([]byte("test-secret"), "test-issuer", "other-audience")
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}

	valid, err := codec.Issue(Claims{UserID: "u1"}, KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	foreign, err := otherSecret.Issue(Claims{UserID: "u1"}, KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	wrongIss, err := otherIssuer.Issue(Claims{UserID: "u1"}, KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	wrongAud, err := otherAudience.Issue(Claims{UserID: "u1"}, KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "garbage", token: "not-a-token", want: ErrTokenMalformed},
		{name: "two segments", token: "aaaa.bbbb", want: ErrTokenMalformed},
		{name: "foreign secret", token: foreign, want: ErrSignatureInvalid},
		{name: "wrong issuer", token: wrongIss, want: ErrSignatureInvalid},
		{name: "wrong audience", token: wrongAud, want: ErrSignatureInvalid},
		{name: "tampered signature", token: tamper(valid), want: ErrSignatureInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := codec.Verify(tt.token, KindAccess); !errors.Is(err, tt.want) {
				t.Errorf("Verify() error = %v, want %v", err, tt.want)
			}
		})
	}
}

// tamper flips a character in the signature segment.
func tamper(tokenString string) string {
	parts := strings.Split(tokenString, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)
	return strings.Join(parts, ".")
}

func TestCodec_DecodeUnsafe(t *testing.T) {
	codec := newTestCodec(t)

	tokenString, err := codec.Issue(Claims{UserID: "u1", Role: "admin"}, KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims := codec.DecodeUnsafe(tokenString)
	if claims == nil {
		t.Fatal("DecodeUnsafe() = nil for valid token")
	}
	if claims.UserID != "u1" || claims.Role != "admin" {
		t.Errorf("DecodeUnsafe() claims = %+v", claims)
	}

	if codec.DecodeUnsafe("garbage") != nil {
		t.Error("DecodeUnsafe(garbage) should return nil")
	}

	// Unsafe decode works even on tokens signed with another secret;
	// that is exactly why it must never authorize anything.
	other, err := NewCodec([]byte("other"), "i", "a")
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	foreign, err := other.Issue(Claims{UserID: "u2"}, KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if got := codec.DecodeUnsafe(foreign); got == nil || got.UserID != "u2" {
		t.Errorf("DecodeUnsafe(foreign) = %+v, want claims with UserID u2", got)
	}
}

func TestCodec_Issue_APIKeyNoExpiry(t *testing.T) {
	codec := newTestCodec(t)

	key, err := codec.Issue(Claims{Identifier: "billing-service"}, KindAPIKey, 0)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := codec.Verify(key, KindAPIKey)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Identifier != "billing-service" {
		t.Errorf("Identifier = %q, want billing-service", claims.Identifier)
	}
	if claims.ExpiresAt != nil {
		t.Error("api-key token should carry no expiry claim")
	}
}
