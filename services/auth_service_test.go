package services

import (
	"cfb-trends-go/config"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const testAdminKey = "correct-horse-battery-staple"

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminKey), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return NewAuthService(config.AuthConfig{
		JWTSecret:    "test-secret",
		AdminKeyHash: string(hash),
		TokenTTL:     time.Hour,
	})
}

func TestAuthService_IssueAndValidate(t *testing.T) {
	auth := newTestAuthService(t)

	resp, err := auth.IssueToken(testAdminKey)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if resp.Token == "" || resp.ExpiresAt.Before(time.Now()) {
		t.Fatalf("unexpected token response %+v", resp)
	}

	claims, err := auth.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if !claims.IsAdmin() || claims.ID == "" {
		t.Errorf("claims = %+v, want admin role with an ID", claims)
	}
}

func TestAuthService_Rejections(t *testing.T) {
	auth := newTestAuthService(t)

	if _, err := auth.IssueToken("wrong-key"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("IssueToken(wrong) error = %v, want ErrInvalidCredentials", err)
	}

	unconfigured := NewAuthService(config.AuthConfig{JWTSecret: "test-secret"})
	if _, err := unconfigured.IssueToken(testAdminKey); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("IssueToken without hash error = %v, want ErrInvalidCredentials", err)
	}

	resp, err := auth.IssueToken(testAdminKey)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
		setup func(a *AuthService)
	}{
		{"garbage", "not-a-token", nil},
		{"tampered", resp.Token + "x", nil},
		{"other secret", resp.Token, func(a *AuthService) { a.jwtSecret = []byte("another-secret") }},
		{"expired", resp.Token, func(a *AuthService) {
			a.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		}},
		{"wrong role", signClaims(t, AdminClaims{Role: "viewer", RegisteredClaims: jwt.RegisteredClaims{
			Issuer: tokenIssuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAuthService(t)
			if tt.setup != nil {
				tt.setup(a)
			}
			if _, err := a.ValidateToken(tt.token); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("ValidateToken() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func signClaims(t *testing.T, claims AdminClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func TestHashAdminKey(t *testing.T) {
	if _, err := HashAdminKey("short"); err == nil {
		t.Error("short keys should be rejected")
	}

	hash, err := HashAdminKey(testAdminKey)
	if err != nil {
		t.Fatalf("HashAdminKey() error = %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(testAdminKey)); err != nil {
		t.Errorf("hash does not match key: %v", err)
	}
}
