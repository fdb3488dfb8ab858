package services

import (
	"cfb-trends-go/config"
	"cfb-trends-go/logging"
	"cfb-trends-go/models"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer = "cfb-trends-go"
	adminRole   = "admin"
)

// AuthService exchanges the admin API key for short-lived JWTs
type AuthService struct {
	jwtSecret    []byte
	adminKeyHash []byte
	tokenExpiry  time.Duration
	now          func() time.Time
	logger       *logging.Logger
}

// AdminClaims represents the claims in an admin token
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the claims grant admin access
func (c *AdminClaims) IsAdmin() bool {
	return c.Role == adminRole
}

// NewAuthService creates a new authentication service
func NewAuthService(cfg config.AuthConfig) *AuthService {
	expiry := cfg.TokenTTL
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &AuthService{
		jwtSecret:    []byte(cfg.JWTSecret),
		adminKeyHash: []byte(cfg.AdminKeyHash),
		tokenExpiry:  expiry,
		now:          time.Now,
		logger:       logging.WithPrefix("Auth"),
	}
}

// HashAdminKey returns the bcrypt hash to put in ADMIN_KEY_HASH
func HashAdminKey(key string) (string, error) {
	if len(key) < 16 {
		return "", fmt.Errorf("admin key must be at least 16 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash admin key: %w", err)
	}
	return string(hash), nil
}

// IssueToken checks the admin key and returns a signed token
func (a *AuthService) IssueToken(apiKey string) (*models.TokenResponse, error) {
	if len(a.adminKeyHash) == 0 {
		a.logger.Warn("Token requested but no admin key is configured")
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.adminKeyHash, []byte(apiKey)); err != nil {
		a.logger.Warn("Rejected admin key")
		return nil, ErrInvalidCredentials
	}

	now := a.now()
	expiresAt := now.Add(a.tokenExpiry)
	claims := AdminClaims{
		Role: adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   adminRole,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	a.logger.Infof("Issued admin token %s expiring %s", claims.ID, expiresAt.Format(time.RFC3339))
	return &models.TokenResponse{Token: signed, ExpiresAt: expiresAt.UTC()}, nil
}

// ValidateToken validates a JWT token and returns the claims
func (a *AuthService) ValidateToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return a.jwtSecret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid || !claims.IsAdmin() {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}
