package interfaces

import (
	"cfb-trends-go/models"
	"context"
)

// TrendsService defines the report operations used by handlers and the CLI
type TrendsService interface {
	GetTrends(ctx context.Context, season int, conference string) (*models.TrendsResult, error)
	Refresh(ctx context.Context, season int, conference string) (*models.TrendsResult, error)
}

// AuthService defines admin token issuance
type AuthService interface {
	IssueToken(apiKey string) (*models.TokenResponse, error)
}
