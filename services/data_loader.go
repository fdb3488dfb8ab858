package services

import (
	"cfb-trends-go/logging"
	"cfb-trends-go/models"
	"context"
	"fmt"
)

// TrendsProvider returns a trends report for a season
type TrendsProvider interface {
	GetTrends(ctx context.Context, season int, conference string) (*models.TrendsResult, error)
}

// WarmSummary reports the outcome of a warm run
type WarmSummary struct {
	Loaded int
	Failed []string
}

type DataLoader struct {
	trends TrendsProvider
	logger *logging.Logger
}

func NewDataLoader(trends TrendsProvider) *DataLoader {
	return &DataLoader{
		trends: trends,
		logger: logging.WithPrefix("DataLoader"),
	}
}

// WarmSeasons loads every season in [from, to] for each conference so later
// requests are served from cache. Failures are collected and the run continues.
func (dl *DataLoader) WarmSeasons(ctx context.Context, from, to int, conferences []string) (*WarmSummary, error) {
	if from > to {
		return nil, fmt.Errorf("invalid season range %d-%d", from, to)
	}
	if len(conferences) == 0 {
		conferences = []string{""}
	}

	dl.logger.Infof("Warming seasons %d-%d for %d conference set(s)", from, to, len(conferences))

	summary := &WarmSummary{}
	for season := from; season <= to; season++ {
		for _, conference := range conferences {
			if err := ctx.Err(); err != nil {
				return summary, err
			}

			result, err := dl.trends.GetTrends(ctx, season, conference)
			if err != nil {
				dl.logger.Errorf("Failed to warm season %d conference=%q: %v", season, conference, err)
				summary.Failed = append(summary.Failed, fmt.Sprintf("%d/%s", season, conferenceLabel(conference)))
				continue
			}

			summary.Loaded++
			dl.logger.Infof("Warmed season %d conference=%q: %d games (%s)",
				season, conference, result.Report.TotalGames, result.Source)
		}
	}

	dl.logger.Infof("Warm finished: %d loaded, %d failed", summary.Loaded, len(summary.Failed))
	return summary, nil
}

func conferenceLabel(conference string) string {
	if conference == "" {
		return "all"
	}
	return conference
}
