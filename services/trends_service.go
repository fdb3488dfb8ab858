package services

import (
	"cfb-trends-go/database"
	"cfb-trends-go/logging"
	"cfb-trends-go/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// MinSeason is the first season with usable betting line coverage
const MinSeason = 2000

// DataSource supplies completed games and betting lines for a season
type DataSource interface {
	GetGames(ctx context.Context, season int, conference string) ([]models.Game, error)
	GetLines(ctx context.Context, season int, conference string) ([]models.MatchupLines, error)
}

// ReportCache stores computed results keyed by their season and conference
type ReportCache interface {
	Get(ctx context.Context, season int, conference string) (*models.TrendsResult, error)
	Set(ctx context.Context, result *models.TrendsResult, ttl time.Duration) error
	Delete(ctx context.Context, season int, conference string) error
}

// TrendsService loads season data through the cache layers and turns it into trends reports
type TrendsService struct {
	source            DataSource
	seasonCache       database.SeasonCache
	reportCache       ReportCache
	policy            *CachePolicy
	preferredProvider string
	now               func() time.Time
	logger            *logging.Logger
}

// NewTrendsService wires a trends service. seasonCache and reportCache may be nil.
func NewTrendsService(source DataSource, seasonCache database.SeasonCache, reportCache ReportCache, policy *CachePolicy, preferredProvider string) *TrendsService {
	if seasonCache == nil {
		seasonCache = database.NoopSeasonCache{}
	}
	if preferredProvider == "" {
		preferredProvider = models.DefaultPreferredProvider
	}
	return &TrendsService{
		source:            source,
		seasonCache:       seasonCache,
		reportCache:       reportCache,
		policy:            policy,
		preferredProvider: preferredProvider,
		now:               time.Now,
		logger:            logging.WithPrefix("TrendsService"),
	}
}

// ValidateSeason rejects seasons before MinSeason or more than one year ahead of now
func ValidateSeason(season int, now time.Time) error {
	if season < MinSeason || season > now.Year()+1 {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidSeason, season, MinSeason, now.Year()+1)
	}
	return nil
}

// GetTrends returns the trends report for a season, optionally limited to one
// conference. Cached reports are served when fresh; cache failures fall
// through to the next layer.
func (s *TrendsService) GetTrends(ctx context.Context, season int, conference string) (*models.TrendsResult, error) {
	conference = strings.TrimSpace(conference)
	if err := ValidateSeason(season, s.now()); err != nil {
		return nil, err
	}

	if s.reportCache != nil {
		cached, err := s.reportCache.Get(ctx, season, conference)
		switch {
		case err == nil:
			s.logger.Debugf("Report cache hit for season %d conference=%q (generated %s)",
				season, conference, cached.GeneratedAt.Format(time.RFC3339))
			result := *cached
			result.Season = season
			result.Conference = conference
			result.Source = models.SourceReportCache
			return &result, nil
		case !errors.Is(err, database.ErrCacheMiss):
			s.logger.Warnf("Report cache read failed for season %d: %v", season, err)
		}
	}

	return s.compute(ctx, season, conference, false)
}

// Refresh drops every cached layer for the season and rebuilds the report from upstream
func (s *TrendsService) Refresh(ctx context.Context, season int, conference string) (*models.TrendsResult, error) {
	conference = strings.TrimSpace(conference)
	if err := ValidateSeason(season, s.now()); err != nil {
		return nil, err
	}

	if err := s.seasonCache.Invalidate(ctx, season, conference); err != nil {
		s.logger.Warnf("Season cache invalidate failed for season %d: %v", season, err)
	}
	if s.reportCache != nil {
		if err := s.reportCache.Delete(ctx, season, conference); err != nil {
			s.logger.Warnf("Report cache delete failed for season %d: %v", season, err)
		}
	}

	s.logger.Infof("Refreshing season %d conference=%q", season, conference)
	return s.compute(ctx, season, conference, true)
}

func (s *TrendsService) compute(ctx context.Context, season int, conference string, force bool) (*models.TrendsResult, error) {
	start := s.now()

	games, gamesCached, err := loadSeasonData(ctx, s, database.CacheKey{Season: season, Conference: conference, Kind: database.KindGames}, force, s.source.GetGames)
	if err != nil {
		return nil, err
	}
	lines, linesCached, err := loadSeasonData(ctx, s, database.CacheKey{Season: season, Conference: conference, Kind: database.KindLines}, force, s.source.GetLines)
	if err != nil {
		return nil, err
	}

	index := BuildLineIndex(lines, s.preferredProvider)
	report := AggregateTrends(games, index)

	source := models.SourceUpstream
	if gamesCached && linesCached {
		source = models.SourceSeasonCache
	}

	result := &models.TrendsResult{
		Season:      season,
		Conference:  conference,
		Source:      source,
		GeneratedAt: s.now().UTC(),
		Report:      report,
	}

	if s.reportCache != nil {
		ttl := s.policy.TTLFor(season, s.now())
		if err := s.reportCache.Set(ctx, result, ttl); err != nil {
			s.logger.Warnf("Report cache write failed for season %d: %v", season, err)
		}
	}

	s.logger.Infof("Built trends for season %d conference=%q: %d games, %d with lines, %d indexed matchups (%s, %s)",
		season, conference, report.TotalGames, report.GamesWithLines, index.Len(), source, s.now().Sub(start))

	return result, nil
}

// loadSeasonData reads a dataset from the season cache, falling back to fetch
// and storing what it fetched. The bool result reports a cache hit.
func loadSeasonData[T any](ctx context.Context, s *TrendsService, key database.CacheKey, force bool,
	fetch func(context.Context, int, string) ([]T, error)) ([]T, bool, error) {

	if !force {
		entry, err := s.seasonCache.Get(ctx, key)
		switch {
		case err == nil:
			var items []T
			if err := json.Unmarshal(entry.Payload, &items); err == nil {
				s.logger.Debugf("Season cache hit for %s (%d items)", key, len(items))
				return items, true, nil
			}
			s.logger.Warnf("Discarding undecodable cache entry %s: %v", key, err)
		case !errors.Is(err, database.ErrCacheMiss):
			s.logger.Warnf("Season cache read failed for %s: %v", key, err)
		}
	}

	items, err := fetch(ctx, key.Season, key.Conference)
	if err != nil {
		return nil, false, err
	}

	payload, err := json.Marshal(items)
	if err != nil {
		s.logger.Warnf("Failed to encode %s for caching: %v", key, err)
		return items, false, nil
	}

	now := s.now().UTC()
	entry := &database.CacheEntry{
		CacheKey:  key,
		Payload:   payload,
		FetchedAt: now,
		ExpiresAt: s.policy.ExpiresAt(key.Season, now),
	}
	if err := s.seasonCache.Put(ctx, entry); err != nil {
		s.logger.Warnf("Season cache write failed for %s: %v", key, err)
	}

	return items, false, nil
}
