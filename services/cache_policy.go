package services

import (
	"cfb-trends-go/config"
	"time"
)

// CachePolicy decides how long fetched season data stays fresh, based on
// where the calendar sits relative to the season's schedule
type CachePolicy struct {
	FinishedSeasonTTL time.Duration
	OffSeasonTTL      time.Duration
	GameDayTTL        time.Duration
	PostGameDayTTL    time.Duration
	WeekdayTTL        time.Duration
}

// NewCachePolicy builds a policy from the cache configuration
func NewCachePolicy(cfg config.CacheConfig) *CachePolicy {
	return &CachePolicy{
		FinishedSeasonTTL: cfg.FinishedSeasonTTL,
		OffSeasonTTL:      cfg.OffSeasonTTL,
		GameDayTTL:        cfg.GameDayTTL,
		PostGameDayTTL:    cfg.PostGameDayTTL,
		WeekdayTTL:        cfg.WeekdayTTL,
	}
}

// SeasonStart is the earliest date regular season games are played (week 0)
func SeasonStart(season int) time.Time {
	return time.Date(season, time.August, 15, 0, 0, 0, 0, time.UTC)
}

// SeasonEnd is when a season's results stop changing (after the bowls and playoff)
func SeasonEnd(season int) time.Time {
	return time.Date(season+1, time.February, 1, 0, 0, 0, 0, time.UTC)
}

// TTLFor returns how long data for the season may be cached as of now.
// Finished seasons are effectively static; during the season data changes on
// Saturdays and gets stat corrections on Sundays.
func (p *CachePolicy) TTLFor(season int, now time.Time) time.Duration {
	now = now.UTC()

	switch {
	case !now.Before(SeasonEnd(season)):
		return p.FinishedSeasonTTL
	case now.Before(SeasonStart(season)):
		return p.OffSeasonTTL
	}

	switch now.Weekday() {
	case time.Saturday:
		return p.GameDayTTL
	case time.Sunday:
		return p.PostGameDayTTL
	default:
		return p.WeekdayTTL
	}
}

// ExpiresAt returns when data fetched now for the season goes stale
func (p *CachePolicy) ExpiresAt(season int, now time.Time) time.Time {
	return now.Add(p.TTLFor(season, now))
}
