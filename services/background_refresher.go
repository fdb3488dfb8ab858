package services

import (
	"cfb-trends-go/logging"
	"cfb-trends-go/models"
	"context"
	"sync"
	"time"
)

// SeasonRefresher rebuilds a season's report from upstream
type SeasonRefresher interface {
	Refresh(ctx context.Context, season int, conference string) (*models.TrendsResult, error)
}

// BackgroundRefresher periodically refreshes the current season so the first
// request after new games are played does not pay for the upstream fetch
type BackgroundRefresher struct {
	refresher   SeasonRefresher
	season      int
	conferences []string
	interval    time.Duration
	logger      *logging.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewBackgroundRefresher creates a refresher for the season. An empty conference
// list refreshes the whole season.
func NewBackgroundRefresher(refresher SeasonRefresher, season int, conferences []string, interval time.Duration) *BackgroundRefresher {
	if len(conferences) == 0 {
		conferences = []string{""}
	}
	return &BackgroundRefresher{
		refresher:   refresher,
		season:      season,
		conferences: conferences,
		interval:    interval,
		logger:      logging.WithPrefix("BackgroundRefresher"),
	}
}

// Start begins the background refresh loop
func (br *BackgroundRefresher) Start(parent context.Context) {
	br.mu.Lock()
	defer br.mu.Unlock()

	if br.running {
		br.logger.Warn("Already running")
		return
	}

	ctx, cancel := context.WithCancel(parent)
	br.cancel = cancel
	br.done = make(chan struct{})
	br.running = true

	br.logger.Infof("Refreshing season %d every %s for %d conference set(s)", br.season, br.interval, len(br.conferences))
	go br.loop(ctx, br.done)
}

// Stop halts the loop and waits for an in-flight refresh to finish
func (br *BackgroundRefresher) Stop() {
	br.mu.Lock()
	if !br.running {
		br.mu.Unlock()
		return
	}
	br.running = false
	br.cancel()
	done := br.done
	br.mu.Unlock()

	<-done
	br.logger.Info("Stopped")
}

// IsRunning reports whether the loop is active
func (br *BackgroundRefresher) IsRunning() bool {
	br.mu.Lock()
	defer br.mu.Unlock()
	return br.running
}

func (br *BackgroundRefresher) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(br.interval)
	defer ticker.Stop()

	// Do an initial refresh
	br.RefreshOnce(ctx)

	for {
		select {
		case <-ticker.C:
			br.RefreshOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// RefreshOnce refreshes every configured conference once and returns how many failed
func (br *BackgroundRefresher) RefreshOnce(ctx context.Context) int {
	start := time.Now()
	failed := 0

	for _, conference := range br.conferences {
		if ctx.Err() != nil {
			return failed
		}
		result, err := br.refresher.Refresh(ctx, br.season, conference)
		if err != nil {
			failed++
			br.logger.Errorf("Refresh failed for season %d conference=%q: %v", br.season, conference, err)
			continue
		}
		br.logger.Debugf("Refreshed season %d conference=%q (%d games)", br.season, conference, result.Report.TotalGames)
	}

	br.logger.Infof("Refresh pass finished in %s (%d/%d failed)", time.Since(start), failed, len(br.conferences))
	return failed
}
