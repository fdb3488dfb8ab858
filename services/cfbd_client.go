package services

import (
	"cfb-trends-go/config"
	"cfb-trends-go/logging"
	"cfb-trends-go/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

// CFBDClient fetches games and betting lines from the CollegeFootballData API
type CFBDClient struct {
	httpClient      *http.Client
	baseURL         string
	apiKey          string
	seasonType      string
	limiter         *rate.Limiter
	retryInitial    time.Duration
	retryMaxElapsed time.Duration
	logger          *logging.Logger
}

// NewCFBDClient creates a rate-limited CFBD client
func NewCFBDClient(cfg config.SourceConfig) *CFBDClient {
	rps := float64(cfg.RequestsPerMinute) / 60.0
	return &CFBDClient{
		httpClient:      &http.Client{Timeout: cfg.HTTPTimeout},
		baseURL:         cfg.BaseURL,
		apiKey:          cfg.APIKey,
		seasonType:      cfg.SeasonType,
		limiter:         rate.NewLimiter(rate.Limit(rps), 1),
		retryInitial:    500 * time.Millisecond,
		retryMaxElapsed: cfg.RetryMaxElapsed,
		logger:          logging.WithPrefix("CFBD"),
	}
}

// CFBD API response structures
type cfbdGame struct {
	ID             int    `json:"id"`
	Season         int    `json:"season"`
	Week           int    `json:"week"`
	SeasonType     string `json:"seasonType"`
	StartDate      string `json:"startDate"`
	Completed      bool   `json:"completed"`
	HomeTeam       string `json:"homeTeam"`
	HomeConference string `json:"homeConference"`
	HomePoints     *int   `json:"homePoints"`
	HomeLineScores []int  `json:"homeLineScores"`
	AwayTeam       string `json:"awayTeam"`
	AwayConference string `json:"awayConference"`
	AwayPoints     *int   `json:"awayPoints"`
	AwayLineScores []int  `json:"awayLineScores"`
}

// GetGames fetches the completed games of a season, optionally limited to one conference.
// Games still in progress or missing a score are dropped here.
func (c *CFBDClient) GetGames(ctx context.Context, season int, conference string) ([]models.Game, error) {
	var raw []cfbdGame
	if err := c.getJSON(ctx, "/games", c.seasonParams(season, conference), &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch games for %d: %w", season, err)
	}

	games := make([]models.Game, 0, len(raw))
	for _, g := range raw {
		game := c.convertGame(g)
		if !game.Completed || !game.HasFinalScore() {
			c.logger.Debugf("Skipping unfinished game %d week %d: %s", game.ID, game.Week, game.ScoreString())
			continue
		}
		games = append(games, game)
	}

	c.logger.Infof("Fetched %d games (%d completed) for season %d conference=%q",
		len(raw), len(games), season, conference)
	return games, nil
}

// convertGame converts a CFBD game to our Game model
func (c *CFBDClient) convertGame(g cfbdGame) models.Game {
	game := models.Game{
		ID:             g.ID,
		Season:         g.Season,
		SeasonType:     g.SeasonType,
		Week:           g.Week,
		Completed:      g.Completed,
		HomeTeam:       g.HomeTeam,
		HomeConference: g.HomeConference,
		HomeScore:      g.HomePoints,
		AwayTeam:       g.AwayTeam,
		AwayConference: g.AwayConference,
		AwayScore:      g.AwayPoints,
	}

	if start, err := time.Parse(time.RFC3339, g.StartDate); err == nil {
		game.StartDate = start
	} else if g.StartDate != "" {
		c.logger.Debugf("Failed to parse start date %q for game %d: %v", g.StartDate, g.ID, err)
	}

	// Line scores have one entry per period played
	periods := len(g.HomeLineScores)
	if len(g.AwayLineScores) > periods {
		periods = len(g.AwayLineScores)
	}
	if periods > 0 {
		game.Periods = &periods
	}

	return game
}

// GetLines fetches every provider's betting lines for a season
func (c *CFBDClient) GetLines(ctx context.Context, season int, conference string) ([]models.MatchupLines, error) {
	var lines []models.MatchupLines
	if err := c.getJSON(ctx, "/lines", c.seasonParams(season, conference), &lines); err != nil {
		return nil, fmt.Errorf("failed to fetch lines for %d: %w", season, err)
	}

	c.logger.Infof("Fetched lines for %d matchups for season %d conference=%q", len(lines), season, conference)
	return lines, nil
}

// HealthCheck verifies the API is reachable and the key is accepted
func (c *CFBDClient) HealthCheck(ctx context.Context) error {
	var conferences []json.RawMessage
	return c.getJSON(ctx, "/conferences", nil, &conferences)
}

func (c *CFBDClient) seasonParams(season int, conference string) url.Values {
	params := url.Values{}
	params.Set("year", strconv.Itoa(season))
	if c.seasonType != "" {
		params.Set("seasonType", c.seasonType)
	}
	if conference != "" {
		params.Set("conference", conference)
	}
	return params
}

// getJSON performs a rate-limited GET with exponential backoff. Network errors,
// 429 and 5xx responses are retried; any other non-200 status fails at once.
func (c *CFBDClient) getJSON(ctx context.Context, path string, params url.Values, target interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	attempt := 0
	op := func() error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(fmt.Errorf("rate limit wait: %w", err))
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		c.logger.Debugf("GET %s (attempt %d)", u, attempt)
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("http request %s: %w", path, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			statusErr := fmt.Errorf("%w: %s returned %d: %s", ErrUpstreamStatus, path, resp.StatusCode, truncate(body, 200))
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				c.logger.Warnf("Retryable status %d from %s", resp.StatusCode, path)
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}

		if err := json.Unmarshal(body, target); err != nil {
			return backoff.Permanent(fmt.Errorf("decode %s response: %w", path, err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInitial
	bo.MaxElapsedTime = c.retryMaxElapsed

	err := backoff.Retry(op, backoff.WithContext(bo, ctx))
	if err != nil {
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			err = permanent.Err
		}
		c.logger.Errorf("GET %s failed after %d attempt(s): %v", path, attempt, err)
	}
	return err
}

// truncate returns a truncated string representation for error messages
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
