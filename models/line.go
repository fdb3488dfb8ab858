package models

import "math"

// DefaultPreferredProvider is the quote source used when a matchup has one
const DefaultPreferredProvider = "consensus"

// LineQuote represents one sportsbook's betting line for a matchup
type LineQuote struct {
	Provider        string   `json:"provider" bson:"provider"`
	Spread          *float64 `json:"spread" bson:"spread"` // Home-relative: negative = home team favored
	FormattedSpread string   `json:"formattedSpread,omitempty" bson:"formattedSpread,omitempty"`
	SpreadOpen      *float64 `json:"spreadOpen,omitempty" bson:"spreadOpen,omitempty"`
	OverUnder       *float64 `json:"overUnder" bson:"overUnder"`
	OverUnderOpen   *float64 `json:"overUnderOpen,omitempty" bson:"overUnderOpen,omitempty"`
	HomeMoneyline   *int     `json:"homeMoneyline,omitempty" bson:"homeMoneyline,omitempty"`
	AwayMoneyline   *int     `json:"awayMoneyline,omitempty" bson:"awayMoneyline,omitempty"`
}

// MatchupLines groups every provider's quote for one game
type MatchupLines struct {
	ID             int         `json:"id" bson:"id"`
	Season         int         `json:"season" bson:"season"`
	SeasonType     string      `json:"seasonType,omitempty" bson:"seasonType,omitempty"`
	Week           int         `json:"week" bson:"week"`
	HomeTeam       string      `json:"homeTeam" bson:"homeTeam"`
	HomeConference string      `json:"homeConference,omitempty" bson:"homeConference,omitempty"`
	HomeScore      *int        `json:"homeScore,omitempty" bson:"homeScore,omitempty"`
	AwayTeam       string      `json:"awayTeam" bson:"awayTeam"`
	AwayConference string      `json:"awayConference,omitempty" bson:"awayConference,omitempty"`
	AwayScore      *int        `json:"awayScore,omitempty" bson:"awayScore,omitempty"`
	Lines          []LineQuote `json:"lines" bson:"lines"`
}

// HasSpread returns true if the spread is present and a finite number
func (q *LineQuote) HasSpread() bool {
	return q.Spread != nil && !math.IsNaN(*q.Spread) && !math.IsInf(*q.Spread, 0)
}

// HasTotal returns true if an over/under total is posted
func (q *LineQuote) HasTotal() bool {
	return q.OverUnder != nil && !math.IsNaN(*q.OverUnder) && !math.IsInf(*q.OverUnder, 0) && *q.OverUnder > 0
}

// Float64Ptr is a small helper for building quotes with optional numbers
func Float64Ptr(v float64) *float64 {
	return &v
}
