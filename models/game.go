package models

import (
	"fmt"
	"time"
)

// RegulationPeriods is the number of periods in a game without overtime
const RegulationPeriods = 4

// Game represents a college football game with its final score
type Game struct {
	ID             int       `json:"id" bson:"id"`
	Season         int       `json:"season" bson:"season"`
	SeasonType     string    `json:"seasonType,omitempty" bson:"seasonType,omitempty"`
	Week           int       `json:"week" bson:"week"`
	StartDate      time.Time `json:"startDate" bson:"startDate"`
	Completed      bool      `json:"completed" bson:"completed"`
	HomeTeam       string    `json:"homeTeam" bson:"homeTeam"`
	HomeConference string    `json:"homeConference,omitempty" bson:"homeConference,omitempty"`
	HomeScore      *int      `json:"homeScore" bson:"homeScore"`
	AwayTeam       string    `json:"awayTeam" bson:"awayTeam"`
	AwayConference string    `json:"awayConference,omitempty" bson:"awayConference,omitempty"`
	AwayScore      *int      `json:"awayScore" bson:"awayScore"`
	Periods        *int      `json:"periods,omitempty" bson:"periods,omitempty"` // nil when line scores are unavailable
}

// HasFinalScore returns true if both scores are present and non-negative
func (g *Game) HasFinalScore() bool {
	return g.HomeScore != nil && g.AwayScore != nil && *g.HomeScore >= 0 && *g.AwayScore >= 0
}

// Margin returns home score minus away score. Callers must check HasFinalScore first.
func (g *Game) Margin() int {
	return *g.HomeScore - *g.AwayScore
}

// TotalPoints returns the combined score. Callers must check HasFinalScore first.
func (g *Game) TotalPoints() int {
	return *g.HomeScore + *g.AwayScore
}

// IsOvertime returns true if the game went past regulation
func (g *Game) IsOvertime() bool {
	return g.Periods != nil && *g.Periods > RegulationPeriods
}

// ScoreString returns a formatted "away @ home" score line
func (g *Game) ScoreString() string {
	if !g.HasFinalScore() {
		return fmt.Sprintf("%s @ %s", g.AwayTeam, g.HomeTeam)
	}
	return fmt.Sprintf("%s %d @ %s %d", g.AwayTeam, *g.AwayScore, g.HomeTeam, *g.HomeScore)
}

// IntPtr is a small helper for building games with optional scores
func IntPtr(v int) *int {
	return &v
}
