package services

import (
	"cfb-trends-go/models"
	"strconv"
	"strings"
)

// LineIndex maps a matchup (home team, away team, week) to the single quote
// chosen for it. The zero value is an empty index.
type LineIndex struct {
	quotes map[string]models.LineQuote
}

// MatchupKey joins the three matchup fields into a lookup key. Team names are
// compared exactly; normalizing them is the caller's job.
func MatchupKey(homeTeam, awayTeam string, week int) string {
	var b strings.Builder
	b.Grow(len(homeTeam) + len(awayTeam) + 6)
	b.WriteString(homeTeam)
	b.WriteByte('|')
	b.WriteString(awayTeam)
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(week))
	return b.String()
}

// SelectQuote picks one quote from a matchup's provider list: the preferred
// provider's quote if there is one, otherwise the first quote in the list.
func SelectQuote(lines []models.LineQuote, preferredProvider string) (models.LineQuote, bool) {
	if len(lines) == 0 {
		return models.LineQuote{}, false
	}
	if preferredProvider != "" {
		for _, line := range lines {
			if line.Provider == preferredProvider {
				return line, true
			}
		}
	}
	return lines[0], true
}

// BuildLineIndex selects one quote per matchup record with SelectQuote and
// indexes it by matchup key. A key is written at most once: when several
// records share a key, the first record with any quote wins even if a later
// record carries the preferred provider.
func BuildLineIndex(matchups []models.MatchupLines, preferredProvider string) LineIndex {
	idx := LineIndex{quotes: make(map[string]models.LineQuote, len(matchups))}

	for _, m := range matchups {
		key := MatchupKey(m.HomeTeam, m.AwayTeam, m.Week)
		if _, exists := idx.quotes[key]; exists {
			continue
		}
		if quote, ok := SelectQuote(m.Lines, preferredProvider); ok {
			idx.quotes[key] = quote
		}
	}

	return idx
}

// Lookup returns the quote indexed for the game's matchup
func (idx LineIndex) Lookup(game *models.Game) (models.LineQuote, bool) {
	quote, ok := idx.quotes[MatchupKey(game.HomeTeam, game.AwayTeam, game.Week)]
	return quote, ok
}

// Len returns the number of indexed matchups
func (idx LineIndex) Len() int {
	return len(idx.quotes)
}
