package services

import (
	"cfb-trends-go/models"
	"math"
)

const (
	// BlowoutMargin is the final margin at which a game counts as a blowout
	BlowoutMargin = 21

	// TotalsPushTolerance is how close a final total must be to the posted
	// over/under to grade as a push. Totals are usually posted on the half point.
	TotalsPushTolerance = 0.5
)

// Spread bucket upper bounds (inclusive)
const (
	SmallSpreadMax  = 3.0
	MediumSpreadMax = 7.0
	LargeSpreadMax  = 14.0
)

// side identifies which team a line favors
type side int

const (
	sideNone side = iota // pick 'em
	sideHome
	sideAway
)

// outcomeRecorder is implemented by the straight-up and ATS record types
type outcomeRecorder interface {
	Record(models.Outcome)
}

// AggregateTrends tallies every completed game into a finalized trends report.
//
// Games without both scores are skipped without error, so a low TotalGames can
// mean bad records as well as few games. Every counted game lands in the
// home/away straight-up records; games whose matchup has a quote with a usable
// spread also feed the favorite/dog, ATS, totals, spread bucket and blowout
// sections. An ATS push requires the favorite's margin to equal the spread
// exactly.
//
// The report is built in a local accumulator and finalized in a separate pass;
// the inputs are not modified.
func AggregateTrends(games []models.Game, index LineIndex) models.TrendsReport {
	var report models.TrendsReport

	for i := range games {
		tallyGame(&report, &games[i], index)
	}

	return report.Finalize()
}

// tallyGame adds a single game to the report
func tallyGame(report *models.TrendsReport, game *models.Game, index LineIndex) {
	if !game.HasFinalScore() {
		return
	}
	report.TotalGames++

	margin := game.Margin()
	homeSU := models.OutcomeFromMargin(margin)
	report.StraightUp.HomeTeams.Record(homeSU)
	report.StraightUp.AwayTeams.Record(homeSU.Opposite())

	quote, ok := index.Lookup(game)
	if !ok || !quote.HasSpread() {
		return
	}
	report.GamesWithLines++

	spread := *quote.Spread
	favorite := favoredSide(spread)

	// Straight up, favorites vs dogs
	if favorite != sideNone {
		su := &report.StraightUp
		recordFavoriteAxes(&su.Favorites, &su.Dogs, &su.HomeFavorites, &su.AwayFavorites,
			&su.HomeDogs, &su.AwayDogs, favorite, favoriteResult(favorite, homeSU))
	}

	// Against the spread
	homeATS := homeATSResult(margin, spread)
	ats := &report.ATS
	ats.HomeTeams.Record(homeATS)
	ats.AwayTeams.Record(homeATS.Opposite())
	if favorite != sideNone {
		recordFavoriteAxes(&ats.Favorites, &ats.Dogs, &ats.HomeFavorites, &ats.AwayFavorites,
			&ats.HomeDogs, &ats.AwayDogs, favorite, favoriteResult(favorite, homeATS))
	}

	// Totals
	var totals models.TotalsResult
	hasTotal := quote.HasTotal()
	if hasTotal {
		totals = gradeTotal(game.TotalPoints(), *quote.OverUnder)
		report.OverUnder.AllGames.Record(totals)
		if game.IsOvertime() {
			report.OverUnder.OvertimeGames.Record(totals)
		} else {
			report.OverUnder.NonOvertimeGames.Record(totals)
		}
	}

	// Spread size
	if favorite != sideNone {
		bucket := spreadBucket(&report.SpreadBuckets, math.Abs(spread))
		bucket.Games++
		switch favoriteResult(favorite, homeSU) {
		case models.OutcomeWin:
			bucket.FavWins++
		case models.OutcomeLoss:
			bucket.DogWins++
		}
	}

	// Blowouts
	if absInt(margin) >= BlowoutMargin {
		blowouts := &report.Situational.Blowouts
		blowouts.Games++
		if hasTotal {
			blowouts.Record(totals)
		}
	}
}

// favoredSide reads the favorite from a home-relative spread
func favoredSide(spread float64) side {
	if spread < 0 {
		return sideHome
	} else if spread > 0 {
		return sideAway
	}
	return sideNone
}

// favoriteResult converts a home-perspective result to the favorite's perspective
func favoriteResult(favorite side, home models.Outcome) models.Outcome {
	if favorite == sideAway {
		return home.Opposite()
	}
	return home
}

// homeATSResult grades the home team against the spread. The favorite covers
// when it wins by more than the spread and pushes when it wins by exactly the
// spread; a pick 'em pushes only on a tie.
func homeATSResult(margin int, spread float64) models.Outcome {
	required := math.Abs(spread)

	switch favoredSide(spread) {
	case sideHome:
		return gradeCover(float64(margin), required)
	case sideAway:
		return gradeCover(float64(-margin), required).Opposite()
	}
	return models.OutcomeFromMargin(margin)
}

// gradeCover grades a favorite's margin against the points it had to win by
func gradeCover(favoriteMargin, required float64) models.Outcome {
	if favoriteMargin > required {
		return models.OutcomeWin
	} else if favoriteMargin == required {
		return models.OutcomeTie
	}
	return models.OutcomeLoss
}

// gradeTotal compares a final total to the posted over/under
func gradeTotal(total int, line float64) models.TotalsResult {
	diff := float64(total) - line
	if math.Abs(diff) < TotalsPushTolerance {
		return models.TotalsPush
	}
	if diff > 0 {
		return models.TotalsOver
	}
	return models.TotalsUnder
}

// recordFavoriteAxes tallies the favorite's result on the favorite axes and the
// opposite result on the underdog axes
func recordFavoriteAxes(favorites, dogs, homeFavorites, awayFavorites, homeDogs, awayDogs outcomeRecorder,
	favorite side, result models.Outcome) {
	favorites.Record(result)
	dogs.Record(result.Opposite())

	if favorite == sideHome {
		homeFavorites.Record(result)
		awayDogs.Record(result.Opposite())
	} else {
		awayFavorites.Record(result)
		homeDogs.Record(result.Opposite())
	}
}

// spreadBucket returns the bucket for an absolute spread
func spreadBucket(buckets *models.SpreadBuckets, absSpread float64) *models.SpreadBucket {
	switch {
	case absSpread <= SmallSpreadMax:
		return &buckets.Small
	case absSpread <= MediumSpreadMax:
		return &buckets.Medium
	case absSpread <= LargeSpreadMax:
		return &buckets.Large
	default:
		return &buckets.Huge
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
