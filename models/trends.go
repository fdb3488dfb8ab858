package models

import "math"

// Outcome is the straight-up result of a game from one side's perspective
type Outcome int

const (
	OutcomeLoss Outcome = iota
	OutcomeWin
	OutcomeTie
)

// Opposite returns the result seen from the other side
func (o Outcome) Opposite() Outcome {
	switch o {
	case OutcomeWin:
		return OutcomeLoss
	case OutcomeLoss:
		return OutcomeWin
	}
	return OutcomeTie
}

// OutcomeFromMargin returns the result for a side that finished margin points ahead
func OutcomeFromMargin(margin int) Outcome {
	if margin > 0 {
		return OutcomeWin
	} else if margin < 0 {
		return OutcomeLoss
	}
	return OutcomeTie
}

// StraightUpRecord is a win/loss/tie record for outright results
type StraightUpRecord struct {
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	Ties       int `json:"ties"`
	Percentage int `json:"percentage"`
}

// Record tallies one outright result
func (r *StraightUpRecord) Record(o Outcome) {
	switch o {
	case OutcomeWin:
		r.Wins++
	case OutcomeLoss:
		r.Losses++
	case OutcomeTie:
		r.Ties++
	}
}

// Games returns the number of games in the record
func (r StraightUpRecord) Games() int {
	return r.Wins + r.Losses + r.Ties
}

func (r StraightUpRecord) finalize() StraightUpRecord {
	r.Percentage = Percent(r.Wins, r.Games())
	return r
}

// ATSRecord is a cover/fail/push record against the spread
type ATSRecord struct {
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	Pushes     int `json:"pushes"`
	Percentage int `json:"percentage"`
}

// Record tallies one ATS result; OutcomeTie counts as a push
func (r *ATSRecord) Record(o Outcome) {
	switch o {
	case OutcomeWin:
		r.Wins++
	case OutcomeLoss:
		r.Losses++
	case OutcomeTie:
		r.Pushes++
	}
}

// Games returns the number of games in the record
func (r ATSRecord) Games() int {
	return r.Wins + r.Losses + r.Pushes
}

func (r ATSRecord) finalize() ATSRecord {
	r.Percentage = Percent(r.Wins, r.Games())
	return r
}

// TotalsRecord is an over/under record
type TotalsRecord struct {
	Overs           int `json:"overs"`
	Unders          int `json:"unders"`
	Pushes          int `json:"pushes"`
	OverPercentage  int `json:"overPercentage"`
	UnderPercentage int `json:"underPercentage"`
}

// TotalsResult is the outcome of comparing a final total to the posted line
type TotalsResult int

const (
	TotalsPush TotalsResult = iota
	TotalsOver
	TotalsUnder
)

// Record tallies one totals result
func (r *TotalsRecord) Record(res TotalsResult) {
	switch res {
	case TotalsOver:
		r.Overs++
	case TotalsUnder:
		r.Unders++
	case TotalsPush:
		r.Pushes++
	}
}

// Games returns the number of games in the record
func (r TotalsRecord) Games() int {
	return r.Overs + r.Unders + r.Pushes
}

func (r TotalsRecord) finalize() TotalsRecord {
	r.OverPercentage = Percent(r.Overs, r.Games())
	r.UnderPercentage = Percent(r.Unders, r.Games())
	return r
}

// SpreadBucket counts outright favorite and underdog wins for a range of spreads
type SpreadBucket struct {
	Games         int `json:"games"`
	FavWins       int `json:"favWins"`
	DogWins       int `json:"dogWins"`
	FavPercentage int `json:"favPercentage"`
	DogPercentage int `json:"dogPercentage"`
}

func (b SpreadBucket) finalize() SpreadBucket {
	decided := b.FavWins + b.DogWins
	b.FavPercentage = Percent(b.FavWins, decided)
	b.DogPercentage = Percent(b.DogWins, decided)
	return b
}

// SituationalTotals counts games in a situation plus their totals results
type SituationalTotals struct {
	Games int `json:"games"`
	TotalsRecord
}

// SideRecords holds one record type split along every home/away and favorite/dog axis
type SideRecords[R any] struct {
	HomeTeams     R `json:"homeTeams"`
	AwayTeams     R `json:"awayTeams"`
	Favorites     R `json:"favorites"`
	Dogs          R `json:"dogs"`
	HomeFavorites R `json:"homeFavorites"`
	AwayFavorites R `json:"awayFavorites"`
	HomeDogs      R `json:"homeDogs"`
	AwayDogs      R `json:"awayDogs"`
}

// OverUnderTrends splits totals results by overtime
type OverUnderTrends struct {
	AllGames         TotalsRecord `json:"allGames"`
	OvertimeGames    TotalsRecord `json:"overtimeGames"`
	NonOvertimeGames TotalsRecord `json:"nonOvertimeGames"`
}

// SpreadBuckets groups games by the size of the spread
type SpreadBuckets struct {
	Small  SpreadBucket `json:"small"`  // 3 points or fewer
	Medium SpreadBucket `json:"medium"` // 7 points or fewer
	Large  SpreadBucket `json:"large"`  // 14 points or fewer
	Huge   SpreadBucket `json:"huge"`   // more than 14 points
}

// SituationalTrends holds situation-specific counters
type SituationalTrends struct {
	Blowouts SituationalTotals `json:"blowouts"`
}

// TrendsReport is the aggregate betting trends for a set of games
type TrendsReport struct {
	TotalGames     int                           `json:"totalGames"`
	GamesWithLines int                           `json:"gamesWithLines"`
	StraightUp     SideRecords[StraightUpRecord] `json:"straightUp"`
	ATS            SideRecords[ATSRecord]        `json:"ats"`
	OverUnder      OverUnderTrends               `json:"overUnder"`
	SpreadBuckets  SpreadBuckets                 `json:"spreadBuckets"`
	Situational    SituationalTrends             `json:"situational"`
}

// Finalize returns a copy of the report with every percentage computed from its counts
func (t TrendsReport) Finalize() TrendsReport {
	su := &t.StraightUp
	for _, r := range []*StraightUpRecord{&su.HomeTeams, &su.AwayTeams, &su.Favorites, &su.Dogs,
		&su.HomeFavorites, &su.AwayFavorites, &su.HomeDogs, &su.AwayDogs} {
		*r = r.finalize()
	}

	ats := &t.ATS
	for _, r := range []*ATSRecord{&ats.HomeTeams, &ats.AwayTeams, &ats.Favorites, &ats.Dogs,
		&ats.HomeFavorites, &ats.AwayFavorites, &ats.HomeDogs, &ats.AwayDogs} {
		*r = r.finalize()
	}

	ou := &t.OverUnder
	ou.AllGames = ou.AllGames.finalize()
	ou.OvertimeGames = ou.OvertimeGames.finalize()
	ou.NonOvertimeGames = ou.NonOvertimeGames.finalize()

	b := &t.SpreadBuckets
	b.Small = b.Small.finalize()
	b.Medium = b.Medium.finalize()
	b.Large = b.Large.finalize()
	b.Huge = b.Huge.finalize()

	t.Situational.Blowouts.TotalsRecord = t.Situational.Blowouts.TotalsRecord.finalize()
	return t
}

// Percent returns part/whole as a whole-number percentage, or 0 when whole is 0
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
