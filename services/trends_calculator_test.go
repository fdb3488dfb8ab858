package services

import (
	"cfb-trends-go/models"
	"math/rand"
	"testing"
)

// game builds a completed game between two fixed teams in the given week
func game(week, home, away int) models.Game {
	return models.Game{
		HomeTeam:  "Home",
		AwayTeam:  "Away",
		Week:      week,
		HomeScore: models.IntPtr(home),
		AwayScore: models.IntPtr(away),
		Periods:   models.IntPtr(4),
	}
}

// indexFor builds a line index with one consensus quote per week for Home vs Away
func indexFor(quotes map[int]models.LineQuote) LineIndex {
	var matchups []models.MatchupLines
	for week, q := range quotes {
		q.Provider = "consensus"
		matchups = append(matchups, models.MatchupLines{
			HomeTeam: "Home", AwayTeam: "Away", Week: week, Lines: []models.LineQuote{q},
		})
	}
	return BuildLineIndex(matchups, "consensus")
}

func line(spread float64, total ...float64) models.LineQuote {
	q := models.LineQuote{Spread: models.Float64Ptr(spread)}
	if len(total) > 0 {
		q.OverUnder = models.Float64Ptr(total[0])
	}
	return q
}

func TestAggregateTrends_HomeFavoriteExactMarginPushes(t *testing.T) {
	report := AggregateTrends([]models.Game{game(1, 28, 21)}, indexFor(map[int]models.LineQuote{1: line(-7)}))

	if got := report.StraightUp.HomeTeams; got.Wins != 1 || got.Losses != 0 {
		t.Errorf("straightUp.homeTeams = %+v, want 1 win", got)
	}
	if got := report.StraightUp.HomeFavorites; got.Wins != 1 {
		t.Errorf("straightUp.homeFavorites = %+v, want 1 win", got)
	}
	if got := report.StraightUp.AwayDogs; got.Losses != 1 {
		t.Errorf("straightUp.awayDogs = %+v, want 1 loss", got)
	}

	ats := report.ATS
	for name, r := range map[string]models.ATSRecord{
		"homeTeams": ats.HomeTeams, "awayTeams": ats.AwayTeams, "favorites": ats.Favorites,
		"dogs": ats.Dogs, "homeFavorites": ats.HomeFavorites, "awayDogs": ats.AwayDogs,
	} {
		if r.Pushes != 1 || r.Wins != 0 || r.Losses != 0 {
			t.Errorf("ats.%s = %+v, want a single push", name, r)
		}
	}
	if ats.AwayFavorites.Games() != 0 || ats.HomeDogs.Games() != 0 {
		t.Errorf("away favorite / home dog ATS axes should be untouched, got %+v %+v", ats.AwayFavorites, ats.HomeDogs)
	}

	if got := report.SpreadBuckets.Medium; got.Games != 1 || got.FavWins != 1 {
		t.Errorf("spreadBuckets.medium = %+v, want 1 favorite win", got)
	}
}

func TestAggregateTrends_UnderdogCoversAndOver(t *testing.T) {
	report := AggregateTrends([]models.Game{game(2, 24, 30)}, indexFor(map[int]models.LineQuote{2: line(-3, 50)}))

	ats := report.ATS
	if ats.AwayTeams.Wins != 1 || ats.HomeTeams.Losses != 1 {
		t.Errorf("ats home/away = %+v / %+v, want away cover", ats.HomeTeams, ats.AwayTeams)
	}
	if ats.HomeFavorites.Losses != 1 || ats.AwayDogs.Wins != 1 {
		t.Errorf("ats homeFavorites/awayDogs = %+v / %+v", ats.HomeFavorites, ats.AwayDogs)
	}
	if ats.Favorites.Losses != 1 || ats.Dogs.Wins != 1 {
		t.Errorf("ats favorites/dogs = %+v / %+v", ats.Favorites, ats.Dogs)
	}

	if got := report.OverUnder.AllGames; got.Overs != 1 || got.OverPercentage != 100 || got.UnderPercentage != 0 {
		t.Errorf("overUnder.allGames = %+v, want one over at 100%%", got)
	}
	if got := report.OverUnder.NonOvertimeGames; got.Overs != 1 {
		t.Errorf("overUnder.nonOvertimeGames = %+v, want one over", got)
	}
	if got := report.SpreadBuckets.Small; got.DogWins != 1 || got.DogPercentage != 100 {
		t.Errorf("spreadBuckets.small = %+v, want one dog win", got)
	}
}

func TestAggregateTrends_PickEmTie(t *testing.T) {
	report := AggregateTrends([]models.Game{game(3, 17, 17)}, indexFor(map[int]models.LineQuote{3: line(0)}))

	if report.StraightUp.HomeTeams.Ties != 1 || report.StraightUp.AwayTeams.Ties != 1 {
		t.Errorf("straight-up ties = %+v / %+v", report.StraightUp.HomeTeams, report.StraightUp.AwayTeams)
	}
	if report.ATS.HomeTeams.Pushes != 1 || report.ATS.AwayTeams.Pushes != 1 {
		t.Errorf("ats pushes = %+v / %+v", report.ATS.HomeTeams, report.ATS.AwayTeams)
	}
	assertNoFavoriteAxes(t, report)
}

func TestAggregateTrends_PickEmWinnerCovers(t *testing.T) {
	report := AggregateTrends([]models.Game{game(3, 20, 23)}, indexFor(map[int]models.LineQuote{3: line(0)}))

	if report.ATS.AwayTeams.Wins != 1 || report.ATS.HomeTeams.Losses != 1 {
		t.Errorf("ats = %+v / %+v, want away cover", report.ATS.HomeTeams, report.ATS.AwayTeams)
	}
	assertNoFavoriteAxes(t, report)
}

func TestAggregateTrends_BlowoutOver(t *testing.T) {
	report := AggregateTrends([]models.Game{game(4, 45, 10)}, indexFor(map[int]models.LineQuote{4: line(-24.5, 52)}))

	blowouts := report.Situational.Blowouts
	if blowouts.Games != 1 || blowouts.Overs != 1 || blowouts.OverPercentage != 100 {
		t.Errorf("situational.blowouts = %+v, want one game going over", blowouts)
	}
	if got := report.SpreadBuckets.Huge; got.FavWins != 1 {
		t.Errorf("spreadBuckets.huge = %+v, want one favorite win", got)
	}
	if report.ATS.HomeFavorites.Wins != 1 {
		t.Errorf("ats.homeFavorites = %+v, want a cover", report.ATS.HomeFavorites)
	}
}

func TestAggregateTrends_BlowoutTotals(t *testing.T) {
	tests := []struct {
		name       string
		quote      models.LineQuote
		wantPushes int
		wantOvers  int
		wantUnders int
	}{
		{"landing on the total pushes", line(-24.5, 55), 1, 0, 0},
		{"under the total", line(-24.5, 61.5), 0, 0, 1},
		{"no total posted", line(-24.5), 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 45-10 is a 35 point margin and 55 total points
			report := AggregateTrends([]models.Game{game(4, 45, 10)}, indexFor(map[int]models.LineQuote{4: tt.quote}))

			blowouts := report.Situational.Blowouts
			if blowouts.Games != 1 {
				t.Fatalf("blowouts.games = %d, want 1", blowouts.Games)
			}
			if blowouts.Pushes != tt.wantPushes || blowouts.Overs != tt.wantOvers || blowouts.Unders != tt.wantUnders {
				t.Errorf("situational.blowouts = %+v, want %d-%d-%d", blowouts, tt.wantOvers, tt.wantUnders, tt.wantPushes)
			}
			if blowouts.Pushes == 1 && (blowouts.OverPercentage != 0 || blowouts.UnderPercentage != 0) {
				t.Errorf("a lone push should leave both percentages at 0, got %+v", blowouts)
			}
			if report.OverUnder.AllGames.Pushes != tt.wantPushes {
				t.Errorf("overUnder.allGames.pushes = %d, want %d", report.OverUnder.AllGames.Pushes, tt.wantPushes)
			}
		})
	}
}

func TestAggregateTrends_AwayFavorite(t *testing.T) {
	// Away favored by 10, wins by 7: favorite wins outright but fails to cover
	report := AggregateTrends([]models.Game{game(5, 14, 21)}, indexFor(map[int]models.LineQuote{5: line(10)}))

	su := report.StraightUp
	if su.AwayFavorites.Wins != 1 || su.HomeDogs.Losses != 1 || su.Favorites.Wins != 1 {
		t.Errorf("straight-up away favorite = %+v, home dog = %+v", su.AwayFavorites, su.HomeDogs)
	}
	ats := report.ATS
	if ats.AwayFavorites.Losses != 1 || ats.HomeDogs.Wins != 1 || ats.HomeTeams.Wins != 1 {
		t.Errorf("ats away favorite = %+v, home dog = %+v, home = %+v", ats.AwayFavorites, ats.HomeDogs, ats.HomeTeams)
	}
	if got := report.SpreadBuckets.Large; got.Games != 1 || got.FavWins != 1 {
		t.Errorf("spreadBuckets.large = %+v", got)
	}
}

func TestAggregateTrends_FavoriteTieCountsAllFourTies(t *testing.T) {
	report := AggregateTrends([]models.Game{game(6, 20, 20)}, indexFor(map[int]models.LineQuote{6: line(-2.5)}))

	su := report.StraightUp
	for name, r := range map[string]models.StraightUpRecord{
		"favorites": su.Favorites, "dogs": su.Dogs, "homeFavorites": su.HomeFavorites, "awayDogs": su.AwayDogs,
	} {
		if r.Ties != 1 {
			t.Errorf("straightUp.%s = %+v, want one tie", name, r)
		}
	}
	if b := report.SpreadBuckets.Small; b.Games != 1 || b.FavWins != 0 || b.DogWins != 0 {
		t.Errorf("ties should count as a bucket game but neither win, got %+v", b)
	}
	// Home favored by 2.5 and tied: the dog covers
	if report.ATS.AwayDogs.Wins != 1 {
		t.Errorf("ats.awayDogs = %+v, want a cover", report.ATS.AwayDogs)
	}
}

func TestAggregateTrends_GamesWithoutLinesStillCountStraightUp(t *testing.T) {
	games := []models.Game{game(1, 31, 3), game(2, 10, 13), game(3, 7, 0)}
	report := AggregateTrends(games, indexFor(map[int]models.LineQuote{3: line(-6.5)}))

	if report.TotalGames != 3 || report.GamesWithLines != 1 {
		t.Errorf("totalGames=%d gamesWithLines=%d, want 3 and 1", report.TotalGames, report.GamesWithLines)
	}
	if got := report.StraightUp.HomeTeams; got.Wins != 2 || got.Losses != 1 || got.Percentage != 67 {
		t.Errorf("straightUp.homeTeams = %+v, want 2-1 at 67%%", got)
	}
	if report.ATS.HomeTeams.Games() != 1 {
		t.Errorf("only the game with a line should be graded ATS, got %+v", report.ATS.HomeTeams)
	}
	// 31-3 has no line, so it is not counted as a blowout
	if report.Situational.Blowouts.Games != 0 {
		t.Errorf("situational.blowouts = %+v, want none", report.Situational.Blowouts)
	}
}

func TestAggregateTrends_SkipsInvalidGames(t *testing.T) {
	missingHome := game(1, 0, 0)
	missingHome.HomeScore = nil
	missingAway := game(2, 0, 0)
	missingAway.AwayScore = nil
	negative := game(3, -1, 10)

	report := AggregateTrends([]models.Game{missingHome, missingAway, negative, game(4, 3, 0)}, indexFor(map[int]models.LineQuote{
		1: line(-3), 2: line(-3), 3: line(-3), 4: line(-3),
	}))

	if report.TotalGames != 1 || report.GamesWithLines != 1 {
		t.Errorf("totalGames=%d gamesWithLines=%d, want 1 and 1", report.TotalGames, report.GamesWithLines)
	}
}

func TestAggregateTrends_UnusableSpreadOrTotal(t *testing.T) {
	noSpread := models.LineQuote{OverUnder: models.Float64Ptr(45)}
	zeroTotal := line(-3, 0)

	report := AggregateTrends([]models.Game{game(1, 30, 20), game(2, 30, 20)}, indexFor(map[int]models.LineQuote{
		1: noSpread, 2: zeroTotal,
	}))

	if report.GamesWithLines != 1 {
		t.Errorf("gamesWithLines = %d, want 1 (nil spread is unusable)", report.GamesWithLines)
	}
	if report.OverUnder.AllGames.Games() != 0 {
		t.Errorf("a zero total should not be graded, got %+v", report.OverUnder.AllGames)
	}
}

func TestAggregateTrends_OvertimeTotals(t *testing.T) {
	ot := game(1, 38, 35)
	ot.Periods = models.IntPtr(6)
	noPeriods := game(2, 10, 7)
	noPeriods.Periods = nil

	report := AggregateTrends([]models.Game{ot, noPeriods}, indexFor(map[int]models.LineQuote{
		1: line(-3, 55.5), 2: line(-3, 40.5),
	}))

	if got := report.OverUnder.OvertimeGames; got.Overs != 1 || got.Games() != 1 {
		t.Errorf("overUnder.overtimeGames = %+v, want one over", got)
	}
	if got := report.OverUnder.NonOvertimeGames; got.Unders != 1 || got.Games() != 1 {
		t.Errorf("overUnder.nonOvertimeGames = %+v, want one under", got)
	}
	if got := report.OverUnder.AllGames; got.OverPercentage != 50 || got.UnderPercentage != 50 {
		t.Errorf("overUnder.allGames = %+v, want 50/50", got)
	}
}

func TestGradeTotal(t *testing.T) {
	tests := []struct {
		name  string
		total int
		line  float64
		want  models.TotalsResult
	}{
		{"over on the hook", 48, 47.5, models.TotalsOver},
		{"under on the hook", 47, 47.5, models.TotalsUnder},
		{"exact whole number", 47, 47, models.TotalsPush},
		{"within half a point", 47, 47.25, models.TotalsPush},
		{"clear over", 60, 47, models.TotalsOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gradeTotal(tt.total, tt.line); got != tt.want {
				t.Errorf("gradeTotal(%d, %v) = %v, want %v", tt.total, tt.line, got, tt.want)
			}
		})
	}
}

func TestHomeATSResult(t *testing.T) {
	tests := []struct {
		name   string
		margin int
		spread float64
		want   models.Outcome
	}{
		{"home favorite covers", 10, -7, models.OutcomeWin},
		{"home favorite pushes", 7, -7, models.OutcomeTie},
		{"home favorite fails", 3, -7, models.OutcomeLoss},
		{"home favorite loses outright", -3, -7, models.OutcomeLoss},
		{"away favorite covers", -10, 7, models.OutcomeLoss},
		{"away favorite pushes", -7, 7, models.OutcomeTie},
		{"home dog covers", -3, 7, models.OutcomeWin},
		{"half point never pushes", 3, -3.5, models.OutcomeLoss},
		{"pick em home win", 1, 0, models.OutcomeWin},
		{"pick em tie", 0, 0, models.OutcomeTie},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := homeATSResult(tt.margin, tt.spread); got != tt.want {
				t.Errorf("homeATSResult(%d, %v) = %v, want %v", tt.margin, tt.spread, got, tt.want)
			}
		})
	}
}

func TestSpreadBucketBoundaries(t *testing.T) {
	var b models.SpreadBuckets
	tests := []struct {
		spread float64
		want   *models.SpreadBucket
	}{
		{0.5, &b.Small}, {3, &b.Small}, {3.5, &b.Medium}, {7, &b.Medium},
		{7.5, &b.Large}, {14, &b.Large}, {14.5, &b.Huge}, {38, &b.Huge},
	}
	for _, tt := range tests {
		if got := spreadBucket(&b, tt.spread); got != tt.want {
			t.Errorf("spreadBucket(%v) picked the wrong bucket", tt.spread)
		}
	}
}

func TestAggregateTrends_EmptyInput(t *testing.T) {
	report := AggregateTrends(nil, LineIndex{})
	if report.TotalGames != 0 || report.StraightUp.HomeTeams.Percentage != 0 || report.OverUnder.AllGames.OverPercentage != 0 {
		t.Errorf("empty aggregation should be all zero, got %+v", report)
	}
}

func TestAggregateTrends_DoesNotMutateInput(t *testing.T) {
	games := []models.Game{game(1, 28, 21), game(2, 14, 14)}
	before := *games[0].HomeScore
	first := AggregateTrends(games, indexFor(map[int]models.LineQuote{1: line(-7, 44.5)}))
	second := AggregateTrends(games, indexFor(map[int]models.LineQuote{1: line(-7, 44.5)}))

	if *games[0].HomeScore != before {
		t.Error("AggregateTrends modified its input")
	}
	if first != second {
		t.Error("AggregateTrends should be deterministic")
	}
}

// TestAggregateTrends_Properties checks invariants over a deterministic batch of random games
func TestAggregateTrends_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(20241130))
	spreads := []float64{0, -1, -2.5, -3, -7, -10.5, -14, -21, 1, 3, 6.5, 7, 13.5, 17}

	var games []models.Game
	quotes := make(map[int]models.LineQuote)
	for week := 1; week <= 400; week++ {
		g := game(week, rng.Intn(56), rng.Intn(56))
		if rng.Intn(5) == 0 {
			g.Periods = models.IntPtr(5 + rng.Intn(3))
		}
		games = append(games, g)
		if rng.Intn(4) != 0 {
			quotes[week] = line(spreads[rng.Intn(len(spreads))], float64(35+rng.Intn(30))+0.5*float64(rng.Intn(2)))
		}
	}

	report := AggregateTrends(games, indexFor(quotes))

	su := report.StraightUp
	if su.HomeTeams.Wins != su.AwayTeams.Losses || su.HomeTeams.Losses != su.AwayTeams.Wins || su.HomeTeams.Ties != su.AwayTeams.Ties {
		t.Errorf("straight-up home/away do not mirror: %+v vs %+v", su.HomeTeams, su.AwayTeams)
	}
	if su.Favorites.Wins != su.Dogs.Losses || su.Favorites.Losses != su.Dogs.Wins {
		t.Errorf("straight-up favorites/dogs do not mirror: %+v vs %+v", su.Favorites, su.Dogs)
	}
	if su.HomeFavorites.Wins != su.AwayDogs.Losses || su.AwayFavorites.Wins != su.HomeDogs.Losses {
		t.Errorf("straight-up cross axes do not mirror")
	}
	if su.HomeTeams.Games() != report.TotalGames {
		t.Errorf("every game should count straight up: %d vs %d", su.HomeTeams.Games(), report.TotalGames)
	}

	ats := report.ATS
	if ats.HomeTeams.Wins != ats.AwayTeams.Losses || ats.HomeTeams.Pushes != ats.AwayTeams.Pushes {
		t.Errorf("ats home/away do not mirror: %+v vs %+v", ats.HomeTeams, ats.AwayTeams)
	}
	if ats.Favorites.Wins != ats.Dogs.Losses || ats.Favorites.Pushes != ats.Dogs.Pushes {
		t.Errorf("ats favorites/dogs do not mirror: %+v vs %+v", ats.Favorites, ats.Dogs)
	}
	if ats.HomeTeams.Games() != report.GamesWithLines {
		t.Errorf("ats games %d != games with lines %d", ats.HomeTeams.Games(), report.GamesWithLines)
	}

	// Favorite/dog axes only see non-pick-em games
	pickEms := 0
	for _, g := range games {
		if q, ok := quotes[g.Week]; ok && *q.Spread == 0 {
			pickEms++
		}
	}
	if su.Favorites.Games() != report.GamesWithLines-pickEms {
		t.Errorf("favorites counted %d games, want %d", su.Favorites.Games(), report.GamesWithLines-pickEms)
	}
	if su.HomeFavorites.Games()+su.AwayFavorites.Games() != su.Favorites.Games() {
		t.Error("home + away favorites should partition favorites")
	}

	ou := report.OverUnder
	if ou.OvertimeGames.Games()+ou.NonOvertimeGames.Games() != ou.AllGames.Games() {
		t.Error("overtime + non-overtime should partition all games")
	}

	buckets := report.SpreadBuckets
	if buckets.Small.Games+buckets.Medium.Games+buckets.Large.Games+buckets.Huge.Games != su.Favorites.Games() {
		t.Error("spread buckets should partition non-pick-em games")
	}

	for _, p := range allPercentages(report) {
		if p < 0 || p > 100 {
			t.Errorf("percentage %d out of range", p)
		}
	}
}

func assertNoFavoriteAxes(t *testing.T, report models.TrendsReport) {
	t.Helper()
	su, ats := report.StraightUp, report.ATS
	if su.Favorites.Games()+su.Dogs.Games()+su.HomeFavorites.Games()+su.AwayFavorites.Games()+su.HomeDogs.Games()+su.AwayDogs.Games() != 0 {
		t.Errorf("pick 'em touched straight-up favorite/dog axes: %+v", su)
	}
	if ats.Favorites.Games()+ats.Dogs.Games()+ats.HomeFavorites.Games()+ats.AwayFavorites.Games()+ats.HomeDogs.Games()+ats.AwayDogs.Games() != 0 {
		t.Errorf("pick 'em touched ATS favorite/dog axes: %+v", ats)
	}
	b := report.SpreadBuckets
	if b.Small.Games+b.Medium.Games+b.Large.Games+b.Huge.Games != 0 {
		t.Errorf("pick 'em counted in a spread bucket: %+v", b)
	}
}

func allPercentages(r models.TrendsReport) []int {
	su, ats, ou, b := r.StraightUp, r.ATS, r.OverUnder, r.SpreadBuckets
	return []int{
		su.HomeTeams.Percentage, su.AwayTeams.Percentage, su.Favorites.Percentage, su.Dogs.Percentage,
		su.HomeFavorites.Percentage, su.AwayFavorites.Percentage, su.HomeDogs.Percentage, su.AwayDogs.Percentage,
		ats.HomeTeams.Percentage, ats.AwayTeams.Percentage, ats.Favorites.Percentage, ats.Dogs.Percentage,
		ats.HomeFavorites.Percentage, ats.AwayFavorites.Percentage, ats.HomeDogs.Percentage, ats.AwayDogs.Percentage,
		ou.AllGames.OverPercentage, ou.AllGames.UnderPercentage, ou.OvertimeGames.OverPercentage,
		ou.OvertimeGames.UnderPercentage, ou.NonOvertimeGames.OverPercentage, ou.NonOvertimeGames.UnderPercentage,
		b.Small.FavPercentage, b.Small.DogPercentage, b.Medium.FavPercentage, b.Medium.DogPercentage,
		b.Large.FavPercentage, b.Large.DogPercentage, b.Huge.FavPercentage, b.Huge.DogPercentage,
		r.Situational.Blowouts.OverPercentage, r.Situational.Blowouts.UnderPercentage,
	}
}
