package services

import (
	"cfb-trends-go/models"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Export sheet names, in workbook order
const (
	SheetSummary       = "Summary"
	SheetStraightUp    = "Straight Up"
	SheetATS           = "ATS"
	SheetOverUnder     = "Over Under"
	SheetSpreadBuckets = "Spread Buckets"
	SheetSituational   = "Situational"
)

type sheetData struct {
	name   string
	header []interface{}
	rows   [][]interface{}
}

// ExportReportXLSX writes a trends result to an Excel workbook with one sheet per report section
func ExportReportXLSX(result *models.TrendsResult, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, sheet := range reportSheets(result) {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet.name, err)
		}

		if err := f.SetSheetRow(sheet.name, "A1", &sheet.header); err != nil {
			return fmt.Errorf("write %s header: %w", sheet.name, err)
		}
		if err := f.SetRowStyle(sheet.name, 1, 1, bold); err != nil {
			return fmt.Errorf("style %s header: %w", sheet.name, err)
		}
		for r, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				return fmt.Errorf("write %s row %d: %w", sheet.name, r+2, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func reportSheets(result *models.TrendsResult) []sheetData {
	report := result.Report
	conference := result.Conference
	if conference == "" {
		conference = "All FBS"
	}

	summary := sheetData{
		name:   SheetSummary,
		header: []interface{}{"Field", "Value"},
		rows: [][]interface{}{
			{"Season", result.Season},
			{"Conference", conference},
			{"Total Games", report.TotalGames},
			{"Games With Lines", report.GamesWithLines},
			{"Source", string(result.Source)},
			{"Generated At", result.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		},
	}

	straightUp := sheetData{
		name:   SheetStraightUp,
		header: []interface{}{"Split", "Wins", "Losses", "Ties", "Win %"},
		rows: sideRows(report.StraightUp, func(r models.StraightUpRecord) []interface{} {
			return []interface{}{r.Wins, r.Losses, r.Ties, r.Percentage}
		}),
	}

	ats := sheetData{
		name:   SheetATS,
		header: []interface{}{"Split", "Covers", "Fails", "Pushes", "Cover %"},
		rows: sideRows(report.ATS, func(r models.ATSRecord) []interface{} {
			return []interface{}{r.Wins, r.Losses, r.Pushes, r.Percentage}
		}),
	}

	totalsRow := func(label string, r models.TotalsRecord) []interface{} {
		return []interface{}{label, r.Overs, r.Unders, r.Pushes, r.OverPercentage, r.UnderPercentage}
	}
	overUnder := sheetData{
		name:   SheetOverUnder,
		header: []interface{}{"Split", "Overs", "Unders", "Pushes", "Over %", "Under %"},
		rows: [][]interface{}{
			totalsRow("All Games", report.OverUnder.AllGames),
			totalsRow("Overtime", report.OverUnder.OvertimeGames),
			totalsRow("Regulation", report.OverUnder.NonOvertimeGames),
		},
	}

	bucketRow := func(label string, b models.SpreadBucket) []interface{} {
		return []interface{}{label, b.Games, b.FavWins, b.DogWins, b.FavPercentage, b.DogPercentage}
	}
	buckets := sheetData{
		name:   SheetSpreadBuckets,
		header: []interface{}{"Spread", "Games", "Favorite Wins", "Underdog Wins", "Favorite %", "Underdog %"},
		rows: [][]interface{}{
			bucketRow("3 or fewer", report.SpreadBuckets.Small),
			bucketRow("3 to 7", report.SpreadBuckets.Medium),
			bucketRow("7 to 14", report.SpreadBuckets.Large),
			bucketRow("more than 14", report.SpreadBuckets.Huge),
		},
	}

	blowouts := report.Situational.Blowouts
	situational := sheetData{
		name:   SheetSituational,
		header: []interface{}{"Situation", "Games", "Overs", "Unders", "Pushes", "Over %", "Under %"},
		rows: [][]interface{}{
			{"Blowouts", blowouts.Games, blowouts.Overs, blowouts.Unders, blowouts.Pushes, blowouts.OverPercentage, blowouts.UnderPercentage},
		},
	}

	return []sheetData{summary, straightUp, ats, overUnder, buckets, situational}
}

func sideRows[R any](records models.SideRecords[R], values func(R) []interface{}) [][]interface{} {
	splits := []struct {
		label  string
		record R
	}{
		{"Home Teams", records.HomeTeams},
		{"Away Teams", records.AwayTeams},
		{"Favorites", records.Favorites},
		{"Underdogs", records.Dogs},
		{"Home Favorites", records.HomeFavorites},
		{"Away Favorites", records.AwayFavorites},
		{"Home Underdogs", records.HomeDogs},
		{"Away Underdogs", records.AwayDogs},
	}

	rows := make([][]interface{}, 0, len(splits))
	for _, s := range splits {
		rows = append(rows, append([]interface{}{s.label}, values(s.record)...))
	}
	return rows
}
