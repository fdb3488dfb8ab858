// Command trendsctl computes, exports and pre-warms college football betting trends.
//
// Usage:
//
//	trendsctl report --year 2023 --conference SEC
//	trendsctl report --year 2023 --json
//	trendsctl export --year 2023 --out trends-2023.xlsx
//	trendsctl warm --from 2015 --to 2023 --conference SEC --conference "Big Ten"
//	trendsctl clear --year 2024 --conference SEC
//	trendsctl hash-key <admin-key>
package main

import (
	"cfb-trends-go/config"
	"cfb-trends-go/database"
	"cfb-trends-go/logging"
	"cfb-trends-go/models"
	"cfb-trends-go/services"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var backend string

func main() {
	root := &cobra.Command{
		Use:           "trendsctl",
		Short:         "College football betting trends CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&backend, "backend", "", "Season cache backend (mongo, postgres, memory, none); defaults to DB_BACKEND")

	root.AddCommand(reportCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(warmCmd())
	root.AddCommand(clearCmd())
	root.AddCommand(hashKeyCmd())

	if err := root.Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// report command
// --------------------------------------------------------------------------

func reportCmd() *cobra.Command {
	var (
		season     int
		conference string
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the trends report for a season",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithService(func(ctx context.Context, cfg *config.Config, svc *services.TrendsService) error {
				result, err := svc.GetTrends(ctx, seasonOrCurrent(season, cfg), conference)
				if err != nil {
					return err
				}
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(result)
				}
				return printReport(cmd.OutOrStdout(), result)
			})
		},
	}
	cmd.Flags().IntVar(&season, "year", 0, "Season year (defaults to CURRENT_SEASON)")
	cmd.Flags().StringVar(&conference, "conference", "", "Limit to one conference")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

// --------------------------------------------------------------------------
// export command
// --------------------------------------------------------------------------

func exportCmd() *cobra.Command {
	var (
		season     int
		conference string
		out        string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the trends report to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithService(func(ctx context.Context, cfg *config.Config, svc *services.TrendsService) error {
				result, err := svc.GetTrends(ctx, seasonOrCurrent(season, cfg), conference)
				if err != nil {
					return err
				}
				path := out
				if path == "" {
					path = fmt.Sprintf("trends-%d.xlsx", result.Season)
				}
				if err := services.ExportReportXLSX(result, path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d games)\n", path, result.Report.TotalGames)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&season, "year", 0, "Season year (defaults to CURRENT_SEASON)")
	cmd.Flags().StringVar(&conference, "conference", "", "Limit to one conference")
	cmd.Flags().StringVar(&out, "out", "", "Output path (defaults to trends-<year>.xlsx)")
	return cmd
}

// --------------------------------------------------------------------------
// warm command
// --------------------------------------------------------------------------

func warmCmd() *cobra.Command {
	var (
		from, to    int
		conferences []string
	)
	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Load a range of seasons into the caches",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithService(func(ctx context.Context, cfg *config.Config, svc *services.TrendsService) error {
				if to == 0 {
					to = cfg.App.CurrentSeason
				}
				summary, err := services.NewDataLoader(svc).WarmSeasons(ctx, from, to, conferences)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Warmed %d season set(s)\n", summary.Loaded)
				if len(summary.Failed) > 0 {
					return fmt.Errorf("%d season set(s) failed: %v", len(summary.Failed), summary.Failed)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&from, "from", services.MinSeason, "First season")
	cmd.Flags().IntVar(&to, "to", 0, "Last season (defaults to CURRENT_SEASON)")
	cmd.Flags().StringArrayVar(&conferences, "conference", nil, "Conference to warm (repeatable; omit for whole seasons)")
	return cmd
}

// --------------------------------------------------------------------------
// clear command
// --------------------------------------------------------------------------

func clearCmd() *cobra.Command {
	var (
		season     int
		conference string
	)
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete cached season data so the next request refetches it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Close()

			seasonCache, err := openSeasonCache(ctx, cfg)
			if err != nil {
				return err
			}
			defer seasonCache.Close()

			season = seasonOrCurrent(season, cfg)
			if err := seasonCache.Invalidate(ctx, season, conference); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared season %d (%s)\n", season, conferenceOrAll(conference))
			return nil
		},
	}
	cmd.Flags().IntVar(&season, "year", 0, "Season year (defaults to CURRENT_SEASON)")
	cmd.Flags().StringVar(&conference, "conference", "", "Conference the data was cached under")
	return cmd
}

// --------------------------------------------------------------------------
// hash-key command
// --------------------------------------------------------------------------

func hashKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-key <admin-key>",
		Short: "Print the bcrypt hash to use as ADMIN_KEY_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := services.HashAdminKey(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

// --------------------------------------------------------------------------
// helpers
// --------------------------------------------------------------------------

func runWithService(fn func(ctx context.Context, cfg *config.Config, svc *services.TrendsService) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()

	seasonCache, err := openSeasonCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer seasonCache.Close()

	svc := services.NewTrendsService(services.NewCFBDClient(cfg.Source), seasonCache, nil,
		services.NewCachePolicy(cfg.Cache), cfg.Source.PreferredProvider)
	return fn(ctx, cfg, svc)
}

func loadConfig() (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logging.Configure(cfg.ToLoggingConfig()), nil
}

// openSeasonCache opens the --backend cache, falling back to DB_BACKEND
func openSeasonCache(ctx context.Context, cfg *config.Config) (database.SeasonCache, error) {
	selected := cfg.Database.Backend
	if backend != "" {
		selected = backend
	}
	seasonCache, err := database.OpenSeasonCache(ctx, selected, cfg.ToDatabaseConfig())
	if err != nil {
		return nil, fmt.Errorf("open %s season cache: %w", selected, err)
	}
	return seasonCache, nil
}

func conferenceOrAll(conference string) string {
	if conference == "" {
		return "all conferences"
	}
	return conference
}

func seasonOrCurrent(season int, cfg *config.Config) int {
	if season == 0 {
		return cfg.App.CurrentSeason
	}
	return season
}

func printReport(w io.Writer, result *models.TrendsResult) error {
	r := result.Report
	conference := conferenceOrAll(result.Conference)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Season %d, %s (%s)\n", result.Season, conference, result.Source)
	fmt.Fprintf(tw, "Games: %d\tWith lines: %d\n\n", r.TotalGames, r.GamesWithLines)

	fmt.Fprintln(tw, "Split\tSU W-L-T\tSU %\tATS W-L-P\tATS %")
	splits := []struct {
		label string
		su    models.StraightUpRecord
		ats   models.ATSRecord
	}{
		{"Home", r.StraightUp.HomeTeams, r.ATS.HomeTeams},
		{"Away", r.StraightUp.AwayTeams, r.ATS.AwayTeams},
		{"Favorites", r.StraightUp.Favorites, r.ATS.Favorites},
		{"Underdogs", r.StraightUp.Dogs, r.ATS.Dogs},
		{"Home favorites", r.StraightUp.HomeFavorites, r.ATS.HomeFavorites},
		{"Away favorites", r.StraightUp.AwayFavorites, r.ATS.AwayFavorites},
		{"Home underdogs", r.StraightUp.HomeDogs, r.ATS.HomeDogs},
		{"Away underdogs", r.StraightUp.AwayDogs, r.ATS.AwayDogs},
	}
	for _, s := range splits {
		fmt.Fprintf(tw, "%s\t%d-%d-%d\t%d%%\t%d-%d-%d\t%d%%\n", s.label,
			s.su.Wins, s.su.Losses, s.su.Ties, s.su.Percentage,
			s.ats.Wins, s.ats.Losses, s.ats.Pushes, s.ats.Percentage)
	}

	fmt.Fprintln(tw, "\nTotals\tO-U-P\tOver %\tUnder %")
	for _, t := range []struct {
		label string
		rec   models.TotalsRecord
	}{
		{"All games", r.OverUnder.AllGames},
		{"Overtime", r.OverUnder.OvertimeGames},
		{"Regulation", r.OverUnder.NonOvertimeGames},
		{"Blowouts", r.Situational.Blowouts.TotalsRecord},
	} {
		fmt.Fprintf(tw, "%s\t%d-%d-%d\t%d%%\t%d%%\n", t.label,
			t.rec.Overs, t.rec.Unders, t.rec.Pushes, t.rec.OverPercentage, t.rec.UnderPercentage)
	}

	fmt.Fprintln(tw, "\nSpread\tGames\tFav wins\tDog wins\tFav %")
	for _, b := range []struct {
		label  string
		bucket models.SpreadBucket
	}{
		{"3 or fewer", r.SpreadBuckets.Small},
		{"3 to 7", r.SpreadBuckets.Medium},
		{"7 to 14", r.SpreadBuckets.Large},
		{"more than 14", r.SpreadBuckets.Huge},
	} {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d%%\n", b.label,
			b.bucket.Games, b.bucket.FavWins, b.bucket.DogWins, b.bucket.FavPercentage)
	}

	return tw.Flush()
}
