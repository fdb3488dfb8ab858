package main

import (
	"bytes"
	"cfb-trends-go/models"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPrintReport(t *testing.T) {
	report := models.TrendsReport{TotalGames: 3, GamesWithLines: 2}
	report.StraightUp.HomeTeams = models.StraightUpRecord{Wins: 2, Losses: 1}
	report.ATS.Favorites = models.ATSRecord{Wins: 1, Pushes: 1}
	report.SpreadBuckets.Small = models.SpreadBucket{Games: 2, FavWins: 1, DogWins: 1}

	var buf bytes.Buffer
	err := printReport(&buf, &models.TrendsResult{Season: 2023, Source: models.SourceSeasonCache, Report: report.Finalize()})
	if err != nil {
		t.Fatalf("printReport() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Season 2023, all conferences (season-cache)",
		"With lines: 2",
		"2-1-0",
		"67%",
		"1-0-1",
		"3 or fewer",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHashKeyCommand(t *testing.T) {
	cmd := hashKeyCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"a-sufficiently-long-admin-key"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	hash := strings.TrimSpace(out.String())
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("a-sufficiently-long-admin-key")); err != nil {
		t.Errorf("printed hash does not verify: %v", err)
	}

	short := hashKeyCmd()
	short.SetOut(&out)
	short.SetErr(&out)
	short.SetArgs([]string{"short"})
	if err := short.Execute(); err == nil {
		t.Error("short keys should be rejected")
	}
}
