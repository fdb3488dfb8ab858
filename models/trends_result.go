package models

import "time"

// ReportSource records where a trends report was served from
type ReportSource string

const (
	SourceReportCache ReportSource = "report-cache"
	SourceSeasonCache ReportSource = "season-cache"
	SourceUpstream    ReportSource = "upstream"
)

// TrendsResult is a computed report with the request it answers
type TrendsResult struct {
	Season      int          `json:"season"`
	Conference  string       `json:"conference,omitempty"`
	Source      ReportSource `json:"source"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Report      TrendsReport `json:"report"`
}
