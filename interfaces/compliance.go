package interfaces

import (
	"cfb-trends-go/database"
	"cfb-trends-go/services"
)

// Interface compliance checks - these will fail to compile if implementations drift
var (
	// Handler-facing services
	_ TrendsService = (*services.TrendsService)(nil)
	_ AuthService   = (*services.AuthService)(nil)

	// Service dependencies
	_ services.DataSource      = (*services.CFBDClient)(nil)
	_ services.ReportCache     = (*database.RedisReportCache)(nil)
	_ services.SeasonRefresher = (*services.TrendsService)(nil)
	_ services.TrendsProvider  = (*services.TrendsService)(nil)

	// Season cache backends
	_ database.SeasonCache = (*database.MongoSeasonCacheRepository)(nil)
	_ database.SeasonCache = (*database.PostgresSeasonCacheRepository)(nil)
	_ database.SeasonCache = (*database.MemorySeasonCache)(nil)
	_ database.SeasonCache = database.NoopSeasonCache{}

	// Health probes
	_ Pinger = (*database.MongoSeasonCacheRepository)(nil)
	_ Pinger = (*database.PostgresSeasonCacheRepository)(nil)
	_ Pinger = (*database.RedisReportCache)(nil)
	_ Pinger = PingFunc(nil)
)
