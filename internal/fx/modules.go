package fx

import (
	"database/sql"
	"tenbucks-club/internal/config"
	"tenbucks-club/internal/database"
	"tenbucks-club/internal/db"
	"tenbucks-club/internal/logger"
	"tenbucks-club/internal/repository"
	"tenbucks-club/internal/server"
	"tenbucks-club/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

// ProvideLogger applies LOG_LEVEL on top of the bootstrap logger used while
// loading config.
func ProvideLogger(cfg *config.Config) zerolog.Logger {
	return logger.ForLevel(logger.New(), cfg.LogLevel)
}

func ProvideConfig() (*config.Config, error) {
	return config.Load(logger.New())
}

var Module = fx.Options(
	fx.Provide(ProvideConfig),
	fx.Provide(ProvideLogger),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewSeasonRepository),
	fx.Provide(repository.NewParticipantRepository),
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewStore),
	// svc
	fx.Provide(service.NewWaitlistService),
	fx.Provide(service.NewParticipationService),
	fx.Provide(service.NewRosterService),
	fx.Provide(service.NewSeasonService),
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewScoringService),
	// server
	fx.Provide(server.NewClubServer),
)
