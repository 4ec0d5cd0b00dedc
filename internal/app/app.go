package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/tournament-engine/internal/config"
	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	"github.com/riskibarqy/tournament-engine/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/tournament-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-engine/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tournament-engine/internal/interfaces/httpapi"
	"github.com/riskibarqy/tournament-engine/internal/platform/id"
	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
	"github.com/riskibarqy/tournament-engine/internal/usecase"
)

type repositories struct {
	tournaments tournament.Repository
	teams       team.Repository
	fixtures    fixture.Repository
	close       func() error
}

// NewHTTPServer wires the configured store, the use cases and the router.
// The returned close func releases the store and must run after the server stops.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	tournamentRepo := repos.tournaments
	if cfg.CacheEnabled {
		tournamentRepo = cache.NewTournamentRepository(tournamentRepo, cfg.CacheTTL)
	}

	tournamentSvc := usecase.NewTournamentService(tournamentRepo, id.NewUUIDGenerator(), logger)
	promotionSvc := usecase.NewPromotionService(tournamentRepo, repos.teams, repos.fixtures, logger)
	resultSvc := usecase.NewResultService(
		tournamentRepo,
		repos.teams,
		repos.fixtures,
		promotionSvc,
		usecase.ResultServiceConfig{
			BatchWorkers: cfg.BatchWorkers,
			MaxGoals:     cfg.AutogenMaxGoals,
		},
		logger,
	)
	reportSvc := usecase.NewReportService(tournamentRepo, repos.teams, repos.fixtures)

	handler := httpapi.NewHandler(tournamentSvc, resultSvc, reportSvc, logger)
	router := httpapi.NewRouter(handler, cfg.ServiceName, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		logger.Info("store ready", "driver", cfg.StoreDriver, "database", dbNameFromURL(cfg.DBURL))
		return repositories{
			tournaments: postgres.NewTournamentRepository(db),
			teams:       postgres.NewTeamRepository(db),
			fixtures:    postgres.NewFixtureRepository(db),
			close:       db.Close,
		}, nil
	case config.StoreMemory, "":
		store := memory.NewStore()
		logger.Info("store ready", "driver", config.StoreMemory)
		return repositories{
			tournaments: store.Tournaments(),
			teams:       store.Teams(),
			fixtures:    store.Fixtures(),
			close:       func() error { return nil },
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
