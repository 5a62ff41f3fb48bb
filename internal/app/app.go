package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	_ "github.com/lib/pq"

	"github.com/paddockleague/fantasy-motogp/external/motorsportdata"
	"github.com/paddockleague/fantasy-motogp/internal/config"
	"github.com/paddockleague/fantasy-motogp/internal/domain/league"
	"github.com/paddockleague/fantasy-motogp/internal/domain/lineup"
	"github.com/paddockleague/fantasy-motogp/internal/domain/race"
	"github.com/paddockleague/fantasy-motogp/internal/domain/raceresult"
	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
	"github.com/paddockleague/fantasy-motogp/internal/domain/scoring"
	"github.com/paddockleague/fantasy-motogp/internal/domain/team"
	"github.com/paddockleague/fantasy-motogp/internal/infrastructure/account/paddockid"
	"github.com/paddockleague/fantasy-motogp/internal/infrastructure/jobqueue"
	"github.com/paddockleague/fantasy-motogp/internal/infrastructure/repository/memory"
	"github.com/paddockleague/fantasy-motogp/internal/infrastructure/repository/postgres"
	"github.com/paddockleague/fantasy-motogp/internal/interfaces/httpapi"
	"github.com/paddockleague/fantasy-motogp/internal/platform/cache"
	idgen "github.com/paddockleague/fantasy-motogp/internal/platform/id"
	"github.com/paddockleague/fantasy-motogp/internal/platform/logging"
	"github.com/paddockleague/fantasy-motogp/internal/platform/resilience"
	"github.com/paddockleague/fantasy-motogp/internal/usecase"
)

type repositories struct {
	leagues league.Repository
	riders  rider.Repository
	teams   team.Repository
	races   race.Repository
	results raceresult.Repository
	lineups lineup.Repository
	scores  scoring.Repository
}

// NewHTTPServer wires the full service graph and returns the HTTP
// server plus a cleanup that releases the worker pool and any DB
// connections.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, closeRepos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	pool, err := ants.NewPool(cfg.ScoringWorkers)
	if err != nil {
		closeRepos()
		return nil, nil, fmt.Errorf("create scoring worker pool: %w", err)
	}

	idGen := idgen.NewRandomGenerator()
	fallback := usecase.NewFallbackResolver(repos.races, repos.lineups)

	var publisher usecase.RecomputePublisher
	if cfg.QStashEnabled {
		publisher = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	leagueSvc := usecase.NewLeagueService(repos.leagues, repos.riders, idGen, logger)
	rosterSvc := usecase.NewRosterService(repos.leagues, repos.riders, repos.teams, idGen, logger)
	lineupSvc := usecase.NewLineupService(repos.leagues, repos.teams, repos.races, repos.lineups, fallback, idGen, logger)
	raceSvc := usecase.NewRaceService(repos.races, logger)
	scoringSvc := usecase.NewScoringService(
		repos.leagues,
		repos.teams,
		repos.races,
		repos.results,
		repos.scores,
		fallback,
		publisher,
		store,
		pool,
		idGen,
		logger,
	)
	standingsSvc := usecase.NewStandingsService(repos.leagues, repos.teams, repos.races, repos.scores, store, logger)
	seasonSvc := usecase.NewSeasonService(repos.leagues, repos.teams, repos.lineups, repos.scores, store, logger)

	var syncSvc *usecase.CalendarSyncService
	if cfg.ProviderEnabled {
		provider := motorsportdata.NewClient(motorsportdata.ClientConfig{
			BaseURL: cfg.ProviderBaseURL,
			APIKey:  cfg.ProviderAPIKey,
			Timeout: cfg.ProviderTimeout,
			Retries: cfg.ProviderMaxRetries,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ProviderCircuitEnabled,
				FailureThreshold: cfg.ProviderCircuitFailureCount,
				OpenTimeout:      cfg.ProviderCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ProviderCircuitHalfOpenMaxReq,
			},
		}, logger)
		syncSvc = usecase.NewCalendarSyncService(provider, repos.races, repos.riders, idGen, logger)
	}

	verifier := paddockid.NewClient(
		&http.Client{Timeout: cfg.PaddockIDTimeout},
		cfg.PaddockIDBaseURL,
		cfg.PaddockIDIntrospectPath,
		logger,
	)

	handler := httpapi.NewHandler(leagueSvc, rosterSvc, lineupSvc, raceSvc, scoringSvc, standingsSvc, seasonSvc, syncSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		pool.Release()
		closeRepos()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	cleanup := func() {
		pool.Release()
		closeRepos()
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func(), error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		return buildPostgresRepositories(cfg)
	default:
		return buildMemoryRepositories(cfg, logger)
	}
}

func buildMemoryRepositories(cfg config.Config, logger *logging.Logger) (repositories, func(), error) {
	leagueRepo := memory.NewLeagueRepository()
	riderRepo := memory.NewRiderRepository()
	raceRepo := memory.NewRaceRepository()

	if cfg.SeedDemoData {
		if err := memory.Seed(context.Background(), leagueRepo, riderRepo, raceRepo); err != nil {
			return repositories{}, nil, fmt.Errorf("seed demo data: %w", err)
		}
		logger.Info("demo data seeded", "season", memory.SeedSeason, "league_id", memory.SeedLeagueID)
	}

	return repositories{
		leagues: leagueRepo,
		riders:  riderRepo,
		teams:   memory.NewTeamRepository(),
		races:   raceRepo,
		results: memory.NewRaceResultRepository(),
		lineups: memory.NewLineupRepository(),
		scores:  memory.NewTeamScoreRepository(),
	}, func() {}, nil
}

func buildPostgresRepositories(cfg config.Config) (repositories, func(), error) {
	db, err := otelsqlx.Connect("postgres", cfg.DBURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("connect postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	closeDB := func() { _ = db.Close() }

	return repositories{
		leagues: postgres.NewLeagueRepository(db),
		riders:  postgres.NewRiderRepository(db),
		teams:   postgres.NewTeamRepository(db),
		races:   postgres.NewRaceRepository(db),
		results: postgres.NewRaceResultRepository(db),
		lineups: postgres.NewLineupRepository(db),
		scores:  postgres.NewTeamScoreRepository(db),
	}, closeDB, nil
}
