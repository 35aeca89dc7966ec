package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	_ "github.com/lib/pq"

	"github.com/futsalverse/futsal-manager/external/webhook"
	"github.com/futsalverse/futsal-manager/internal/config"
	"github.com/futsalverse/futsal-manager/internal/domain/match"
	"github.com/futsalverse/futsal-manager/internal/domain/player"
	"github.com/futsalverse/futsal-manager/internal/domain/sheet"
	"github.com/futsalverse/futsal-manager/internal/domain/sim"
	"github.com/futsalverse/futsal-manager/internal/domain/team"
	"github.com/futsalverse/futsal-manager/internal/domain/user"
	"github.com/futsalverse/futsal-manager/internal/infrastructure/repository/memory"
	"github.com/futsalverse/futsal-manager/internal/infrastructure/repository/postgres"
	"github.com/futsalverse/futsal-manager/internal/interfaces/httpapi"
	"github.com/futsalverse/futsal-manager/internal/platform/cache"
	idgen "github.com/futsalverse/futsal-manager/internal/platform/id"
	"github.com/futsalverse/futsal-manager/internal/platform/logging"
	"github.com/futsalverse/futsal-manager/internal/platform/namegen"
	"github.com/futsalverse/futsal-manager/internal/platform/resilience"
	"github.com/futsalverse/futsal-manager/internal/platform/rng"
	"github.com/futsalverse/futsal-manager/internal/usecase"
)

type repositories struct {
	teams   team.Repository
	players player.Repository
	sheets  sheet.Repository
	matches match.Repository
	writer  match.Writer
	users   user.Repository
	tokens  user.TokenRepository
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	random := rng.NewFromTime()
	if cfg.SimSeed != 0 {
		random = rng.New(cfg.SimSeed)
	}

	idGen := idgen.NewRandomGenerator()
	names := namegen.New(random, cfg.SimSeed)
	opponentCache := cache.NewStore(cfg.OpponentCacheTTL)

	positions, err := sim.NewDefaultPositionGenerator(random)
	if err != nil {
		return nil, fmt.Errorf("build position generator: %w", err)
	}
	calc := sim.NewSkillCalculator(cfg.StaminaEffectEnabled)
	factory := usecase.NewPlayerFactory(names, idGen, random)

	var publisher usecase.ResultPublisher
	if cfg.WebhookEnabled {
		p, err := webhook.NewPublisher(webhook.Config{
			URL:            cfg.WebhookURL,
			Token:          cfg.WebhookToken,
			Timeout:        cfg.WebhookTimeout,
			CircuitBreaker: resilience.DefaultCircuitBreakerConfig(),
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("build webhook publisher: %w", err)
		}
		publisher = p
	}

	authSvc := usecase.NewAuthService(repos.users, repos.tokens, idGen, logger)
	teamSvc := usecase.NewTeamService(repos.teams, repos.players, factory, idGen, logger)
	sheetSvc := usecase.NewSheetService(repos.sheets, repos.teams, repos.players, idGen, nil)
	packSvc := usecase.NewPackService(repos.teams, repos.players, factory, logger)
	opponentSvc := usecase.NewOpponentService(repos.teams, repos.players, factory, names, random, opponentCache, logger)
	matchSvc := usecase.NewMatchService(
		repos.teams,
		repos.players,
		repos.sheets,
		repos.matches,
		repos.writer,
		opponentSvc,
		positions,
		calc,
		random,
		idGen,
		publisher,
		logger,
		nil,
	)
	statsSvc := usecase.NewStatsService(repos.teams, repos.matches, logger)

	handler := httpapi.NewHandler(authSvc, teamSvc, sheetSvc, matchSvc, packSvc, statsSvc, logger)
	router := httpapi.NewRouter(handler, authSvc, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// buildRepositories picks the storage backend. An empty DB_URL selects the
// in-memory backend, which is enough for local play and tests.
func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		logger.Info("storage backend selected", "backend", "memory")

		matches := memory.NewMatchRepository()
		teams := memory.NewTeamRepository()
		players := memory.NewPlayerRepository()

		return repositories{
			teams:   teams,
			players: players,
			sheets:  memory.NewSheetRepository(),
			matches: matches,
			writer:  memory.NewMatchWriter(matches, teams, players),
			users:   memory.NewUserRepository(),
			tokens:  memory.NewTokenRepository(),
		}, nil
	}

	db, err := openPostgres(cfg.DBURL)
	if err != nil {
		return repositories{}, fmt.Errorf("connect postgres: %w", err)
	}
	logger.Info("storage backend selected", "backend", "postgres")

	return repositories{
		teams:   postgres.NewTeamRepository(db),
		players: postgres.NewPlayerRepository(db),
		sheets:  postgres.NewSheetRepository(db),
		matches: postgres.NewMatchRepository(db),
		writer:  postgres.NewMatchWriter(db),
		users:   postgres.NewUserRepository(db),
		tokens:  postgres.NewTokenRepository(db),
	}, nil
}

func openPostgres(dbURL string) (*sqlx.DB, error) {
	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName("futsal_manager"),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	return db, nil
}
