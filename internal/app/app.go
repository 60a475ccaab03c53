package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/tactics-board/internal/config"
	"github.com/riskibarqy/tactics-board/internal/domain/player"
	"github.com/riskibarqy/tactics-board/internal/domain/tactic"
	"github.com/riskibarqy/tactics-board/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/tactics-board/internal/infrastructure/repository/filestore"
	"github.com/riskibarqy/tactics-board/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tactics-board/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tactics-board/internal/observability"
	idgen "github.com/riskibarqy/tactics-board/internal/platform/id"
	"github.com/riskibarqy/tactics-board/internal/platform/logging"
	"github.com/riskibarqy/tactics-board/internal/platform/resilience"
	"github.com/riskibarqy/tactics-board/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const dbPingTimeout = 5 * time.Second

// App holds the wired tactic service and whatever it needs to release on exit.
type App struct {
	Config  config.Config
	Logger  *logging.Logger
	Tactics *usecase.TacticService

	closers []func(context.Context) error
}

type stores struct {
	tactics tactic.Repository
	players player.Repository
	ids     idgen.Generator
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	a := &App{Config: cfg, Logger: logger}

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	a.closers = append(a.closers, shutdownTracing)

	st, err := a.buildStores(ctx)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	if cfg.CacheEnabled {
		st.tactics = cache.NewTacticRepository(st.tactics, cfg.CacheTTL)
		st.players = cache.NewPlayerRepository(st.players, cfg.CacheTTL)
	}

	roles := memory.NewRoleCatalog(logger, memory.SeedRoles())
	a.Tactics = usecase.NewTacticService(
		st.tactics,
		st.players,
		roles,
		st.ids,
		logger,
		usecase.TacticServiceConfig{
			AllowedSubstitutes: cfg.SubstitutesAllowed,
			WorkerPoolSize:     cfg.WorkerPoolSize,
		},
	)

	logger.Debug("app wired",
		"store", cfg.Store,
		"cache_enabled", cfg.CacheEnabled,
		"substitutes_allowed", cfg.SubstitutesAllowed,
	)
	return a, nil
}

func (a *App) buildStores(ctx context.Context) (stores, error) {
	switch a.Config.Store {
	case config.StoreFile:
		store, err := filestore.NewTacticStore(a.Config.TacticsDir)
		if err != nil {
			return stores{}, fmt.Errorf("open tactic store: %w", err)
		}
		return stores{
			tactics: store,
			players: memory.NewPlayerRepository(memory.SeedPlayers()),
			ids:     idgen.NewRandomGenerator(),
		}, nil
	case config.StorePostgres:
		db, err := a.openDB(ctx)
		if err != nil {
			return stores{}, err
		}
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			return stores{}, fmt.Errorf("seed players: %w", err)
		}
		breaker := resilience.NewCircuitBreaker(a.Config.DBCircuit,
			resilience.WithStateHook(func(from, to resilience.CircuitState) {
				a.Logger.Warn("db circuit state changed", "from", string(from), "to", string(to))
			}),
		)
		return stores{
			tactics: postgres.NewTacticRepository(db, breaker),
			players: postgres.NewPlayerRepository(db, breaker),
			ids:     idgen.NewRandomGenerator(),
		}, nil
	default:
		return stores{
			tactics: memory.NewTacticRepository(),
			players: memory.NewPlayerRepository(memory.SeedPlayers()),
			ids:     idgen.NewSequence(0),
		}, nil
	}
}

func (a *App) openDB(ctx context.Context) (*sqlx.DB, error) {
	dsn := normalizeDBURL(a.Config.DBURL, a.Config.DBDisablePreparedBinary)
	dbName := dbNameFromURL(dsn)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	a.closers = append(a.closers, func(context.Context) error { return db.Close() })

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	otelsql.ReportDBStatsMetrics(db.DB, otelsql.WithDBName(dbName))
	a.Logger.Info("postgres connected", "db_name", dbName)
	return db, nil
}

// Close runs the registered closers in reverse order and joins their errors.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
