package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill-match/internal/catalog"
	"skill-match/internal/config"
	"skill-match/internal/database"
	"skill-match/internal/database/migration"
	dbpostgres "skill-match/internal/database/postgres"
	"skill-match/internal/database/seeder"
	"skill-match/internal/domain/event"
	"skill-match/internal/domain/ledger"
	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/user"
	"skill-match/internal/infrastructure/cache"
	"skill-match/internal/infrastructure/events"
	"skill-match/internal/pkg/jwt"
	"skill-match/internal/repository"
	"skill-match/internal/repository/memory"
	"skill-match/internal/usecase"
	"skill-match/internal/ws"
	"skill-match/migrations"

	"go.uber.org/zap"
)

// Container owns every long-lived dependency of the service.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB      *dbpostgres.Pool
	Redis   *cache.Redis
	AMQP    *events.AMQPPublisher
	Hub     *ws.Hub
	Catalog *catalog.Catalog
	Badges  ledger.BadgeTable
	JWT     *jwt.HMACService

	Users  user.Repository
	Ledger ledger.Ledger
	Events event.Publisher

	Auth      *usecase.Auth
	Profiles  *usecase.User
	Skills    *usecase.UserSkill
	Jobs      *usecase.JobList
	Actions   *usecase.Action
	Courses   *usecase.Course
	CatalogUC *usecase.Catalog

	stopHub context.CancelFunc
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{Config: cfg, Logger: logger}

	badges, err := ledger.ParseBadgeTable(cfg.Engine.BadgeTable)
	if err != nil {
		return nil, fmt.Errorf("badge table: %w", err)
	}
	c.Badges = badges

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.initStorage(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Redis = cache.NewRedis(cfg.Redis, logger.Named("redis"))

	hubCtx, stop := context.WithCancel(context.Background())
	c.stopHub = stop
	c.Hub = ws.NewHub(logger.Named("ws"))
	go c.Hub.Run(hubCtx)

	pubs := event.Multi{ws.NewNotifier(c.Hub)}
	if cfg.Events.Enabled() {
		p, err := events.NewAMQPPublisher(cfg.Events, logger.Named("amqp"))
		if err != nil {
			logger.Warn("amqp unavailable, events stay in-process", zap.Error(err))
		} else {
			c.AMQP = p
			pubs = append(pubs, p)
		}
	}
	c.Events = pubs

	c.JWT = jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, cfg.JWT.Issuer)

	matcher := usecase.NewMatcher(c.Catalog, matching.Policy{LifeBoost: cfg.Engine.LifeBoost}, cfg.Engine.RecommendLimit, cfg.Engine.ScoringWorkers)
	ucLog := logger.Named("usecase")

	c.Auth = usecase.NewAuthUsecase(c.Users, c.Ledger, c.JWT, c.Events, ucLog)
	c.Profiles = usecase.NewUserUsecase(c.Users, c.Ledger, badges, c.Events, ucLog)
	c.Skills = usecase.NewUserSkillUsecase(c.Users, c.Ledger, c.Catalog.Taxonomy(), badges, c.Redis, c.Events, ucLog)
	c.Jobs = usecase.NewJobListUsecase(c.Users, c.Ledger, c.Catalog, matcher, c.Redis, ucLog)
	c.Actions = usecase.NewActionUsecase(
		c.Users,
		c.Ledger,
		c.Catalog,
		badges,
		usecase.NewDailyGuard(c.Redis, ucLog),
		c.Redis,
		c.Events,
		ucLog,
		usecase.ActionOptions{DedupeDaily: cfg.Engine.DedupeDaily},
	)
	c.Courses = usecase.NewCourseUsecase(c.Actions)
	c.CatalogUC = usecase.NewCatalogUsecase(c.Catalog)

	return c, nil
}

func (c *Container) initStorage(ctx context.Context) error {
	switch c.Config.Engine.Storage {
	case config.StoragePostgres:
		db, err := dbpostgres.Connect(ctx, c.Config.Database)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		c.DB = db

		if c.Config.Database.AutoMigrate {
			if err := Migrator(c.Logger).Run(ctx, db.SQLDB()); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
		if c.Config.Database.AutoSeed {
			if err := Seed(ctx, db, c.Logger); err != nil {
				return err
			}
		}

		cat, err := catalog.Load(ctx, repository.NewPostgresCatalogSource(db))
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		c.Catalog = cat
		c.Users = repository.NewPostgresUserRepository(db)
		c.Ledger = repository.NewPostgresLedger(db)
	default:
		cat, err := catalog.Load(ctx, catalog.Embedded())
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		c.Catalog = cat
		c.Users = memory.NewUserRepository()
		c.Ledger = ledger.NewMemory()
	}

	c.Logger.Info("storage ready",
		zap.String("storage", c.Config.Engine.Storage),
		zap.Int("jobs", len(c.Catalog.Jobs())),
		zap.Int("courses", len(c.Catalog.Courses())),
		zap.Int("life_actions", len(c.Catalog.LifeActions())),
	)
	return nil
}

// Migrator returns the runner over the embedded schema.
func Migrator(logger *zap.Logger) migration.Runner {
	return migration.Runner{FS: migrations.FS, Dir: ".", Logger: logger}
}

// Seed upserts the embedded catalog into db.
func Seed(ctx context.Context, db database.DB, logger *zap.Logger) error {
	seeders, err := seeder.Defaults()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if err := (seeder.Runner{Seeders: seeders, Logger: logger}).Run(ctx, db); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.stopHub != nil {
		c.stopHub()
	}

	var errs []error
	if c.AMQP != nil {
		errs = append(errs, c.AMQP.Close())
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
