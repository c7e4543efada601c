package container

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	infraCache "library-catalog/internal/infrastructure/cache"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/shared/flash"
	"library-catalog/internal/web"
	"library-catalog/pkg/cache"
	pkgdb "library-catalog/pkg/database"
	"library-catalog/pkg/jwt"

	authorHandler "library-catalog/internal/domains/author/handler"
	authorRepo "library-catalog/internal/domains/author/repository"
	authorService "library-catalog/internal/domains/author/service"
	bookHandler "library-catalog/internal/domains/book/handler"
	bookRepo "library-catalog/internal/domains/book/repository"
	bookService "library-catalog/internal/domains/book/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container là root của dependency graph.
// Exactly one of Postgres and SQLite is set, depending on DB_DRIVER.
type Container struct {
	// Infrastructure
	Config     *config.Config
	Postgres   *database.PostgresDB
	SQLite     *database.SQLiteDB
	Cache      cache.Cache // nil unless FLASH_STORE=redis
	Transactor pkgdb.Transactor
	Flash      flash.Store
	Templates  *template.Template

	// Repositories
	AuthorRepo authorRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface

	// Services
	AuthorService authorService.ServiceInterface
	BookService   bookService.ServiceInterface

	// Handlers
	AuthorHandler *authorHandler.Handler
	BookHandler   *bookHandler.Handler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer builds the graph in dependency order:
// database -> flash store -> repositories -> services -> handlers.
// Migrations are not applied here; call Migrate.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Str("env", cfg.App.Environment).Str("driver", cfg.Database.Driver).Msg("[CONTAINER] Initializing...")

	c := &Container{Config: cfg}

	if err := c.initDatabase(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	if err := c.initFlash(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	tmpl, err := web.Templates()
	if err != nil {
		c.Cleanup()
		return nil, err
	}
	c.Templates = tmpl

	c.initDomains()

	log.Info().Msg("[CONTAINER] Ready")
	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	switch c.Config.Database.Driver {
	case config.DriverPostgres:
		db := database.NewPostgresDB(c.Config.PostgresConfig())
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.Postgres = db
		c.Transactor = pkgdb.NewPgxTransactor(db.Pool)
		c.AuthorRepo = authorRepo.NewPostgresRepository(db.Pool)
		c.BookRepo = bookRepo.NewPostgresRepository(db.Pool)

	case config.DriverSQLite:
		db := database.NewSQLiteDB(c.Config.Database.SQLitePath)
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to open sqlite database: %w", err)
		}
		c.SQLite = db
		c.Transactor = pkgdb.NewSQLTransactor(db.DB)
		c.AuthorRepo = authorRepo.NewSQLiteRepository(db.DB)
		c.BookRepo = bookRepo.NewSQLiteRepository(db.DB)

	default:
		return fmt.Errorf("unsupported database driver %q", c.Config.Database.Driver)
	}
	return nil
}

func (c *Container) initFlash(ctx context.Context) error {
	fc := c.Config.Flash

	switch fc.Store {
	case config.FlashStoreRedis:
		redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
		c.Cache = redisCache

		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := redisCache.(*infraCache.RedisCache).Connect(connectCtx); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.Flash = flash.NewRedisStore(redisCache, fc.CookieName, fc.TTL, fc.CookieSecure)

	default:
		c.Flash = flash.NewCookieStore(jwt.NewManager(fc.Secret), fc.CookieName, fc.TTL, fc.CookieSecure)
	}
	return nil
}

func (c *Container) initDomains() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorRepo, c.Transactor)

	c.AuthorHandler = authorHandler.NewHandler(c.AuthorService, c.BookService, c.Flash)
	c.BookHandler = bookHandler.NewHandler(c.BookService, c.AuthorService, c.Flash)
}

// ========================================
// LIFECYCLE
// ========================================

// Migrate applies pending schema migrations and returns how many ran.
func (c *Container) Migrate(ctx context.Context) (int, error) {
	if c.Postgres != nil {
		return database.MigratePostgres(ctx, c.Postgres.Pool)
	}
	return database.MigrateSQLite(ctx, c.SQLite.DB)
}

// Ping checks the database and, when configured, Redis.
func (c *Container) Ping(ctx context.Context) error {
	if c.Postgres != nil {
		if err := c.Postgres.Ping(ctx); err != nil {
			return err
		}
	} else if err := c.SQLite.Ping(ctx); err != nil {
		return err
	}

	if c.Cache != nil {
		if err := c.Cache.Ping(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// Cleanup closes every connection the container opened. Safe to call twice.
func (c *Container) Cleanup() {
	log.Info().Msg("[CONTAINER] Cleaning up resources...")

	if c.Postgres != nil {
		_ = c.Postgres.Close()
	}
	if c.SQLite != nil {
		if err := c.SQLite.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close sqlite")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close Redis")
		}
	}
}
