// Package cli wires the adshield components for the command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/bnema/adshield/internal/application/usecase"
	"github.com/bnema/adshield/internal/cli/styles"
	"github.com/bnema/adshield/internal/domain/build"
	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/domain/repository"
	"github.com/bnema/adshield/internal/infrastructure/config"
	"github.com/bnema/adshield/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/adshield/internal/logging"
)

// Options are the global command-line flags.
type Options struct {
	ConfigFile string
	LogLevel   string
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info
	Shield    *Shield

	db     *sqlite.LazyDB
	Events repository.BlockEventRepository
	Sites  repository.SiteBypassRepository

	// Use cases
	ClassifyUC *usecase.ClassifyURLUseCase
	InjectUC   *usecase.InjectShieldUseCase
	SanitizeUC *usecase.SanitizeDocumentUseCase
	ExportUC   *usecase.ExportRulesUseCase
	BypassUC   *usecase.ManageBypassUseCase
	StatsUC    *usecase.BlockStatsUseCase
	SchemaUC   *usecase.GetConfigSchemaUseCase

	// Context with logger
	ctx        context.Context
	logger     zerolog.Logger
	logCleanup func()
}

// NewApp creates a new CLI application with all dependencies.
func NewApp(opts Options) (*App, error) {
	mgr, cfg, loadErr := loadConfig(opts.ConfigFile)

	logCfg, fileCfg := cfg.LoggerConfig()
	logCfg.TimeFormat = "15:04:05"
	if opts.LogLevel != "" {
		logCfg.Level = logging.ParseLevel(opts.LogLevel)
	}
	logger, logCleanup, err := logging.NewWithFile(logCfg, fileCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	ctx := logging.WithContext(context.Background(), logger)
	if loadErr != nil {
		logger.Warn().Err(loadErr).Msg("using default configuration")
	}

	db := sqlite.NewLazyDB(cfg.Database.Path)

	app := &App{
		Config:     cfg,
		Manager:    mgr,
		Theme:      styles.NewTheme(),
		db:         db,
		Events:     sqlite.NewLazyBlockEventRepository(db),
		Sites:      sqlite.NewLazySiteBypassRepository(db),
		ctx:        ctx,
		logger:     logger,
		logCleanup: logCleanup,
	}
	app.BypassUC = usecase.NewManageBypassUseCase(app.Sites)
	app.StatsUC = usecase.NewBlockStatsUseCase(app.Events)
	app.SchemaUC = usecase.NewGetConfigSchemaUseCase(config.NewSchemaProvider(mgr))
	app.Apply(cfg)

	logger.Debug().Str("db_path", cfg.Database.Path).Msg("app initialized")
	return app, nil
}

// Apply rebuilds the shield and its use cases from cfg.
func (a *App) Apply(cfg *config.Config) {
	a.Config = cfg
	a.Shield = NewShield(cfg, a.logger)

	s := a.Shield
	var injectOpts []usecase.InjectOption
	injectOpts = append(injectOpts, usecase.WithSiteBypassList(a.Sites))
	if cfg.Database.RecordEvents {
		injectOpts = append(injectOpts, usecase.WithBlockEvents(a.Events))
	}

	a.ClassifyUC = usecase.NewClassifyURLUseCase(s.Classifier, cfg.Shield.SpecialHosts)
	a.InjectUC = usecase.NewInjectShieldUseCase(s.Classifier, s.Stylesheet, s.Registry, s.Payload, s.Settings, injectOpts...)
	a.SanitizeUC = usecase.NewSanitizeDocumentUseCase(s.Classifier, s.Stylesheet, s.Payload, s.Settings, a.InjectUC)
	a.ExportUC = usecase.NewExportRulesUseCase(s.Rules, s.Stylesheet, cfg.Shield.SpecialHosts)
}

// NewFilter creates the network-layer request filter for the current
// shield; recorded events are tagged with source.
func (a *App) NewFilter(source entity.BlockSource) *usecase.FilterRequestUseCase {
	opts := []usecase.FilterRequestOption{
		usecase.WithSiteBypass(a.Sites, a.Config.Shield.SiteCacheSize),
		usecase.WithBlockSource(source),
	}
	if a.Config.Database.RecordEvents {
		opts = append(opts, usecase.WithEventRecorder(a.Events))
	}
	return usecase.NewFilterRequestUseCase(a.Shield.Classifier, a.Config.Shield.SpecialHosts, opts...)
}

// Close releases all resources.
func (a *App) Close() error {
	var err error
	if a.db != nil {
		err = a.db.Close()
	}
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return err
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Logger returns the application logger.
func (a *App) Logger() zerolog.Logger {
	return a.logger
}

// loadConfig loads configuration, falling back to defaults when the file
// cannot be used.
func loadConfig(path string) (*config.Manager, *config.Config, error) {
	var opts []config.ManagerOption
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	mgr, err := config.NewManager(opts...)
	if err != nil {
		return nil, fallbackConfig(), err
	}
	if err := mgr.Load(); err != nil {
		return mgr, fallbackConfig(), err
	}
	return mgr, mgr.Get(), nil
}

func fallbackConfig() *config.Config {
	cfg := config.DefaultConfig()
	if cfg.Database.Path == "" {
		if path, err := config.GetDatabaseFile(); err == nil {
			cfg.Database.Path = path
		}
	}
	return cfg
}
