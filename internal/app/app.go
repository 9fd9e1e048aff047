package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/confgrid/internal/conf"
	"github.com/vk/confgrid/internal/config"
	"github.com/vk/confgrid/internal/ctxlog"
	"github.com/vk/confgrid/internal/model"
	"github.com/vk/confgrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle: an isolated logger, a populated and validated registry, the
// loaded edits, and the configuration tree they will be applied to.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	edits    *config.Model
	tree     *conf.Tree
}

// NewApp is the constructor for the main application. Registry population
// and validation failures, and failures to parse the edit files, are
// startup defects and panic; the caller recovers at the process rim. Edits
// are not applied yet - that is user input, handled with ordinary errors
// in Run.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All modules registered.", "count", len(modules))

	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}

	edits := &config.Model{}
	if appConfig.EditPath != "" {
		var err error
		edits, err = loader.Load(ctx, appConfig.EditPath)
		if err != nil {
			panic(fmt.Errorf("failed to load configuration edits: %w", err))
		}
	}

	// Task schemas were just validated through the registry; the train
	// root and the node types above the selectors are registered nowhere,
	// so their rule tables get the same static check here.
	trainSchema := model.Train(reg)
	if err := trainSchema.Validate(); err != nil {
		panic(fmt.Errorf("train schema failed validation: %w", err))
	}

	tree := conf.NewTree(trainSchema)
	logger.Debug("Configuration tree built from schema defaults.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		registry: reg,
		edits:    edits,
		tree:     tree,
	}
}

// Registry returns the application's registry. This is primarily for
// testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Tree returns the application's configuration tree. This is primarily for
// testing.
func (a *App) Tree() *conf.Tree {
	return a.tree
}
