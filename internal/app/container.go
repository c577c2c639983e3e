// Package app wires application services with infrastructure adapters.
// Every component receives its collaborators fully formed at construction
// time; there is no construct-then-patch phase.
package app

import (
	"context"

	"github.com/DingxDon/Task-Automate/internal/domain"
	"github.com/DingxDon/Task-Automate/internal/infrastructure/ai"
	"github.com/DingxDon/Task-Automate/internal/infrastructure/codeblock"
	"github.com/DingxDon/Task-Automate/internal/infrastructure/config"
	"github.com/DingxDon/Task-Automate/internal/infrastructure/history"
	"github.com/DingxDon/Task-Automate/internal/infrastructure/pip"
	"github.com/DingxDon/Task-Automate/internal/infrastructure/pydeps"
	"github.com/DingxDon/Task-Automate/internal/infrastructure/ratelimit"
	"github.com/DingxDon/Task-Automate/internal/infrastructure/runner"
	"github.com/DingxDon/Task-Automate/internal/infrastructure/scripts"
	"github.com/DingxDon/Task-Automate/internal/pkg/logger"
	"github.com/DingxDon/Task-Automate/internal/ports"
	"github.com/DingxDon/Task-Automate/internal/services"
)

// Container holds the dependency graph shared by all commands.
type Container struct {
	Config        domain.Config
	ConfigLoader  *config.FileLoader
	Limiter       *ratelimit.Window
	Installer     ports.PackageInstaller
	Runner        ports.ScriptRunner
	Scripts       *scripts.Store
	Pages         *scripts.Store
	History       ports.HistoryStore
	DoctorService *services.DoctorService
	Logger        ports.Logger
}

// BuildContainer constructs the graph. The generation client is dialed
// separately (see Pipeline) so commands that never talk to the remote
// service work without an API key.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	limiter := ratelimit.New(cfg.RequestBudget())

	historyStore, err := history.NewSQLiteStore("")
	if err != nil {
		// History is best-effort; run without it rather than refuse to start.
		log.Warn("run history unavailable", map[string]interface{}{"error": err.Error()})
		historyStore = nil
	}

	c := &Container{
		Config:       cfg,
		ConfigLoader: cfgLoader,
		Limiter:      limiter,
		Installer:    pip.NewInstaller(cfg.Interpreter(), log),
		Runner:       runner.NewPythonRunner(cfg.Interpreter(), log),
		Scripts:      scripts.NewStore(cfg.Scripts.Dir, ".py"),
		Pages:        scripts.NewStore(cfg.Scripts.Dir, ".html"),
		Logger:       log,
	}
	if historyStore != nil {
		c.History = historyStore
	}
	c.DoctorService = &services.DoctorService{
		ConfigProvider: cfgLoader,
		History:        c.History,
	}
	return c, nil
}

// Pipeline dials the generation service and assembles a pipeline around it.
// The returned closer releases the transport.
func (c *Container) Pipeline(ctx context.Context) (*services.PipelineService, func() error, error) {
	client, err := ai.NewFromConfig(ctx, c.Config, c.Limiter, c.Logger)
	if err != nil {
		return nil, nil, err
	}
	svc := &services.PipelineService{
		Generator: client,
		Installer: c.Installer,
		Runner:    c.Runner,
		Pages:     c.Pages,
		History:   c.History,
		Logger:    c.Logger,
		Extract:   codeblock.Extract,
		Scan:      pydeps.Scan,
	}
	return svc, client.Close, nil
}

// Offline assembles a pipeline without a generation client, sufficient for
// executing scripts that already exist in the store.
func (c *Container) Offline() *services.PipelineService {
	return &services.PipelineService{
		Installer: c.Installer,
		Runner:    c.Runner,
		Pages:     c.Pages,
		History:   c.History,
		Logger:    c.Logger,
		Extract:   codeblock.Extract,
		Scan:      pydeps.Scan,
	}
}
