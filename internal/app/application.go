package app

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Rorical/RoriStake/internal/chain"
	"github.com/Rorical/RoriStake/internal/config"
	"github.com/Rorical/RoriStake/internal/core"
	"github.com/Rorical/RoriStake/internal/dispatcher"
	"github.com/Rorical/RoriStake/internal/eventbus"
	"github.com/Rorical/RoriStake/internal/logger"
	"github.com/Rorical/RoriStake/internal/models"
	"github.com/Rorical/RoriStake/internal/notify"
	"github.com/Rorical/RoriStake/internal/stake"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	log        *zap.Logger
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.StakeService
	model      *AppModel
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := newFileLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		log.Warn("event bus", zap.String("operation", e.Operation), zap.Error(e.Err))
	})

	disp := dispatcher.NewEventDispatcher(eb)

	// A nil submitter keeps the service alive and reports every submission as a transport failure
	var submitter stake.Submitter
	if cfg.IsValid() {
		submitter = chain.New(cfg.GetBaseURL(), cfg.GetTimeout())
	}
	service := core.NewStakeService(cfg, submitter, eb, log)

	model := NewAppModel(createInitialAppModel(cfg, service), disp, log)

	return &Application{
		config:     cfg,
		log:        log,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      model,
	}, nil
}

func newFileLogger(cfg *config.Config) (*zap.Logger, error) {
	path := cfg.LogFile
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "roristake.log")
	}
	return logger.New("roristake", cfg.Server.Env, path)
}

func (app *Application) Start() error {
	app.log.Info("starting",
		zap.String("profile", app.config.ActiveProfile),
		zap.String("base_url", app.config.GetBaseURL()),
	)
	app.service.Start()

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
	_ = app.log.Sync()
}

func createInitialAppModel(cfg *config.Config, service *core.StakeService) models.AppModel {
	return models.AppModel{
		Header:       core.WelcomeLines(cfg),
		Stakes:       make([]models.StakeRecord, 0),
		Toasts:       notify.NewQueue(notify.DefaultCapacity, notify.DefaultTTL),
		Status:       "Ready",
		ServiceReady: service.IsReady(),
	}
}
