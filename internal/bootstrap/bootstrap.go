package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"cafetalk/internal/modules/progress/adapter/in"
	"cafetalk/internal/modules/progress/adapter/out"
	"cafetalk/internal/modules/progress/dto"
	progressin "cafetalk/internal/modules/progress/port/in"
	progressout "cafetalk/internal/modules/progress/port/out"
	"cafetalk/internal/modules/progress/service"
	"cafetalk/internal/modules/progress/usecase"
	"cafetalk/internal/platform/clock"
	"cafetalk/internal/platform/config"
	"cafetalk/internal/platform/id"
	"cafetalk/internal/platform/logging"
	"cafetalk/internal/ui/dashboard"
)

type App struct {
	ProgressCLI in.CLIHandler
	Hub         *out.Hub

	cfg     *config.Config
	usecase progressin.Usecase
	logger  *zap.Logger
	closers []func() error
}

// New wires the progress module from cfg. Close releases the stores it opened.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	logger = logging.OrNop(logger)
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	app := &App{cfg: cfg, logger: logger}

	var slot progressout.StateSlot
	switch cfg.Storage.Backend {
	case config.BackendBolt:
		bolt, err := out.OpenBoltStateSlot(cfg.BoltPath())
		if err != nil {
			return nil, fmt.Errorf("open bolt slot: %w", err)
		}
		app.closers = append(app.closers, bolt.Close)
		slot = bolt
	default:
		slot = out.NewFileStateSlot(cfg.StatePath())
	}

	var journal progressout.SessionJournal
	if cfg.Journal.Enabled {
		journal = out.NewVaultSessionJournal(cfg.JournalDir())
	}

	index, err := out.OpenSQLiteSessionIndex(cfg.IndexPath())
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("open session index: %w", err)
	}
	app.closers = append(app.closers, index.Close)

	app.Hub = out.NewHub(logger)
	app.Hub.Subscribe(out.LogEvents(logger))

	svc := service.NewProgressService(
		clock.SystemClock{Location: loc},
		id.UUID{},
		slot,
		app.Hub,
		journal,
		index,
		logger,
	)
	app.usecase = usecase.NewInteractor(svc, out.NewXLSXExporter())
	app.ProgressCLI = in.NewCLIHandler(app.usecase)
	return app, nil
}

// Close releases stores in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// NewReminder builds the daily streak reminder from the configured time and zone.
func (a *App) NewReminder(notify func(string)) (*in.Reminder, error) {
	loc, err := a.cfg.Location()
	if err != nil {
		return nil, err
	}
	hour, minute, err := a.cfg.ReminderClock()
	if err != nil {
		return nil, err
	}
	return in.NewReminder(loc, hour, minute, a.usecase, notify, a.logger), nil
}

// NewWatcher watches the progress file so edits by another process are picked up.
// It returns nil for the bolt backend, which holds an exclusive lock anyway.
func (a *App) NewWatcher() (*in.StateWatcher, error) {
	if a.cfg.Storage.Backend != config.BackendFile {
		return nil, nil
	}
	return in.NewStateWatcher(a.cfg.StatePath(), a.usecase, a.logger)
}

// RunDashboard runs the TUI until the user quits. Hub events are forwarded to
// the program, and the state file is watched for external edits.
func RunDashboard(ctx context.Context, app *App) error {
	program := tea.NewProgram(dashboard.New(app.ProgressCLI), tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := app.Hub.Subscribe(func(_ context.Context, event dto.ProgressEvent) {
		program.Send(dashboard.EventMsg{Event: event})
	})
	defer unsubscribe()

	watcher, err := app.NewWatcher()
	if err != nil {
		return err
	}
	if watcher != nil {
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
