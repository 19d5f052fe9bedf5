package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/damyar/vetchat/internal/api"
	"github.com/damyar/vetchat/internal/chat"
	"github.com/damyar/vetchat/internal/config"
	"github.com/damyar/vetchat/internal/models"
	"github.com/damyar/vetchat/internal/render"
	"github.com/damyar/vetchat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(ctx context.Context, session *chat.Session, opts tui.ChatOptions) error
	RunConfig(cfg config.Config) (config.Config, error)
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Generator replaces the HTTP model client when set
	Generator api.ContentGenerator

	// TUI is the terminal user interface.
	TUI TUIInterface

	// LoadConfig reads the user configuration
	LoadConfig func() (config.Config, error)

	// Clipboard receives replies when copying is enabled
	Clipboard func(string) error

	// Stdin, Stdout and Stderr default to the process streams
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(ctx context.Context, session *chat.Session, opts tui.ChatOptions) error {
	return tui.RunChat(ctx, session, opts)
}

func (d *DefaultTUI) RunConfig(cfg config.Config) (config.Config, error) {
	return tui.RunConfig(cfg)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:        &DefaultTUI{},
		LoadConfig: config.LoadConfig,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

var defaultDeps = NewDependencies()

func (d *Dependencies) stdout() io.Writer {
	if d.Stdout == nil {
		return os.Stdout
	}
	return d.Stdout
}

func (d *Dependencies) stderr() io.Writer {
	if d.Stderr == nil {
		return os.Stderr
	}
	return d.Stderr
}

func (d *Dependencies) stdin() io.Reader {
	if d.Stdin == nil {
		return os.Stdin
	}
	return d.Stdin
}

// app is everything a command needs once configuration is resolved
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	closeLog  func()
	gateway   *api.Gateway
	session   *chat.Session
	modelName string
}

// Close flushes the log file
func (a *app) Close() {
	if a.closeLog != nil {
		a.closeLog()
	}
}

// loadSettings reads the config file and applies the global flags.
// A broken config file is reported but does not stop the program.
func loadSettings(deps *Dependencies) config.Config {
	load := deps.LoadConfig
	if load == nil {
		load = config.LoadConfig
	}
	cfg, err := load()
	if err != nil {
		fmt.Fprintf(deps.stderr(), "Warning: %v (using defaults)\n", err)
	}

	if modelFlag != "" {
		cfg.Model = modelFlag
	}
	if themeFlag != "" {
		cfg.TUITheme = themeFlag
	}
	return cfg
}

// applyTheme activates the configured TUI theme
func applyTheme(deps *Dependencies, name string) {
	if name == "" {
		return
	}
	if !render.SetTUITheme(name) {
		fmt.Fprintf(deps.stderr(), "Warning: unknown theme '%s', keeping %s\n", name, render.GetTUITheme().Name)
		return
	}
	tui.UpdateTheme()
}

// newApp wires config, logging, the model client, the gateway and a fresh
// conversation. The API key is only required when no generator is injected.
func newApp(deps *Dependencies) (*app, error) {
	cfg := loadSettings(deps)

	if err := config.LoadEnvFiles(); err != nil {
		fmt.Fprintf(deps.stderr(), "Warning: %v\n", err)
	}

	logger, closeLog, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(deps.stderr(), "Warning: logging disabled: %v\n", err)
	}

	a := &app{
		cfg:       cfg,
		logger:    logger,
		closeLog:  closeLog,
		modelName: cfg.Model,
	}

	generator := deps.Generator
	if generator == nil {
		apiKey, err := config.GetAPIKey()
		if err != nil {
			a.Close()
			return nil, err
		}

		clientOpts := []api.ClientOption{
			api.WithModel(cfg.Model),
			api.WithBaseURL(cfg.BaseURL),
			api.WithTimeout(cfg.Timeout()),
			api.WithProxy(cfg.Proxy),
			api.WithClientLogger(logger),
		}
		client, err := api.NewClient(apiKey, clientOpts...)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create client: %w", err)
		}
		a.modelName = client.GetModel()
		generator = client
	}

	a.gateway = api.NewGateway(generator, api.WithGatewayLogger(logger))
	store := chat.NewStore(chat.WithGreeting(models.Greeting))
	a.session = chat.NewSession(store, a.gateway, chat.WithSessionLogger(logger))

	logger.Info("session ready", "model", a.modelName, "base_url", cfg.BaseURL)
	return a, nil
}
