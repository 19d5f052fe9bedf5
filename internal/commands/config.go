package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/damyar/vetchat/internal/config"
	"github.com/damyar/vetchat/internal/render"
)

// NewConfigCmd creates a new config command
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	if deps == nil {
		deps = defaultDeps
	}

	var showFlag bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Open configuration menu",
		Long: `Interactive menu to configure vetchat settings.

Use --show to print the effective configuration and file locations instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showFlag {
				return showConfig(deps)
			}
			cfg := loadSettings(deps)
			applyTheme(deps, cfg.TUITheme)
			_, err := deps.TUI.RunConfig(cfg)
			return err
		},
	}
	cmd.Flags().BoolVar(&showFlag, "show", false, "Print the effective configuration and exit")
	return cmd
}

// showConfig prints the config file, the log location and the credential
// source. The key itself is never printed.
func showConfig(deps *Dependencies) error {
	cfg := loadSettings(deps)
	out := deps.stdout()

	configPath, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	logPath, err := config.GetLogPath(cfg)
	if err != nil {
		return err
	}
	style := cfg.Markdown.Style
	if !render.IsBuiltinStyle(style) {
		style += " (style file)"
	}

	if err := config.LoadEnvFiles(); err != nil {
		fmt.Fprintf(deps.stderr(), "Warning: %v\n", err)
	}
	keyStatus := "set"
	if _, err := config.GetAPIKey(); err != nil {
		keyStatus = "missing (set GEMINI_API_KEY)"
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Fprintf(out, "Config:  %s\n", configPath)
	fmt.Fprintf(out, "Log:     %s\n", logPath)
	fmt.Fprintf(out, "Style:   %s\n", style)
	fmt.Fprintf(out, "API key: %s\n\n", keyStatus)
	fmt.Fprintln(out, string(data))
	return nil
}

var configCmd = NewConfigCmd(nil)
