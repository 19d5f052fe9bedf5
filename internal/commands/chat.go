package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/damyar/vetchat/internal/media"
	"github.com/damyar/vetchat/internal/render"
	"github.com/damyar/vetchat/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat with Dr. Damyar.

Enter sends, Alt+Enter adds a line, Ctrl+O attaches a photo and Ctrl+R
starts or stops a voice note. Esc or Ctrl+C ends the session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context(), defaultDeps)
	},
}

func runChat(ctx context.Context, deps *Dependencies) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(deps)
	if err != nil {
		tui.PrintError(err)
		return err
	}
	defer a.Close()

	applyTheme(deps, a.cfg.TUITheme)

	recorder := media.NewRecorder(
		media.NewCommandSource(a.cfg.Recorder.Command),
		a.cfg.Recorder.MIMEType,
		media.WithLogger(a.logger),
	)

	opts := tui.ChatOptions{
		ModelName: a.modelName,
		Recorder:  recorder,
		Render:    render.OptionsFromConfig(a.cfg),
		Clipboard: deps.Clipboard,
		Logger:    a.logger,
	}

	if err := deps.TUI.RunChat(ctx, a.session, opts); err != nil {
		a.logger.Error("chat ended with error", "error", err)
		return fmt.Errorf("chat failed: %w", err)
	}
	return nil
}
