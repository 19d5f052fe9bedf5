package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/damyar/vetchat/internal/chat"
	"github.com/damyar/vetchat/internal/media"
	"github.com/damyar/vetchat/internal/models"
	"github.com/damyar/vetchat/internal/render"
	"github.com/damyar/vetchat/internal/tui"
)

// askOptions holds the ask command flags
type askOptions struct {
	image     string
	audio     string
	audioMIME string
	file      string
	output    string
	raw       bool
}

// NewAskCmd creates the one-shot question command
func NewAskCmd(deps *Dependencies) *cobra.Command {
	if deps == nil {
		deps = defaultDeps
	}

	var opts askOptions

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask Dr. Damyar a single question",
		Long: `Send one question, optionally with a photo and a voice note, and print
the doctor's reply. The question can also come from a file (-f) or stdin.

Output is rendered as markdown on a terminal and printed raw when piped
or with --raw.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := readPrompt(deps, args, opts.file)
			if err != nil {
				return err
			}
			if strings.TrimSpace(prompt) == "" && opts.image == "" && opts.audio == "" {
				return cmd.Help()
			}
			return runAsk(cmd.Context(), deps, prompt, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.image, "image", "i", "", "Path to a photo of the animal")
	cmd.Flags().StringVarP(&opts.audio, "audio", "a", "", "Path to a recorded voice note")
	cmd.Flags().StringVar(&opts.audioMIME, "audio-mime", "", "MIME type of the voice note (default: from extension)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the question from file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save the reply to file")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print the reply text without styling")

	return cmd
}

var askCmd = NewAskCmd(nil)

// readPrompt takes the question from the argument, a file, or piped stdin, in that order
func readPrompt(deps *Dependencies, args []string, file string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}

	in := deps.stdin()
	if f, ok := in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return "", nil
		}
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// buildSubmission loads the attachments named by the flags
func buildSubmission(prompt string, opts askOptions) (chat.Submission, error) {
	sub := chat.Submission{Text: strings.TrimSpace(prompt)}

	if opts.image != "" {
		image, err := media.LoadImage(opts.image)
		if err != nil {
			return sub, fmt.Errorf("failed to load image: %w", err)
		}
		sub.Image = image
	}

	if opts.audio != "" {
		audio, err := media.LoadAudio(opts.audio, opts.audioMIME)
		if err != nil {
			return sub, fmt.Errorf("failed to load audio: %w", err)
		}
		sub.Audio = audio
	}

	return sub, nil
}

// runAsk executes a single exchange and outputs the reply
func runAsk(ctx context.Context, deps *Dependencies, prompt string, opts askOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := deps.stdout()
	errOut := deps.stderr()

	sub, err := buildSubmission(prompt, opts)
	if err != nil {
		fmt.Fprintln(errOut, tui.FormatError(err))
		return err
	}

	a, err := newApp(deps)
	if err != nil {
		fmt.Fprintln(errOut, tui.FormatError(err))
		return err
	}
	defer a.Close()

	applyTheme(deps, a.cfg.TUITheme)
	decorate := !opts.raw && isTerminal(out)

	if a.cfg.Verbose && decorate {
		fmt.Fprintf(errOut, "[verbose] Model: %s\n", a.modelName)
	}

	var spin *spinner
	if decorate && isTerminal(errOut) {
		spin = newSpinner(errOut, models.LoadingText)
		spin.start()
	}

	startTime := time.Now()
	user, reply, err := a.session.Submit(ctx, sub)
	requestDuration := time.Since(startTime)

	if err == nil && reply.Failed {
		err = a.session.Store().Err()
		if err == nil {
			err = errors.New(reply.Text)
		}
	}
	if err != nil {
		if spin != nil {
			spin.stopWithError()
		}
		fmt.Fprintln(errOut, tui.FormatError(err))
		return fmt.Errorf("ask failed: %w", err)
	}
	if spin != nil {
		spin.stopWithSuccess("Done")
	}

	a.logger.Debug("ask answered",
		"id", user.ID,
		"image", user.Image != nil,
		"audio", user.Audio != nil,
		"duration", requestDuration,
	)
	if a.cfg.Verbose && decorate {
		fmt.Fprintf(errOut, "[verbose] Request took %s\n", requestDuration.Round(time.Millisecond))
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(reply.Text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if decorate {
			fmt.Fprintln(errOut, successStyle().Render(fmt.Sprintf("✓ Reply saved to %s", opts.output)))
		}
		return nil
	}

	if !decorate {
		fmt.Fprint(out, reply.Text)
		return nil
	}

	if a.cfg.CopyToClipboard {
		copyReply(deps, errOut, reply.Text)
	}

	fmt.Fprintln(out, renderAnswer(reply.Text, getTerminalWidth(out), render.OptionsFromConfig(a.cfg)))
	return nil
}

// copyReply writes the reply to the clipboard and reports the outcome on errOut
func copyReply(deps *Dependencies, errOut io.Writer, text string) {
	write := deps.Clipboard
	if write == nil {
		write = clipboard.WriteAll
	}
	if err := write(text); err != nil {
		warn := lipgloss.NewStyle().Foreground(render.GetTUITheme().Error).
			Render(fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err))
		fmt.Fprintln(errOut, warn)
		return
	}
	fmt.Fprintln(errOut, successStyle().Render("✓ "+models.CopiedToClipboard))
}

func successStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(render.GetTUITheme().Primary)
}

// renderAnswer draws the doctor's label and the markdown reply in a bubble
// sized to the terminal
func renderAnswer(text string, termWidth int, opts render.Options) string {
	theme := render.GetTUITheme()

	bubbleWidth := termWidth - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	label := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("✦ " + models.ModelLabel)

	bubble := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Foreground(theme.Text).
		Padding(0, 1).
		MarginTop(1).
		Width(bubbleWidth).
		Render(render.Reply(text, opts.WithWidth(contentWidth)))

	return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 80
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// isTerminal reports whether w is connected to a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
