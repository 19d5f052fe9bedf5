package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/damyar/vetchat/internal/config"
	apierrors "github.com/damyar/vetchat/internal/errors"
	"github.com/damyar/vetchat/internal/models"
	"github.com/damyar/vetchat/internal/render"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAskCommand(t *testing.T) {
	if askCmd.Use != "ask [question]" {
		t.Errorf("Use = %q", askCmd.Use)
	}
	for _, name := range []string{"image", "audio", "audio-mime", "file", "output", "raw"} {
		if askCmd.Flags().Lookup(name) == nil {
			t.Errorf("flag %s not found", name)
		}
	}
	if err := askCmd.Args(askCmd, []string{"a", "b"}); err == nil {
		t.Error("ask should take at most one argument")
	}
}

func TestReadPrompt(t *testing.T) {
	promptFile := writeTempFile(t, "prompt.md", []byte("from file"))

	tests := []struct {
		name  string
		args  []string
		file  string
		stdin string
		want  string
	}{
		{"argument wins", []string{"from arg"}, promptFile, "from stdin", "from arg"},
		{"file before stdin", nil, promptFile, "from stdin", "from file"},
		{"piped stdin", nil, "", "from stdin", "from stdin"},
		{"nothing", nil, "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := &Dependencies{Stdin: strings.NewReader(tt.stdin)}
			got, err := readPrompt(deps, tt.args, tt.file)
			if err != nil {
				t.Fatalf("readPrompt() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("readPrompt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadPrompt_MissingFile(t *testing.T) {
	_, err := readPrompt(&Dependencies{}, nil, filepath.Join(t.TempDir(), "missing.md"))
	if err == nil {
		t.Fatal("expected an error for a missing prompt file")
	}
}

func TestBuildSubmission(t *testing.T) {
	image := writeTempFile(t, "cow.png", pngHeader)
	audio := writeTempFile(t, "cough.webm", []byte("webm-bytes"))

	sub, err := buildSubmission("  لنگش چیست؟ \n", askOptions{image: image, audio: audio})
	if err != nil {
		t.Fatalf("buildSubmission() error: %v", err)
	}
	if sub.Text != "لنگش چیست؟" {
		t.Errorf("Text = %q", sub.Text)
	}
	if sub.Image == nil || sub.Image.MIMEType != "image/png" {
		t.Errorf("Image = %+v", sub.Image)
	}
	if sub.Audio == nil || sub.Audio.MIMEType != "audio/webm" {
		t.Errorf("Audio = %+v", sub.Audio)
	}
}

func TestBuildSubmission_AudioMIMEOverride(t *testing.T) {
	audio := writeTempFile(t, "note.raw", []byte("pcm"))

	sub, err := buildSubmission("", askOptions{audio: audio, audioMIME: "audio/ogg"})
	if err != nil {
		t.Fatalf("buildSubmission() error: %v", err)
	}
	if sub.Audio.MIMEType != "audio/ogg" {
		t.Errorf("MIMEType = %q", sub.Audio.MIMEType)
	}
}

func TestBuildSubmission_BadImage(t *testing.T) {
	notImage := writeTempFile(t, "notes.txt", []byte("plain text"))

	_, err := buildSubmission("x", askOptions{image: notImage})
	if !errors.Is(err, apierrors.ErrUnsupportedMedia) {
		t.Fatalf("expected ErrUnsupportedMedia, got %v", err)
	}
}

func TestRunAsk_Raw(t *testing.T) {
	td := newTestDeps(t, config.DefaultConfig())
	td.generator.Text = "**استراحت** و آب کافی"
	image := writeTempFile(t, "sheep.png", pngHeader)

	err := runAsk(context.Background(), td.Dependencies, "گوسفندم تب دارد", askOptions{image: image})
	if err != nil {
		t.Fatalf("runAsk() error: %v", err)
	}

	if got := td.stdout.String(); got != "**استراحت** و آب کافی" {
		t.Errorf("stdout = %q, want the raw reply", got)
	}

	req := td.generator.LastRequest
	if req == nil {
		t.Fatal("no request was sent")
	}
	if req.SystemInstruction == nil || req.SystemInstruction.Parts[0].Text != models.SystemInstruction {
		t.Error("request should carry the doctor's system instruction")
	}
	last := req.Contents[len(req.Contents)-1]
	if last.Role != string(models.RoleUser) {
		t.Errorf("last content role = %q", last.Role)
	}
	if len(last.Parts) != 2 || last.Parts[0].InlineData == nil || last.Parts[1].Text != "گوسفندم تب دارد" {
		t.Errorf("user parts = %+v", last.Parts)
	}
	if len(td.copied) != 0 {
		t.Error("raw output must not touch the clipboard")
	}
}

func TestRunAsk_EmptyReply(t *testing.T) {
	td := newTestDeps(t, config.DefaultConfig())
	td.generator.Text = ""

	if err := runAsk(context.Background(), td.Dependencies, "سلام", askOptions{raw: true}); err != nil {
		t.Fatalf("runAsk() error: %v", err)
	}
	if td.stdout.String() != models.NoAnswerText {
		t.Errorf("stdout = %q", td.stdout.String())
	}
}

func TestRunAsk_Failure(t *testing.T) {
	td := newTestDeps(t, config.DefaultConfig())
	td.generator.Err = apierrors.NewUsageLimitError("quota exceeded")

	err := runAsk(context.Background(), td.Dependencies, "سلام", askOptions{raw: true})
	if !apierrors.IsRateLimitError(err) {
		t.Fatalf("expected the usage limit cause, got %v", err)
	}
	if td.stdout.Len() != 0 {
		t.Errorf("nothing should be printed on stdout, got %q", td.stdout.String())
	}
	if !strings.Contains(td.stderr.String(), "usage limit") {
		t.Errorf("stderr = %q", td.stderr.String())
	}
}

func TestRunAsk_EmptySubmission(t *testing.T) {
	td := newTestDeps(t, config.DefaultConfig())

	err := runAsk(context.Background(), td.Dependencies, "   ", askOptions{})
	if !errors.Is(err, apierrors.ErrEmptySubmission) {
		t.Fatalf("expected ErrEmptySubmission, got %v", err)
	}
	if td.generator.CallCount() != 0 {
		t.Error("the model must not be called for an empty question")
	}
}

func TestRunAsk_OutputFile(t *testing.T) {
	td := newTestDeps(t, config.DefaultConfig())
	td.generator.Text = "پاسخ"
	outPath := filepath.Join(t.TempDir(), "reply.md")

	if err := runAsk(context.Background(), td.Dependencies, "سوال", askOptions{output: outPath}); err != nil {
		t.Fatalf("runAsk() error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if string(data) != "پاسخ" {
		t.Errorf("file = %q", data)
	}
	if td.stdout.Len() != 0 {
		t.Error("stdout should stay empty when writing to a file")
	}
}

func TestRunAsk_MissingAPIKey(t *testing.T) {
	td := newTestDeps(t, config.DefaultConfig())
	td.Generator = nil

	err := runAsk(context.Background(), td.Dependencies, "سلام", askOptions{raw: true})
	if !errors.Is(err, apierrors.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if !strings.Contains(td.stderr.String(), "GEMINI_API_KEY") {
		t.Errorf("stderr = %q", td.stderr.String())
	}
}

func TestAskCommand_ShowsHelpWithoutInput(t *testing.T) {
	td := newTestDeps(t, config.DefaultConfig())

	cmd := NewAskCmd(td.Dependencies)
	cmd.SetOut(td.stdout)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(td.stdout.String(), "Usage:") {
		t.Errorf("expected help output, got %q", td.stdout.String())
	}
	if td.generator.CallCount() != 0 {
		t.Error("the model must not be called without input")
	}
}

func TestAskCommand_ExecuteWithArgument(t *testing.T) {
	td := newTestDeps(t, config.DefaultConfig())
	td.generator.Text = "جواب"

	cmd := NewAskCmd(td.Dependencies)
	cmd.SetArgs([]string{"--raw", "سوال"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if td.stdout.String() != "جواب" {
		t.Errorf("stdout = %q", td.stdout.String())
	}
}

func TestCopyReply(t *testing.T) {
	td := newTestDeps(t, config.DefaultConfig())

	copyReply(td.Dependencies, td.stderr, "متن")
	if len(td.copied) != 1 || td.copied[0] != "متن" {
		t.Errorf("copied = %v", td.copied)
	}
	if !strings.Contains(td.stderr.String(), models.CopiedToClipboard) {
		t.Errorf("stderr = %q", td.stderr.String())
	}

	td.stderr.Reset()
	td.Clipboard = func(string) error { return errors.New("no display") }
	copyReply(td.Dependencies, td.stderr, "متن")
	if !strings.Contains(td.stderr.String(), "no display") {
		t.Errorf("stderr = %q", td.stderr.String())
	}
}

func TestRenderAnswer(t *testing.T) {
	opts := render.DefaultOptions().WithStyle(render.ThemeNoTTY)

	tests := []struct {
		name      string
		termWidth int
		maxWidth  int
	}{
		// the bubble border adds two columns to the clamped width
		{"narrow terminal clamps up", 20, 42},
		{"normal terminal", 80, 78},
		{"wide terminal clamps down", 300, 122},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderAnswer("درمان با استراحت", tt.termWidth, opts)
			if !strings.Contains(out, models.ModelLabel) {
				t.Error("answer should carry the doctor's label")
			}
			if !strings.Contains(out, "درمان با استراحت") {
				t.Error("answer should contain the reply text")
			}
			for _, line := range strings.Split(out, "\n") {
				if w := lipgloss.Width(line); w > tt.maxWidth {
					t.Errorf("line width %d exceeds %d: %q", w, tt.maxWidth, line)
				}
			}
		})
	}
}

func TestTerminalHelpersOnBuffers(t *testing.T) {
	td := newTestDeps(t, config.DefaultConfig())
	if isTerminal(td.stdout) {
		t.Error("a buffer is not a terminal")
	}
	if getTerminalWidth(td.stdout) != 80 {
		t.Error("non-terminal width should default to 80")
	}
}
