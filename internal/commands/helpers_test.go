package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/damyar/vetchat/internal/api"
	"github.com/damyar/vetchat/internal/chat"
	"github.com/damyar/vetchat/internal/config"
	"github.com/damyar/vetchat/internal/tui"
)

// fakeTUI records what the commands hand to the interface
type fakeTUI struct {
	chatCalls   int
	session     *chat.Session
	opts        tui.ChatOptions
	chatErr     error
	configCalls int
	configIn    config.Config
}

func (f *fakeTUI) RunChat(ctx context.Context, session *chat.Session, opts tui.ChatOptions) error {
	f.chatCalls++
	f.session = session
	f.opts = opts
	return f.chatErr
}

func (f *fakeTUI) RunConfig(cfg config.Config) (config.Config, error) {
	f.configCalls++
	f.configIn = cfg
	return cfg, nil
}

// testDeps isolates a command from the user's home, terminal and network
type testDeps struct {
	*Dependencies
	tui       *fakeTUI
	generator *api.MockGenerator
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	copied    []string
}

func newTestDeps(t *testing.T, cfg config.Config) *testDeps {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	resetGlobalFlags(t)

	cfg.LogFile = t.TempDir() + "/vetchat.log"

	td := &testDeps{
		tui:       &fakeTUI{},
		generator: &api.MockGenerator{Text: "reply"},
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
	}
	td.Dependencies = &Dependencies{
		Generator:  td.generator,
		TUI:        td.tui,
		LoadConfig: func() (config.Config, error) { return cfg, nil },
		Clipboard: func(s string) error {
			td.copied = append(td.copied, s)
			return nil
		},
		Stdin:  strings.NewReader(""),
		Stdout: td.stdout,
		Stderr: td.stderr,
	}
	return td
}

func resetGlobalFlags(t *testing.T) {
	t.Helper()
	oldModel, oldTheme := modelFlag, themeFlag
	modelFlag, themeFlag = "", ""
	t.Cleanup(func() {
		modelFlag, themeFlag = oldModel, oldTheme
	})
}
