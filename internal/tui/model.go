package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/damyar/vetchat/internal/chat"
	apierrors "github.com/damyar/vetchat/internal/errors"
	"github.com/damyar/vetchat/internal/models"
	"github.com/damyar/vetchat/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	replyMsg struct {
		message models.Message
	}
	recordStartedMsg struct {
		err error
	}
	recordStoppedMsg struct {
		audio *models.Payload
		ok    bool
	}
)

// Recorder is the microphone capture the chat screen drives
type Recorder interface {
	Start(ctx context.Context) error
	Stop() (*models.Payload, bool)
	IsRecording() bool
	RecordedBytes() int64
}

// ChatOptions configures the chat screen
type ChatOptions struct {
	ModelName string
	Recorder  Recorder
	Render    render.Options
	// Clipboard writes the copied reply; defaults to the system clipboard
	Clipboard func(string) error
	Logger    *slog.Logger
	// ImageDir is where the image picker starts
	ImageDir string
	// TranscriptDir receives saved transcripts; defaults to the working directory
	TranscriptDir string
}

// Model represents the TUI state
type Model struct {
	ctx           context.Context
	session       *chat.Session
	recorder      Recorder
	modelName     string
	clipboard     func(string) error
	logger        *slog.Logger
	imageDir      string
	transcriptDir string

	// UI components
	viewport     viewport.Model
	composer     Composer
	spinner      spinner.Model
	conversation *Conversation
	picker       ImagePickerModel

	// State
	ready          bool
	picking        bool
	recordingBusy  bool
	notice         string
	status         string
	err            error
	animationFrame int

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model over session
func NewChatModel(ctx context.Context, session *chat.Session, opts ChatOptions) Model {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Render.Style == "" {
		opts.Render = render.DefaultOptions()
	}

	return Model{
		ctx:           ctx,
		session:       session,
		recorder:      opts.Recorder,
		modelName:     opts.ModelName,
		clipboard:     opts.Clipboard,
		logger:        opts.Logger,
		imageDir:      opts.ImageDir,
		transcriptDir: opts.TranscriptDir,
		composer:      NewComposer(),
		spinner:       s,
		conversation:  NewConversation(opts.Render),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

func (m Model) loading() bool {
	return m.session.Store().IsLoading()
}

func (m Model) recording() bool {
	return m.recorder != nil && m.recorder.IsRecording()
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(size.Width, size.Height)
	}

	// The notice blocks everything until a key dismisses it
	if m.notice != "" {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.notice = ""
			return m, nil
		}
	}

	if m.picking {
		switch msg.(type) {
		case replyMsg, recordStartedMsg, recordStoppedMsg, animationTickMsg, spinner.TickMsg:
			// keep background work flowing while the picker is open
		default:
			return m.updatePicker(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""

		switch {
		case key.Matches(msg, chatKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, chatKeys.Send):
			return m.submit()

		case key.Matches(msg, chatKeys.PickImage):
			m.picking = true
			m.picker = NewImagePickerModel(m.imageDir)
			return m, m.picker.Init()

		case key.Matches(msg, chatKeys.ToggleRecording):
			return m.toggleRecording()

		case key.Matches(msg, chatKeys.RemoveImage):
			m.composer.RemoveImage()
			return m, nil

		case key.Matches(msg, chatKeys.RemoveAudio):
			m.composer.RemoveAudio()
			return m, nil

		case key.Matches(msg, chatKeys.CopyReply):
			m.copyLastReply()
			return m, nil

		case key.Matches(msg, chatKeys.SaveTranscript):
			m.saveTranscript()
			return m, nil
		}

		// Only keys reach the text area so terminal escape sequences don't leak in
		m.composer, cmd = m.composer.Update(msg)
		cmds = append(cmds, cmd)

	case replyMsg:
		m.refreshViewport()
		m.viewport.GotoBottom()

	case recordStartedMsg:
		m.recordingBusy = false
		if msg.err != nil {
			if apierrors.IsPermissionDenied(msg.err) {
				m.notice = models.MicrophoneDeniedText
			} else if !errors.Is(msg.err, apierrors.ErrAlreadyRecording) {
				m.err = msg.err
			}
			return m, nil
		}
		m.err = nil
		cmds = append(cmds, animationTick())

	case recordStoppedMsg:
		m.recordingBusy = false
		if msg.ok {
			m.composer.SetAudio(msg.audio)
		}

	case spinner.TickMsg:
		if m.loading() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.loading() || m.recording() {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 3     // Header panel with border
	disclaimerHeight := 1 // Banner under the messages
	inputHeight := 7      // Composer with label, chips and border
	statusHeight := 1     // Status bar
	padding := 3          // Messages border and error line

	vpHeight := height - headerHeight - disclaimerHeight - inputHeight - statusHeight - padding
	if vpHeight < 5 {
		vpHeight = 5
	}

	contentWidth := width - 2

	if !m.ready {
		m.viewport = viewport.New(contentWidth-4, vpHeight)
		// Letters belong to the composer; only paging keys scroll
		m.viewport.KeyMap = viewport.KeyMap{
			PageDown: key.NewBinding(key.WithKeys("pgdown")),
			PageUp:   key.NewBinding(key.WithKeys("pgup")),
			Up:       key.NewBinding(key.WithKeys("up")),
			Down:     key.NewBinding(key.WithKeys("down")),
		}
		m.ready = true
	} else {
		m.viewport.Width = contentWidth - 4
		m.viewport.Height = vpHeight
	}
	m.composer.SetWidth(contentWidth - 4)
	m.conversation.SetWidth(contentWidth - 12)
	m.refreshViewport()
}

// submit hands the composer's content to the session. It does nothing when
// the composer is empty or a reply is still pending.
func (m Model) submit() (tea.Model, tea.Cmd) {
	sub, ok := m.composer.Submit(m.loading())
	if !ok {
		return m, nil
	}

	pending, err := m.session.Begin(sub)
	if err != nil {
		m.logger.Debug("submission not accepted", "error", err)
		return m, nil
	}

	m.err = nil
	m.animationFrame = 0
	m.refreshViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.resolve(pending),
		m.spinner.Tick,
		animationTick(),
	)
}

// resolve waits for the model reply off the event loop
func (m Model) resolve(pending *chat.Pending) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return replyMsg{message: pending.Resolve(ctx)}
	}
}

func (m Model) toggleRecording() (tea.Model, tea.Cmd) {
	if m.recordingBusy {
		return m, nil
	}
	if m.recorder == nil {
		m.notice = models.MicrophoneDeniedText
		return m, nil
	}

	rec := m.recorder
	m.recordingBusy = true

	if rec.IsRecording() {
		return m, func() tea.Msg {
			audio, ok := rec.Stop()
			return recordStoppedMsg{audio: audio, ok: ok}
		}
	}

	ctx := m.ctx
	return m, func() tea.Msg {
		return recordStartedMsg{err: rec.Start(ctx)}
	}
}

func (m Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if m.picker.Done() {
		m.picking = false
		if image := m.picker.Image(); image != nil {
			m.composer.SetImage(image)
			m.logger.Debug("image attached", "name", image.Name, "mime_type", image.MIMEType, "bytes", image.Size())
		}
	}
	return m, cmd
}

func (m *Model) copyLastReply() {
	messages := m.session.Store().Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].IsUser() || messages[i].Failed {
			continue
		}
		if err := m.clipboard(messages[i].Text); err != nil {
			m.err = fmt.Errorf("clipboard: %w", err)
			return
		}
		m.status = models.CopiedToClipboard
		return
	}
	m.status = models.NothingToCopyText
}

// saveTranscript writes the conversation so far as Markdown
func (m *Model) saveTranscript() {
	path, err := chat.SaveTranscript(m.transcriptDir, m.session.Store().Messages(), chat.ExportOptions{Model: m.modelName})
	if err != nil {
		m.logger.Error("transcript export failed", "error", err)
		m.err = err
		return
	}
	m.logger.Info("transcript saved", "path", path)
	m.status = models.TranscriptSaved + ": " + path
}

// refreshViewport re-renders the stored conversation into the viewport
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.conversation.Render(m.session.Store().Messages()))
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  " + models.LoadingText)
	}

	contentWidth := m.width - 2

	if m.notice != "" {
		return m.renderNotice()
	}

	var sections []string

	// Header
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("✚ "+models.AppTitle),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.modelName),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Messages or picker
	if m.picking {
		sections = append(sections, m.picker.View(contentWidth))
	} else {
		var messagesContent string
		if m.session.Store().Len() == 0 {
			messagesContent = renderWelcome(m.viewport.Width, m.viewport.Height)
		} else {
			messagesContent = m.viewport.View()
		}
		sections = append(sections, messagesAreaStyle.
			Width(contentWidth).
			Height(m.viewport.Height).
			Render(messagesContent))
	}

	sections = append(sections, disclaimerStyle.Width(contentWidth).Render(models.Disclaimer))

	// Composer
	var inputContent string
	if m.loading() {
		inputContent = m.renderLoadingAnimation()
	} else {
		var recorded int64
		if m.recording() {
			recorded = m.recorder.RecordedBytes()
		}
		inputContent = m.composer.View(m.recording(), recorded)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	if err := m.displayError(); err != nil {
		sections = append(sections, FormatError(err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// displayError prefers a local failure over the cause of the last failed reply
func (m Model) displayError() error {
	if m.err != nil {
		return m.err
	}
	return m.session.Store().Err()
}

// renderNotice renders the blocking microphone notice
func (m Model) renderNotice() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		noticeTitleStyle.Render("🎙 "+models.MicrophoneDeniedText),
		"",
		hintStyle.Render(models.DismissNoticeHint),
	)
	box := noticeStyle.Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderLoadingAnimation renders the animated "doctor is reviewing" indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	frame := m.animationFrame

	spin := lipgloss.NewStyle().
		Foreground(gradientColors[frame%len(gradientColors)]).
		Bold(true).
		Render(chars[frame%len(chars)])

	barWidth := 16
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		style := lipgloss.NewStyle().Foreground(gradientColors[(i+frame)%len(gradientColors)])
		if (i+frame/2)%barWidth < 4 {
			bar.WriteString(style.Render("█"))
		} else {
			bar.WriteString(style.Render("░"))
		}
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(models.LoadingText)
	return fmt.Sprintf("%s %s %s", spin, bar.String(), text)
}

// renderStatusBar renders the bottom status bar with shortcuts, or the last feedback
func (m Model) renderStatusBar(width int) string {
	if m.status != "" {
		return statusBarStyle.Width(width).Align(lipgloss.Center).Render(feedbackStyle.Render(m.status))
	}

	var items []string
	for _, b := range chatKeys.shortHelp() {
		items = append(items, statusKeyStyle.Render(b.Help().Key)+statusDescStyle.Render(" "+b.Help().Desc))
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// RunChat starts the chat TUI and releases the microphone on exit
func RunChat(ctx context.Context, session *chat.Session, opts ChatOptions) error {
	m := NewChatModel(ctx, session, opts)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()

	if opts.Recorder != nil && opts.Recorder.IsRecording() {
		opts.Recorder.Stop()
	}
	return err
}
