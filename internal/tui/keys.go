package tui

import "github.com/charmbracelet/bubbles/key"

// chatKeyMap lists the chat screen shortcuts
type chatKeyMap struct {
	Send            key.Binding
	Newline         key.Binding
	PickImage       key.Binding
	ToggleRecording key.Binding
	RemoveImage     key.Binding
	RemoveAudio     key.Binding
	CopyReply       key.Binding
	SaveTranscript  key.Binding
	Quit            key.Binding
}

var chatKeys = chatKeyMap{
	Send: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "ارسال"),
	),
	Newline: key.NewBinding(
		key.WithKeys("alt+enter", "ctrl+j"),
		key.WithHelp("Alt+Enter", "خط جدید"),
	),
	PickImage: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("Ctrl+O", "عکس"),
	),
	ToggleRecording: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("Ctrl+R", "ضبط"),
	),
	RemoveImage: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("Ctrl+X", "حذف عکس"),
	),
	RemoveAudio: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("Ctrl+G", "حذف صدا"),
	),
	CopyReply: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("Ctrl+Y", "کپی پاسخ"),
	),
	SaveTranscript: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("Ctrl+S", "ذخیره گفتگو"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("Esc", "خروج"),
	),
}

// shortHelp is the order shown in the status bar
func (k chatKeyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Newline, k.PickImage, k.ToggleRecording, k.RemoveImage, k.RemoveAudio, k.CopyReply, k.SaveTranscript, k.Quit}
}
