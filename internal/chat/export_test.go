package chat

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/damyar/vetchat/internal/models"
)

func exportFixture(t *testing.T) []models.Message {
	t.Helper()
	s := NewStore(WithGreeting(models.Greeting), WithClock(fixedClock()))

	image := &models.Payload{MIMEType: "image/png", Data: make([]byte, 2048), Name: "cow.png"}
	if _, err := s.AppendUser("زخم روی پا", image, nil); err != nil {
		t.Fatal(err)
	}
	s.AppendModel("**ضدعفونی** کنید")

	audio := models.NewPayload("audio/wav", []byte("RIFF"))
	if _, err := s.AppendUser("", nil, audio); err != nil {
		t.Fatal(err)
	}
	s.AppendFailure(models.FailureText, errors.New("timeout"))
	return s.Messages()
}

func TestExportMarkdown(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	out := ExportMarkdown(exportFixture(t), ExportOptions{Model: "gemini-2.5-flash", Now: now})

	wants := []string{
		"# " + models.AppTitle,
		"**Model:** gemini-2.5-flash",
		"**Exported:** 2024-03-01 10:00:00",
		"**Messages:** 5",
		models.Disclaimer,
		"## " + models.UserLabel + " (09:30)",
		"زخم روی پا",
		models.ImageAttachedText + " (cow.png, 2.0 kB)",
		"**ضدعفونی** کنید",
		models.AudioAttachedText + " (4 B)",
		"## ⚠ " + models.ModelLabel,
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("transcript should contain %q\n%s", want, out)
		}
	}

	if strings.Count(out, "\n---\n") != 5 {
		t.Errorf("expected a rule after the header and between each of the 5 turns, got %d", strings.Count(out, "\n---\n"))
	}
	if strings.Contains(out, "RIFF") {
		t.Error("attachment bytes must not be written")
	}
}

func TestExportMarkdown_Empty(t *testing.T) {
	out := ExportMarkdown(nil, ExportOptions{})
	if !strings.Contains(out, "**Messages:** 0") {
		t.Errorf("unexpected transcript: %q", out)
	}
	if strings.Contains(out, "**Model:**") {
		t.Error("model line should be omitted when unknown")
	}
}

func TestTranscriptFileName(t *testing.T) {
	got := TranscriptFileName(time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC))
	if got != "vetchat-20240301-090507.md" {
		t.Errorf("TranscriptFileName() = %q", got)
	}
}

func TestSaveTranscript(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	path, err := SaveTranscript(dir, exportFixture(t), ExportOptions{Now: now})
	if err != nil {
		t.Fatalf("SaveTranscript() error: %v", err)
	}
	if path != filepath.Join(dir, "vetchat-20240301-100000.md") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "زخم روی پا") {
		t.Error("saved transcript should contain the conversation")
	}
}

func TestSaveTranscript_BadDir(t *testing.T) {
	_, err := SaveTranscript(filepath.Join(t.TempDir(), "missing"), nil, ExportOptions{})
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}
