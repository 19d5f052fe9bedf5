package media

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	apierrors "github.com/damyar/vetchat/internal/errors"
	"github.com/damyar/vetchat/internal/models"
)

// MaxAudioSize bounds a recorded voice note read from disk
const MaxAudioSize = 20 * 1024 * 1024

// AudioTypeFor picks the MIME type of an audio file. An explicit override
// wins, then the extension; anything else is tagged as the recorder's default.
func AudioTypeFor(path, override string) string {
	if override != "" {
		return override
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		mediaType, _, _ := mime.ParseMediaType(byExt)
		if strings.HasPrefix(mediaType, "audio/") {
			return mediaType
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webm":
		return "audio/webm"
	case ".ogg", ".oga", ".opus":
		return "audio/ogg"
	case ".m4a":
		return "audio/mp4"
	}
	return models.DefaultAudioMIMEType
}

// LoadAudio reads a finished voice note from disk
func LoadAudio(path, mimeType string) (*models.Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat audio: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, apierrors.ErrUnsupportedMedia)
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxAudioSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	if len(data) > MaxAudioSize {
		return nil, fmt.Errorf("audio exceeds maximum %d bytes: %w", MaxAudioSize, apierrors.ErrMediaTooLarge)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty: %w", path, apierrors.ErrUnsupportedMedia)
	}

	return &models.Payload{
		MIMEType: AudioTypeFor(path, mimeType),
		Data:     data,
		Name:     filepath.Base(path),
	}, nil
}
