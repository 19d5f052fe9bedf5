// Package media captures attachments: still images from disk and audio from the microphone.
package media

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	apierrors "github.com/damyar/vetchat/internal/errors"
	"github.com/damyar/vetchat/internal/models"
)

const (
	MaxImageSize = 20 * 1024 * 1024 // 20MB
)

// SupportedImageTypes returns the list of accepted image MIME types
func SupportedImageTypes() []string {
	return []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
		"image/heic",
		"image/heif",
	}
}

// ImageExtensions returns the file extensions offered by the image picker
func ImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".heic", ".heif"}
}

func isSupportedImageType(mimeType string) bool {
	for _, t := range SupportedImageTypes() {
		if t == mimeType {
			return true
		}
	}
	return false
}

// imageTypeFor resolves the MIME type from content first, then the extension.
// HEIC is not sniffed by net/http, so the extension decides there.
func imageTypeFor(path string, head []byte) string {
	if sniffed := http.DetectContentType(head); strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	}
	if byExt := mime.TypeByExtension(ext); byExt != "" {
		mediaType, _, _ := mime.ParseMediaType(byExt)
		return mediaType
	}
	return "application/octet-stream"
}

// LoadImage reads an image file fully into memory.
func LoadImage(path string) (*models.Payload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, apierrors.ErrUnsupportedMedia)
	}
	if info.Size() > MaxImageSize {
		return nil, fmt.Errorf("file size exceeds maximum %d bytes: %w", MaxImageSize, apierrors.ErrMediaTooLarge)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("file size exceeds maximum %d bytes: %w", MaxImageSize, apierrors.ErrMediaTooLarge)
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	mimeType := imageTypeFor(path, head)
	if !isSupportedImageType(mimeType) {
		return nil, fmt.Errorf("%s: %w", mimeType, apierrors.ErrUnsupportedMedia)
	}

	return &models.Payload{
		MIMEType: mimeType,
		Data:     data,
		Name:     filepath.Base(path),
	}, nil
}
