package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	apierrors "github.com/damyar/vetchat/internal/errors"
	"github.com/damyar/vetchat/internal/models"
)

const chunkSize = 32 * 1024

// Capture is one recording in progress. Chunks are produced by a reader
// goroutine and assembled by a collector; Wait resolves once with the payload.
type Capture struct {
	stream   Stream
	mimeType string

	chunks chan []byte
	done   chan struct{}
	bytes  atomic.Int64

	// set by the collector before done is closed
	data    []byte
	readErr error
}

func newCapture(stream Stream, mimeType string) *Capture {
	c := &Capture{
		stream:   stream,
		mimeType: mimeType,
		chunks:   make(chan []byte, 16),
		done:     make(chan struct{}),
	}
	go c.produce()
	go c.collect()
	return c
}

// produce reads the stream until EOF, then closes it
func (c *Capture) produce() {
	defer close(c.chunks)
	defer func() { _ = c.stream.Close() }()

	buf := make([]byte, chunkSize)
	for {
		n, err := c.stream.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			c.bytes.Add(int64(n))
			c.chunks <- chunk
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.readErr = err
			}
			return
		}
	}
}

func (c *Capture) collect() {
	var buf bytes.Buffer
	for chunk := range c.chunks {
		buf.Write(chunk)
	}
	c.data = buf.Bytes()
	close(c.done)
}

// Bytes returns how much audio has been captured so far
func (c *Capture) Bytes() int64 {
	return c.bytes.Load()
}

// stop releases the device and waits for the remaining audio
func (c *Capture) stop() (*models.Payload, error) {
	releaseErr := c.stream.Release()
	<-c.done

	// readErr is written by produce before chunks closes, which happens before done closes
	err := errors.Join(releaseErr, c.readErr)
	if len(c.data) == 0 {
		return nil, err
	}
	return models.NewPayload(c.mimeType, c.data), err
}

// Recorder owns the microphone exclusively between Start and Stop.
type Recorder struct {
	source   Source
	mimeType string
	logger   *slog.Logger

	mu     sync.Mutex
	active *Capture
}

// RecorderOption configures a Recorder
type RecorderOption func(*Recorder)

// WithLogger sets the logger used for capture diagnostics
func WithLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// NewRecorder creates a Recorder tagging captures with mimeType
func NewRecorder(source Source, mimeType string, opts ...RecorderOption) *Recorder {
	if mimeType == "" {
		mimeType = models.DefaultAudioMIMEType
	}
	r := &Recorder{
		source:   source,
		mimeType: mimeType,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MIMEType returns the type captures are tagged with
func (r *Recorder) MIMEType() string {
	return r.mimeType
}

// Start acquires the microphone and begins buffering audio.
// A denied or unavailable device returns an error wrapping ErrPermissionDenied
// and leaves the recorder idle.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		return apierrors.ErrAlreadyRecording
	}

	stream, err := r.source.Open(ctx)
	if err != nil {
		r.logger.Warn("microphone unavailable", "error", err)
		if !apierrors.IsPermissionDenied(err) && !errors.Is(err, context.Canceled) {
			err = fmt.Errorf("%v: %w", err, apierrors.ErrPermissionDenied)
		}
		return err
	}

	r.active = newCapture(stream, r.mimeType)
	r.logger.Debug("recording started", "mime_type", r.mimeType)
	return nil
}

// Stop ends the recording and returns the assembled payload.
// It is a no-op returning (nil, false) when nothing is recording or nothing was captured.
func (r *Recorder) Stop() (*models.Payload, bool) {
	r.mu.Lock()
	capture := r.active
	r.active = nil
	r.mu.Unlock()

	if capture == nil {
		return nil, false
	}

	payload, err := capture.stop()
	if err != nil {
		r.logger.Warn("recording ended with error", "error", err, "bytes", capture.Bytes())
	}
	if payload == nil {
		return nil, false
	}
	r.logger.Debug("recording stopped", "bytes", payload.Size())
	return payload, true
}

// IsRecording reports whether a capture is active
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active != nil
}

// RecordedBytes returns the size of the active capture, or 0
func (r *Recorder) RecordedBytes() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return 0
	}
	return r.active.Bytes()
}
