package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	apierrors "github.com/damyar/vetchat/internal/errors"
)

// Stream is an open microphone. Reads yield raw audio until the device is
// released and the remaining buffered data has been drained.
type Stream interface {
	io.ReadCloser

	// Release stops the device. It is safe to call more than once.
	Release() error
}

// Source opens the platform microphone.
type Source interface {
	Open(ctx context.Context) (Stream, error)
}

// CommandSource captures audio by running an external recorder that
// writes the encoded stream to stdout (arecord, ffmpeg, sox ...).
type CommandSource struct {
	Command []string

	// StartupGrace is how long a freshly started recorder must stay alive
	// before the device counts as granted. Denied or busy devices make
	// recorders exit almost immediately.
	StartupGrace time.Duration

	// StopTimeout bounds the wait for the recorder to exit after an interrupt.
	StopTimeout time.Duration
}

// NewCommandSource creates a CommandSource with default timings
func NewCommandSource(command []string) *CommandSource {
	return &CommandSource{
		Command:      command,
		StartupGrace: 250 * time.Millisecond,
		StopTimeout:  2 * time.Second,
	}
}

// Open starts the recorder process.
func (s *CommandSource) Open(ctx context.Context) (Stream, error) {
	if len(s.Command) == 0 {
		return nil, fmt.Errorf("no capture command configured: %w", apierrors.ErrPermissionDenied)
	}

	path, err := exec.LookPath(s.Command[0])
	if err != nil {
		return nil, fmt.Errorf("%s not available: %v: %w", s.Command[0], err, apierrors.ErrPermissionDenied)
	}

	// A plain os.Pipe keeps the read end ours, so waiting for the process
	// never races with draining its output.
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create capture pipe: %w", err)
	}

	var stderr bytes.Buffer
	cmd := exec.Command(path, s.Command[1:]...)
	cmd.Stdout = pw
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return nil, fmt.Errorf("failed to start %s: %v: %w", s.Command[0], err, apierrors.ErrPermissionDenied)
	}
	_ = pw.Close()

	ps := &processStream{
		cmd:         cmd,
		pipe:        pr,
		exited:      make(chan struct{}),
		stopTimeout: s.StopTimeout,
	}
	go func() {
		ps.waitErr = cmd.Wait()
		close(ps.exited)
	}()

	grace := time.NewTimer(s.StartupGrace)
	defer grace.Stop()

	select {
	case <-ps.exited:
		_ = pr.Close()
		detail := strings.TrimSpace(stderr.String())
		if detail == "" && ps.waitErr != nil {
			detail = ps.waitErr.Error()
		}
		return nil, fmt.Errorf("%s exited during startup: %s: %w", s.Command[0], detail, apierrors.ErrPermissionDenied)
	case <-ctx.Done():
		_ = ps.Release()
		_ = pr.Close()
		return nil, ctx.Err()
	case <-grace.C:
	}

	return ps, nil
}

// processStream is the stdout of a running recorder process
type processStream struct {
	cmd         *exec.Cmd
	pipe        *os.File
	exited      chan struct{}
	waitErr     error
	stopTimeout time.Duration
	releaseOnce sync.Once
}

func (p *processStream) Read(b []byte) (int, error) {
	return p.pipe.Read(b)
}

func (p *processStream) Close() error {
	return p.pipe.Close()
}

// Release interrupts the recorder so it flushes and exits, killing it if it lingers.
func (p *processStream) Release() error {
	p.releaseOnce.Do(func() {
		select {
		case <-p.exited:
			return
		default:
		}

		_ = p.cmd.Process.Signal(os.Interrupt)

		timeout := p.stopTimeout
		if timeout <= 0 {
			timeout = 2 * time.Second
		}
		select {
		case <-p.exited:
		case <-time.After(timeout):
			_ = p.cmd.Process.Kill()
			<-p.exited
		}
	})
	return nil
}
