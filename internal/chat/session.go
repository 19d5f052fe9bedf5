package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	apierrors "github.com/damyar/vetchat/internal/errors"
	"github.com/damyar/vetchat/internal/models"
)

// Gateway answers a user turn given the conversation so far.
// Implementations never fail; failures come back as substitute text.
type Gateway interface {
	Reply(ctx context.Context, turn models.Turn, history []models.Message) models.Reply
}

// Submission is the composer's output
type Submission struct {
	Text  string
	Image *models.Payload
	Audio *models.Payload
}

// IsEmpty reports whether there is nothing to send
func (s Submission) IsEmpty() bool {
	return strings.TrimSpace(s.Text) == "" && s.Image == nil && s.Audio == nil
}

// Turn converts the submission to the gateway's wire-neutral form
func (s Submission) Turn() models.Turn {
	turn := models.Turn{Text: s.Text, AudioMIME: models.DefaultAudioMIMEType}
	if s.Image != nil {
		turn.Image = s.Image.DataURL()
	}
	if s.Audio != nil {
		turn.Audio = s.Audio.DataURL()
		if s.Audio.MIMEType != "" {
			turn.AudioMIME = s.Audio.MIMEType
		}
	}
	return turn
}

// Session wires a Store to a Gateway
type Session struct {
	store   *Store
	gateway Gateway
	logger  *slog.Logger
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithSessionLogger sets the session logger
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a session over store and gateway
func NewSession(store *Store, gateway Gateway, opts ...SessionOption) *Session {
	s := &Session{
		store:   store,
		gateway: gateway,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying store
func (s *Session) Store() *Store {
	return s.store
}

// Pending is a submitted user turn awaiting its reply
type Pending struct {
	User models.Message

	session *Session
	turn    models.Turn
	history []models.Message

	once  sync.Once
	reply models.Message
}

// Begin appends the user turn. Empty submissions and submissions made while
// another reply is pending are rejected without touching the store.
func (s *Session) Begin(sub Submission) (*Pending, error) {
	if sub.IsEmpty() {
		return nil, apierrors.ErrEmptySubmission
	}

	user, history, err := s.store.beginTurn(sub.Text, sub.Image, sub.Audio)
	if err != nil {
		s.logger.Debug("submission rejected", "error", err)
		return nil, err
	}

	return &Pending{
		User:    user,
		session: s,
		turn:    sub.Turn(),
		history: history,
	}, nil
}

// Resolve asks the gateway and appends the model turn. Later calls return the same message.
func (p *Pending) Resolve(ctx context.Context) models.Message {
	p.once.Do(func() {
		s := p.session
		reply := s.gateway.Reply(ctx, p.turn, p.history)
		if reply.Err != nil {
			p.reply = s.store.AppendFailure(reply.Text, reply.Err)
			return
		}
		p.reply = s.store.AppendModel(reply.Text)
	})
	return p.reply
}

// Submit runs a full exchange: user turn, gateway call, model turn.
func (s *Session) Submit(ctx context.Context, sub Submission) (user, reply models.Message, err error) {
	pending, err := s.Begin(sub)
	if err != nil {
		return models.Message{}, models.Message{}, err
	}
	return pending.User, pending.Resolve(ctx), nil
}
