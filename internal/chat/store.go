// Package chat holds the conversation state and drives a submission
// through the model gateway.
package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"

	apierrors "github.com/damyar/vetchat/internal/errors"
	"github.com/damyar/vetchat/internal/models"
)

// State is a point-in-time copy of the store
type State struct {
	Messages []models.Message
	Loading  bool
	Err      error
}

// Store is the single source of truth for the rendered conversation.
// History only grows; at most one user turn may await its reply.
type Store struct {
	mu       sync.RWMutex
	messages []models.Message
	loading  bool
	err      error

	greeting string
	now      func() time.Time
	newID    func() string
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithGreeting seeds the conversation with an opening model turn
func WithGreeting(text string) StoreOption {
	return func(s *Store) {
		s.greeting = text
	}
}

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store, seeded with the greeting if one is configured
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.greeting != "" {
		s.messages = append(s.messages, s.newMessage(models.RoleModel, s.greeting))
	}
	return s
}

func (s *Store) newMessage(role models.Role, text string) models.Message {
	return models.Message{
		ID:        s.newID(),
		Role:      role,
		Text:      text,
		Timestamp: s.now(),
	}
}

// AppendUser appends a user turn and marks a reply as pending.
// It fails with ErrBusy, changing nothing, while another reply is pending.
func (s *Store) AppendUser(text string, image, audio *models.Payload) (models.Message, error) {
	msg, _, err := s.beginTurn(text, image, audio)
	return msg, err
}

// beginTurn is AppendUser that also returns the history preceding the new turn
func (s *Store) beginTurn(text string, image, audio *models.Payload) (models.Message, []models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return models.Message{}, nil, apierrors.ErrBusy
	}

	history := make([]models.Message, len(s.messages))
	copy(history, s.messages)

	msg := s.newMessage(models.RoleUser, text)
	msg.Image = image
	msg.Audio = audio

	s.messages = append(s.messages, msg)
	s.loading = true
	s.err = nil
	return msg, history, nil
}

// AppendModel appends a model turn and clears the pending flag
func (s *Store) AppendModel(text string) models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := s.newMessage(models.RoleModel, text)
	s.messages = append(s.messages, msg)
	s.loading = false
	return msg
}

// AppendFailure appends the gateway's failure text as a model turn and
// records the cause in the error slot.
func (s *Store) AppendFailure(text string, cause error) models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := s.newMessage(models.RoleModel, text)
	msg.Failed = true
	s.messages = append(s.messages, msg)
	s.loading = false
	s.err = cause
	return msg
}

// Messages returns a copy of the conversation in display order
func (s *Store) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// IsLoading reports whether a reply is pending
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last recorded failure, if any
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Snapshot returns a consistent copy of the whole state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := make([]models.Message, len(s.messages))
	copy(msgs, s.messages)
	return State{Messages: msgs, Loading: s.loading, Err: s.err}
}
