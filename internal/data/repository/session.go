package repository

import (
	"sync"
	"time"

	"movietix/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionStore keeps login sessions in process memory. Sessions are identity
// transport only, deliberately outside the Store contract: losing them on
// restart logs users out, nothing more.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entity.Session
	ttl      time.Duration
	log      *zap.Logger
}

func NewSessionStore(ttl time.Duration, log *zap.Logger) *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*entity.Session),
		ttl:      ttl,
		log:      log.With(zap.String("store", "session")),
	}
}

// Create issues a fresh session token for the user.
func (s *SessionStore) Create(userID int) *entity.Session {
	now := time.Now()
	session := &entity.Session{
		Token:     uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}

// FindValid resolves a token to its session, dropping it when expired.
// Returns nil for unknown, malformed, or expired tokens.
func (s *SessionStore) FindValid(token string) *entity.Session {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil
	}
	if session.Expired(time.Now()) {
		delete(s.sessions, id)
		return nil
	}
	cp := *session
	return &cp
}

// Revoke removes the session for the token. Unknown tokens are a no-op.
func (s *SessionStore) Revoke(token string) {
	id, err := uuid.Parse(token)
	if err != nil {
		return
	}

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
