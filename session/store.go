package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"mancala/game"
	"mancala/player"
	"mancala/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Option func(s *Store)

// WithSeed makes the random opponents of new sessions reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Store) {
		s.seed = seed
	}
}

// WithSearchOptions configures the minimax opponent of hard sessions.
func WithSearchOptions(options ...searcher.Option) Option {
	return func(s *Store) {
		s.searchOptions = options
	}
}

// Store keeps the live sessions keyed by their identifier.
type Store struct {
	mu            sync.RWMutex
	sessions      map[uuid.UUID]*Session
	rules         game.Rules
	seed          uint64
	searchOptions []searcher.Option
}

func NewStore(rules game.Rules, options ...Option) (*Store, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	s := &Store{
		sessions: make(map[uuid.UUID]*Session),
		rules:    rules,
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Create starts a new session in which the human moves first.
func (s *Store) Create(difficulty player.Difficulty) (GameData, error) {
	computer, err := s.computer(difficulty)
	if err != nil {
		return GameData{}, err
	}
	id := uuid.New()
	session, err := newSession(id, s.rules, difficulty, computer)
	if err != nil {
		return GameData{}, err
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	log.Info().Str("session", id.String()).Stringer("difficulty", difficulty).Msg("session created")
	return session.data(), nil
}

func (s *Store) Get(id string) (GameData, error) {
	session, err := s.lookup(id)
	if err != nil {
		return GameData{}, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.data(), nil
}

// Play makes the human's move and lets the computer answer. A stone count
// mismatch cannot be recovered from and removes the session.
func (s *Store) Play(ctx context.Context, id string, pit int) (GameData, error) {
	return s.mutate(id, func(session *Session) error {
		return session.play(ctx, pit)
	})
}

// Resume plays a computer turn that an earlier call could not finish, for
// example because its context was cancelled.
func (s *Store) Resume(ctx context.Context, id string) (GameData, error) {
	return s.mutate(id, func(session *Session) error {
		return session.resume(ctx)
	})
}

func (s *Store) mutate(id string, fn func(session *Session) error) (GameData, error) {
	session, err := s.lookup(id)
	if err != nil {
		return GameData{}, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	err = fn(session)
	var consistency *game.ConsistencyError
	if errors.As(err, &consistency) {
		log.Error().Err(err).Str("session", id).Msg("discarding corrupted session")
		s.remove(session.id)
		return GameData{}, err
	}
	if err != nil {
		return session.data(), err
	}

	if session.winner != game.NoWinner {
		log.Info().Str("session", id).Int("winner", session.winner).Msg("game over")
	}
	return session.data(), nil
}

// Reset starts the session over with a possibly different difficulty.
func (s *Store) Reset(id string, difficulty player.Difficulty) (GameData, error) {
	session, err := s.lookup(id)
	if err != nil {
		return GameData{}, err
	}
	computer, err := s.computer(difficulty)
	if err != nil {
		return GameData{}, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	session.reset(difficulty, computer)
	log.Debug().Str("session", id).Stringer("difficulty", difficulty).Msg("session reset")
	return session.data(), nil
}

func (s *Store) Delete(id string) error {
	session, err := s.lookup(id)
	if err != nil {
		return err
	}
	s.remove(session.id)
	return nil
}

func (s *Store) lookup(id string) (*Session, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownSession, id, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	return session, nil
}

func (s *Store) remove(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// computer must not be called with s.mu held.
func (s *Store) computer(difficulty player.Difficulty) (player.Strategy, error) {
	s.mu.Lock()
	s.seed++
	seed := s.seed
	s.mu.Unlock()
	return player.ByDifficulty(difficulty, seed, s.searchOptions...)
}
