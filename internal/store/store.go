// Package store is the single source of truth for pix keys, generated
// code history and transactions.
//
// Every mutation is one atomic state transition: readers load an immutable
// State through an atomic pointer and never observe a half-applied change,
// such as a key deleted while its history is still present. Mutations are
// serialized and never return errors; operations on unknown ids are silent
// no-ops reported through their bool result.
//
// After each applied mutation the new state is queued for a background
// writer. Callers never wait on persistence and a failed write does not
// affect the in-memory state.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"pixfacil/internal/repositories"
)

const (
	// SchemaVersion is the version written into every persisted envelope.
	SchemaVersion = 1
	// DefaultName is the blob name the state is persisted under.
	DefaultName = "pix-store"

	saveTimeout = 10 * time.Second
)

// Persister is the durable storage strategy for the serialized state.
type Persister interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

// Migrator upgrades a persisted state written with an older schema
// version. Returning an error resets the store to empty.
type Migrator func(version int, state json.RawMessage) (*State, error)

// Listener receives the current state after an applied mutation.
type Listener func(State)

type envelope struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

type Store struct {
	mu    sync.Mutex
	state atomic.Pointer[State]

	name      string
	persister Persister
	migrator  Migrator
	now       func() time.Time
	newID     func() string
	onError   func(error)

	queue  chan []byte
	done   chan struct{}
	closed bool

	listenerMu sync.Mutex
	listeners  map[int]Listener
	nextID     int
	notifyMu   sync.Mutex
}

type Option func(*Store)

// WithName sets the blob name used by the persister.
func WithName(name string) Option {
	return func(s *Store) { s.name = name }
}

// WithMigrator installs the schema version mismatch hook.
func WithMigrator(m Migrator) Option {
	return func(s *Store) { s.migrator = m }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the identifier source.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithPersistErrorHandler is called with every failed background write.
func WithPersistErrorHandler(fn func(error)) Option {
	return func(s *Store) { s.onError = fn }
}

// New creates an empty store. A nil persister keeps state in memory only.
func New(p Persister, opts ...Option) *Store {
	s := &Store{
		name:      DefaultName,
		persister: p,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
		listeners: make(map[int]Listener),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.Store(emptyState())

	if s.persister != nil {
		s.queue = make(chan []byte, 1)
		go s.writer()
	} else {
		close(s.done)
	}
	return s
}

// Load rehydrates the store from its persister. A missing blob leaves the
// store empty. A version mismatch goes through the migrator, or resets to
// empty when none is installed.
func (s *Store) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	data, err := s.persister.Load(ctx, s.name)
	if errors.Is(err, repositories.ErrBlobNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", s.name, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("failed to decode %s: %w", s.name, err)
	}

	var st *State
	if env.Version == SchemaVersion {
		st = &State{}
		if err := json.Unmarshal(env.State, st); err != nil {
			return fmt.Errorf("failed to decode %s state: %w", s.name, err)
		}
	} else {
		st = s.migrate(env)
	}

	st.normalize()
	s.mu.Lock()
	s.state.Store(st)
	if env.Version != SchemaVersion {
		s.schedule(st)
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Store) migrate(env envelope) *State {
	if s.migrator == nil {
		log.Printf("store %s: schema version %d != %d, resetting", s.name, env.Version, SchemaVersion)
		return emptyState()
	}
	st, err := s.migrator(env.Version, env.State)
	if err != nil || st == nil {
		log.Printf("store %s: migration from version %d failed, resetting: %v", s.name, env.Version, err)
		return emptyState()
	}
	return st
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	return s.state.Load().clone()
}

// Subscribe registers fn for change notifications. The returned func
// removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.listenerMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenerMu.Unlock()

	return func() {
		s.listenerMu.Lock()
		delete(s.listeners, id)
		s.listenerMu.Unlock()
	}
}

// Close stops the background writer after it has flushed the last queued
// state. Mutations after Close still apply in memory but are not persisted.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		if s.queue != nil {
			close(s.queue)
		}
	}
	s.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// update runs fn against a copy of the current state and publishes the
// copy when fn reports a change.
func (s *Store) update(fn func(st *State) bool) bool {
	s.mu.Lock()
	next := s.state.Load().clone()
	if !fn(&next) {
		s.mu.Unlock()
		return false
	}
	s.state.Store(&next)
	s.schedule(&next)
	s.mu.Unlock()

	s.notify()
	return true
}

// schedule queues st for the writer, replacing any state still waiting.
// Callers hold s.mu, so there is a single producer.
func (s *Store) schedule(st *State) {
	if s.queue == nil || s.closed {
		return
	}

	data, err := json.Marshal(struct {
		State   *State `json:"state"`
		Version int    `json:"version"`
	}{st, SchemaVersion})
	if err != nil {
		s.reportError(fmt.Errorf("failed to encode %s: %w", s.name, err))
		return
	}

	for {
		select {
		case s.queue <- data:
			return
		default:
			select {
			case <-s.queue:
			default:
			}
		}
	}
}

func (s *Store) writer() {
	defer close(s.done)
	for data := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		if err := s.persister.Save(ctx, s.name, data); err != nil {
			s.reportError(fmt.Errorf("failed to save %s: %w", s.name, err))
		}
		cancel()
	}
}

func (s *Store) reportError(err error) {
	log.Printf("⚠️ %v", err)
	if s.onError != nil {
		s.onError(err)
	}
}

func (s *Store) notify() {
	s.listenerMu.Lock()
	if len(s.listeners) == 0 {
		s.listenerMu.Unlock()
		return
	}
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenerMu.Unlock()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	current := s.state.Load().clone()
	for _, fn := range fns {
		fn(current)
	}
}
