package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"pricing-modeller/core/pricing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrSessionNotFound is returned for a session with neither a live engine nor
// a stored draft.
var ErrSessionNotFound = errors.New("session not found")

// saveTimeout bounds a single draft write.
const saveTimeout = 5 * time.Second

type session struct {
	engine   *Engine
	lastSeen time.Time

	// dropped stops draft saves from an engine still held by a request
	// after its session was deleted.
	dropped atomic.Bool
}

// Registry holds one engine per modelling session. Idle engines are evicted
// by Sweep and reloaded from their draft on the next access.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*session
	sf       singleflight.Group

	store DraftStore
	ttl   time.Duration
	log   *zap.Logger
	now   func() time.Time
}

// NewRegistry creates a registry backed by store. A zero ttl disables
// eviction.
func NewRegistry(store DraftStore, ttl time.Duration, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]*session),
		store:    store,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

// Create starts a new session holding the empty model and stores its draft.
func (r *Registry) Create(ctx context.Context) (string, *Engine, error) {
	id := uuid.NewString()
	if err := r.store.Save(ctx, id, pricing.Empty()); err != nil {
		return "", nil, fmt.Errorf("failed to store draft for session %s: %w", id, err)
	}

	engine := r.attach(id, pricing.Empty())
	r.log.Info("Session created", zap.String("session_id", id))
	return id, engine, nil
}

// Get returns the live engine of a session, loading it from its draft when
// it is not in memory. Concurrent loads of one session share a single read.
func (r *Registry) Get(ctx context.Context, id string) (*Engine, error) {
	r.mu.Lock()
	if s, ok := r.sessions[id]; ok {
		s.lastSeen = r.now()
		r.mu.Unlock()
		return s.engine, nil
	}
	r.mu.Unlock()

	result, err, _ := r.sf.Do(id, func() (interface{}, error) {
		r.mu.RLock()
		s, ok := r.sessions[id]
		r.mu.RUnlock()
		if ok {
			return s.engine, nil
		}

		model, found, err := r.store.Load(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load draft for session %s: %w", id, err)
		}
		if !found {
			return nil, ErrSessionNotFound
		}
		r.log.Debug("Session restored from draft", zap.String("session_id", id))
		return r.attach(id, model), nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Engine), nil
}

// Drop removes a session and its draft.
func (r *Registry) Drop(ctx context.Context, id string) error {
	r.mu.Lock()
	if s, ok := r.sessions[id]; ok {
		s.dropped.Store(true)
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if err := r.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete draft for session %s: %w", id, err)
	}
	return nil
}

// Sweep evicts engines idle for longer than the ttl and returns how many
// were evicted. A stream left open on an evicted engine is aborted, which
// saves the partial model as the session's draft.
func (r *Registry) Sweep(now time.Time) int {
	if r.ttl <= 0 {
		return 0
	}

	var idle []*Engine
	r.mu.Lock()
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) <= r.ttl {
			continue
		}
		delete(r.sessions, id)
		idle = append(idle, s.engine)
	}
	r.mu.Unlock()

	// Abort takes the engine lock, so it runs after r.mu is released.
	for _, e := range idle {
		e.Abort()
	}
	return len(idle)
}

// Run sweeps idle sessions every interval until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || r.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.Sweep(now); n > 0 {
				r.log.Debug("Evicted idle sessions", zap.Int("count", n))
			}
		}
	}
}

// Len returns the number of live engines.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// attach registers a new engine that saves its draft whenever the model
// settles outside a stream.
func (r *Registry) attach(id string, model pricing.PricingModel) *Engine {
	engine := NewEngine(model, r.log.With(zap.String("session_id", id)))
	s := &session{engine: engine, lastSeen: r.now()}
	engine.OnChange(func(m pricing.PricingModel, streaming bool) {
		if streaming || s.dropped.Load() {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := r.store.Save(ctx, id, m); err != nil {
			r.log.Error("Failed to save draft", zap.String("session_id", id), zap.Error(err))
		}
	})

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return engine
}
