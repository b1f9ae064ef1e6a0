package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/parley/internal/logger"
)

// Factory builds a fresh Controller for a new learner.
type Factory func(opts ...Option) *Controller

type registryEntry struct {
	ctl      *Controller
	lastSeen time.Time
}

// Registry keeps one Controller per learner, keyed by a session id (HTTP)
// or an external key such as a chat id (Telegram). Controllers never share
// state. Every lookup marks the session as seen; Sweep drops sessions that
// have not been seen for a while.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*registryEntry
	factory  Factory
	now      Clock
}

// NewRegistry returns an empty registry that builds controllers with f.
func NewRegistry(f Factory) *Registry {
	return &Registry{sessions: make(map[string]*registryEntry), factory: f, now: time.Now}
}

// Create starts a session under a new random id.
func (r *Registry) Create(opts ...Option) (string, *Controller) {
	id := uuid.NewString()
	c := r.factory(opts...)

	r.mu.Lock()
	r.sessions[id] = &registryEntry{ctl: c, lastSeen: r.now()}
	r.mu.Unlock()
	return id, c
}

// Get returns the session stored under id.
func (r *Registry) Get(id string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.ctl, true
}

// GetOrCreate returns the session under key, creating it with opts when
// absent. opts are ignored for an existing session.
func (r *Registry) GetOrCreate(key string, opts ...Option) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[key]; ok {
		e.lastSeen = r.now()
		return e.ctl
	}
	c := r.factory(opts...)
	r.sessions[key] = &registryEntry{ctl: c, lastSeen: r.now()}
	return c
}

// Delete drops the session under id and reports whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops every session not seen within idle and returns how many
// were dropped.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Expire sweeps idle sessions periodically until ctx is done. A
// non-positive idle disables expiry.
func (r *Registry) Expire(ctx context.Context, idle time.Duration, log *logger.LogMiddleware) {
	if idle <= 0 {
		return
	}
	if log == nil {
		log = logger.Nop()
	}

	ticker := time.NewTicker(max(idle/4, time.Second))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(idle); n > 0 {
				log.Logger(ctx).Info("expired idle sessions",
					zap.Int("expired", n),
					zap.Int("live", r.Len()))
			}
		}
	}
}
