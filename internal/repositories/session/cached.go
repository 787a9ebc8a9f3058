package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
	"github.com/onekill0503/dnd-bot/internal/pkg/clock"
)

// CachedConfig contains configuration for the cached session repository
type CachedConfig struct {
	// Durable is the backing store (optional; nil keeps sessions in memory only)
	Durable Repository
	// TTL is how long a live session may go unused before it is evicted
	// (optional, defaults to DefaultTTL)
	TTL time.Duration
	// Clock is optional, defaults to the system clock
	Clock clock.Clock
}

type cachedEntry struct {
	session  *game.Session
	lastSeen time.Time
}

// Cached keeps live sessions in memory as the primary copy and writes every
// change through to a durable store. Sessions returned by Get are shared
// pointers: callers mutate them under their own per-session lock.
//
// Every read or write restarts a session's expiration window, both in memory
// and in the durable store. Sessions left idle past the TTL are dropped on
// the next read or by EvictIdle.
type Cached struct {
	durable Repository
	ttl     time.Duration
	clock   clock.Clock

	mu       sync.Mutex
	sessions map[string]*cachedEntry
}

var _ Repository = (*Cached)(nil)

// NewCached creates an in-memory session repository in front of an optional durable one
func NewCached(cfg *CachedConfig) *Cached {
	if cfg == nil {
		cfg = &CachedConfig{}
	}
	c := &Cached{
		durable:  cfg.Durable,
		ttl:      cfg.TTL,
		clock:    cfg.Clock,
		sessions: make(map[string]*cachedEntry),
	}
	if c.ttl <= 0 {
		c.ttl = DefaultTTL
	}
	if c.clock == nil {
		c.clock = clock.New()
	}
	return c
}

// live returns the entry for id and marks it used, evicting it instead when
// it has been idle past the TTL. Callers hold c.mu.
func (c *Cached) live(id string, now time.Time) (*cachedEntry, bool) {
	e, ok := c.sessions[id]
	if !ok {
		return nil, false
	}
	if now.Sub(e.lastSeen) > c.ttl {
		delete(c.sessions, id)
		slog.Info("Evicted idle session", "session_id", id, "idle", now.Sub(e.lastSeen))
		return nil, false
	}
	e.lastSeen = now
	return e, true
}

// Get returns the live session, loading it from the durable store on a miss.
// A hit refreshes the durable TTL; failing to do so is logged, not returned.
func (c *Cached) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	c.mu.Lock()
	e, ok := c.live(input.ID, c.clock.Now())
	c.mu.Unlock()
	if ok {
		c.touchDurable(ctx, input.ID)
		return &GetOutput{Session: e.session}, nil
	}

	if c.durable == nil {
		return nil, errors.SessionNotFound(input.ID)
	}

	out, err := c.durable.Get(ctx, input)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clock.Now()
	// another caller may have loaded it meanwhile; keep the first copy live
	if existing, ok := c.live(input.ID, now); ok {
		return &GetOutput{Session: existing.session}, nil
	}
	c.sessions[input.ID] = &cachedEntry{session: out.Session, lastSeen: now}
	return out, nil
}

func (c *Cached) touchDurable(ctx context.Context, id string) {
	if c.durable == nil {
		return
	}
	if _, err := c.durable.Touch(ctx, TouchInput{ID: id}); err != nil {
		slog.Warn("Failed to refresh durable session TTL", "session_id", id, "error", err)
	}
}

// Save stores the session in memory, then writes it through.
// A durable failure is returned but the in-memory copy is kept.
func (c *Cached) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	c.mu.Lock()
	c.sessions[input.Session.SessionID] = &cachedEntry{session: input.Session, lastSeen: c.clock.Now()}
	c.mu.Unlock()

	if c.durable == nil {
		return &SaveOutput{}, nil
	}
	return c.durable.Save(ctx, input)
}

// Touch restarts the expiration window in memory and in the durable store
func (c *Cached) Touch(ctx context.Context, input TouchInput) (*TouchOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	c.mu.Lock()
	_, ok := c.live(input.ID, c.clock.Now())
	c.mu.Unlock()

	if c.durable == nil {
		if !ok {
			return nil, errors.SessionNotFound(input.ID)
		}
		return &TouchOutput{}, nil
	}
	return c.durable.Touch(ctx, input)
}

// Delete evicts the session and removes the durable copy
func (c *Cached) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	c.mu.Lock()
	delete(c.sessions, input.ID)
	c.mu.Unlock()

	if c.durable == nil {
		return &DeleteOutput{}, nil
	}
	return c.durable.Delete(ctx, input)
}

// List merges live and durable sessions; the live copy wins.
// Listing does not count as use and refreshes nothing.
func (c *Cached) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	now := c.clock.Now()

	c.mu.Lock()
	seen := make(map[string]bool, len(c.sessions))
	sessions := make([]*game.Session, 0, len(c.sessions))
	for id, e := range c.sessions {
		if now.Sub(e.lastSeen) > c.ttl {
			continue
		}
		seen[id] = true
		sessions = append(sessions, e.session)
	}
	c.mu.Unlock()

	if c.durable != nil {
		out, err := c.durable.List(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, s := range out.Sessions {
			if !seen[s.SessionID] {
				sessions = append(sessions, s)
			}
		}
	}

	return &ListOutput{Sessions: sessions}, nil
}

// EvictIdle drops every session unused for longer than the TTL and reports
// how many were dropped. Durable copies are left to their own expiry.
func (c *Cached) EvictIdle() int {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for id, e := range c.sessions {
		if now.Sub(e.lastSeen) > c.ttl {
			delete(c.sessions, id)
			evicted++
		}
	}
	return evicted
}

// RunEviction calls EvictIdle every interval until ctx is done
func (c *Cached) RunEviction(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.EvictIdle(); n > 0 {
				slog.Info("Evicted idle sessions", "count", n, "remaining", c.Len())
			}
		}
	}
}

// Len returns the number of sessions held in memory
func (c *Cached) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}
