package agent

import (
	"context"
	"fmt"

	"github.com/tbxark/styleadvisor"
)

type sessionKeyContext struct{}

const (
	defaultSessionKey = "default"
	sessionNamespace  = "styleadvisor:session"
	routeNamespace    = "styleadvisor:route"
)

// WithSessionKey routes agent calls made with ctx to the session stored under key.
func WithSessionKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, sessionKeyContext{}, key)
}

// SessionKeyFromContext gets the routing key from the context.
func SessionKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(sessionKeyContext{}).(string)
	return key, ok
}

func sessionKeyOrDefault(ctx context.Context) string {
	key, ok := SessionKeyFromContext(ctx)
	if ok && key != "" {
		return key
	}
	return defaultSessionKey
}

// SessionStore keeps sessions by ID and points each routing key at the
// session it is currently talking to. A session stays loadable after it
// terminates until Clear is called or it expires from the cache.
type SessionStore struct {
	engine   *styleadvisor.Engine
	sessions Store[*styleadvisor.Session]
	routes   Store[string]
	locks    *keyedLocks
}

type sessionStoreOptions struct {
	sessions Cache[*styleadvisor.Session]
	routes   Cache[string]
}

type SessionStoreOption func(*sessionStoreOptions)

// WithSessionCache sets the backend holding sessions by ID.
func WithSessionCache(cache Cache[*styleadvisor.Session]) SessionStoreOption {
	return func(o *sessionStoreOptions) {
		o.sessions = cache
	}
}

// WithRouteCache sets the backend mapping routing keys to session IDs.
func WithRouteCache(cache Cache[string]) SessionStoreOption {
	return func(o *sessionStoreOptions) {
		o.routes = cache
	}
}

func NewSessionStore(engine *styleadvisor.Engine, opts ...SessionStoreOption) *SessionStore {
	var options sessionStoreOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.sessions == nil {
		options.sessions = NewMemoryCache[*styleadvisor.Session]()
	}
	if options.routes == nil {
		options.routes = NewMemoryCache[string]()
	}
	return &SessionStore{
		engine:   engine,
		sessions: NewStore(options.sessions, sessionNamespace),
		routes:   NewStore(options.routes, routeNamespace),
		locks:    newKeyedLocks(),
	}
}

func NewMemorySessionStore(engine *styleadvisor.Engine) *SessionStore {
	return NewSessionStore(engine)
}

// Lock serializes turns on the routed session until the returned func runs.
func (s *SessionStore) Lock(ctx context.Context) func() {
	return s.locks.Lock(sessionKeyOrDefault(ctx))
}

// Load returns the routed session, starting a new one if the route is unset
// or points at a session that no longer exists.
func (s *SessionStore) Load(ctx context.Context) (*styleadvisor.Session, error) {
	route := sessionKeyOrDefault(ctx)
	id, ok, err := s.routes.Get(ctx, route)
	if err != nil {
		return nil, fmt.Errorf("load route %s: %w", route, err)
	}
	if ok {
		session, found, err := s.LoadByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			return session, nil
		}
	}
	session := s.engine.NewSession()
	if err := s.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save new session: %w", err)
	}
	if err := s.routes.Set(ctx, route, session.ID); err != nil {
		return nil, fmt.Errorf("save route %s: %w", route, err)
	}
	return session, nil
}

// LoadByID returns a session regardless of which route points at it.
func (s *SessionStore) LoadByID(ctx context.Context, id string) (*styleadvisor.Session, bool, error) {
	session, ok, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("load session %s: %w", id, err)
	}
	return session, ok && session != nil, nil
}

func (s *SessionStore) Save(ctx context.Context, session *styleadvisor.Session) error {
	return s.sessions.Set(ctx, session.ID, session)
}

// Clear drops the routed session and its route; the next Load starts over.
func (s *SessionStore) Clear(ctx context.Context) error {
	route := sessionKeyOrDefault(ctx)
	id, ok, err := s.routes.Get(ctx, route)
	if err != nil {
		return err
	}
	if ok {
		if err := s.sessions.Del(ctx, id); err != nil {
			return err
		}
	}
	return s.routes.Del(ctx, route)
}
