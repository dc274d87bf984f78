package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"tenant-auth/internal/domain"
)

// SessionCache es un cache de lectura de sesiones por token. La fuente de
// verdad sigue siendo el store; el cache solo acelera el lookup que corre
// en cada request autenticado.
type SessionCache interface {
	Put(session domain.Session) error
	Get(token string) (domain.Session, bool, error)
	Delete(token string) error
}

// TTL acotado: una sesion revocada fuera de este proceso deja de servirse
// desde cache a mas tardar al vencer la entrada.
const sessionCacheTTL = 5 * time.Minute

type memorySessionCache struct {
	mu    sync.Mutex
	items map[string]memorySessionEntry
}

type memorySessionEntry struct {
	session domain.Session
	expires time.Time
}

func NewMemorySessionCache() SessionCache {
	return &memorySessionCache{
		items: make(map[string]memorySessionEntry),
	}
}

func (c *memorySessionCache) Put(session domain.Session) error {
	if strings.TrimSpace(session.Token) == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[session.Token] = memorySessionEntry{
		session: session,
		expires: time.Now().UTC().Add(sessionCacheTTL),
	}
	return nil
}

func (c *memorySessionCache) Get(token string) (domain.Session, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.items[token]
	if !ok {
		return domain.Session{}, false, nil
	}
	if time.Now().UTC().After(entry.expires) {
		delete(c.items, token)
		return domain.Session{}, false, nil
	}
	return entry.session, true, nil
}

func (c *memorySessionCache) Delete(token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, token)
	return nil
}

type redisSessionCache struct {
	client *redis.Client
	prefix string
}

func NewRedisSessionCache(client *redis.Client) SessionCache {
	if client == nil {
		return nil
	}
	return &redisSessionCache{
		client: client,
		prefix: "auth:session:",
	}
}

func (c *redisSessionCache) Put(session domain.Session) error {
	if strings.TrimSpace(session.Token) == "" {
		return nil
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+session.Token, payload, sessionCacheTTL).Err()
}

func (c *redisSessionCache) Get(token string) (domain.Session, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	payload, err := c.client.Get(ctx, c.prefix+token).Bytes()
	if err != nil {
		if err == redis.Nil {
			return domain.Session{}, false, nil
		}
		return domain.Session{}, false, err
	}
	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return domain.Session{}, false, err
	}
	return session, true, nil
}

func (c *redisSessionCache) Delete(token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return c.client.Del(ctx, c.prefix+token).Err()
}
