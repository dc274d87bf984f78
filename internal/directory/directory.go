package directory

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Identity es la identidad verificada que devuelve el directorio.
type Identity struct {
	Username string
	Email    string
	Name     string
}

var ErrAuthFailed = errors.New("directory authentication failed")

// Directory define la interfaz hacia el directorio corporativo (LDAP).
// La implementacion del protocolo queda fuera del servicio.
type Directory interface {
	Authenticate(ctx context.Context, username, password string) (Identity, error)
}

type disabledDirectory struct {
	reason string
}

func NewDisabled(reason string) Directory {
	return &disabledDirectory{reason: reason}
}

func (d *disabledDirectory) Authenticate(_ context.Context, _, _ string) (Identity, error) {
	if d.reason == "" {
		return Identity{}, errors.New("directory disabled")
	}
	return Identity{}, errors.New(d.reason)
}

// StaticDirectory es una implementacion en memoria para desarrollo y tests.
type StaticDirectory struct {
	mu      sync.RWMutex
	entries map[string]staticEntry
}

type staticEntry struct {
	password string
	identity Identity
}

func NewStatic() *StaticDirectory {
	return &StaticDirectory{entries: make(map[string]staticEntry)}
}

func (d *StaticDirectory) Register(username, password string, identity Identity) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[strings.ToLower(username)] = staticEntry{password: password, identity: identity}
}

func (d *StaticDirectory) Authenticate(_ context.Context, username, password string) (Identity, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entry, ok := d.entries[strings.ToLower(strings.TrimSpace(username))]
	if !ok || entry.password != password {
		return Identity{}, ErrAuthFailed
	}
	return entry.identity, nil
}
