package token

import "sync"

// Blacklist is the process-scoped set of revoked session tokens. It is
// shared across concurrent requests and cleared on restart; durable
// revocation across restarts is out of scope.
type Blacklist struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func NewBlacklist() *Blacklist {
	return &Blacklist{tokens: make(map[string]struct{})}
}

// Add revokes a token. Adding an already-revoked token is a no-op.
func (b *Blacklist) Add(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[token] = struct{}{}
}

// Contains reports whether the token has been revoked.
func (b *Blacklist) Contains(token string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.tokens[token]
	return ok
}
