package main

import "sync"

// Registry maps each authenticated user to their current connection.
// A user has at most one current connection: registering a second
// connection for the same user supersedes the first for routing, without
// force-closing it. All operations are atomic.
type Registry struct {
	mu    sync.RWMutex
	conns map[int64]*Client
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[int64]*Client)}
}

// Register makes c the current connection for userID, superseding any
// prior mapping.
func (r *Registry) Register(userID int64, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[userID] = c
}

// Deregister removes the entry for userID only if c is still its current
// connection, and reports whether an entry was removed. A connection
// that has been superseded by a newer login must not remove the newer
// mapping when it disconnects.
func (r *Registry) Deregister(userID int64, c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conns[userID] != c {
		return false
	}
	delete(r.conns, userID)
	return true
}

// Lookup returns the current connection for userID, if any.
func (r *Registry) Lookup(userID int64) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[userID]
	return c, ok
}

// Snapshot returns the currently registered connections. Broadcasts
// iterate the snapshot rather than holding the lock, so registrations
// racing with a broadcast may or may not be included.
func (r *Registry) Snapshot() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clients := make([]*Client, 0, len(r.conns))
	for _, c := range r.conns {
		clients = append(clients, c)
	}
	return clients
}
