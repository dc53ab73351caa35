// Package server tracks the sessions connected to the SSH host. Every session
// plays its own match; the registry counts them and broadcasts shutdown.
package server

import (
	"sync"
	"time"
)

// Registry is the interface clients use to announce themselves to the host.
// Decouples the Client from the concrete Server so local play and tests can
// run without one.
type Registry interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
}

// Server holds the live client handles.
type Server struct {
	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
	onChange     func(players int)
}

// Compile-time check that Server implements Registry.
var _ Registry = (*Server)(nil)

// ClientHandle represents a client's registration with the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client (shutdown)
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// NewServer creates an empty registry. onChange, if not nil, is called with
// the new player count after every register and unregister.
func NewServer(onChange func(players int)) *Server {
	return &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		onChange:     onChange,
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	handle := &ClientHandle{
		ID:       s.nextClientID,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}
	s.nextClientID++
	s.clients[handle.ID] = handle
	n := len(s.clients)
	s.mu.Unlock()

	s.notify(n)
	return handle
}

// UnregisterClient removes a client and closes its event channel.
// Unknown or already removed IDs are ignored.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	handle, ok := s.clients[clientID]
	if ok {
		close(handle.EventsCh)
		delete(s.clients, clientID)
	}
	n := len(s.clients)
	s.mu.Unlock()

	if ok {
		s.notify(n)
	}
}

// Players returns the number of connected clients.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) notify(players int) {
	if s.onChange != nil {
		s.onChange(players)
	}
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s.Players() == 0 {
			return
		}
		select {
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}
