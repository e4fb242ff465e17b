// Package server tracks the game sessions served by one process.
// Each session plays its own independent game; the server only handles
// admission, per-session results and graceful shutdown.
package server

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// ErrServerFull is returned by Register when the session limit is reached.
	ErrServerFull = errors.New("server full")
	// ErrShuttingDown is returned by Register after Shutdown was called.
	ErrShuttingDown = errors.New("server shutting down")
)

// Hub is the interface clients use to communicate with the server.
// Decouples the Client from the concrete Server implementation.
type Hub interface {
	Register(username string) (*ClientHandle, error)
	Unregister(clientID int)
	ReportScore(clientID int, score int)
}

// Server tracks connected sessions.
type Server struct {
	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
	maxClients   int // 0 means unlimited
	shuttingDown bool
	logger       *log.Logger
}

// Compile-time check that Server implements Hub.
var _ Hub = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID        int
	Username  string           // Display name for this client
	EventsCh  chan ClientEvent // Events sent to client
	Games     int              // Finished games this session
	BestScore int
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

// NewServer creates a server admitting at most maxClients concurrent sessions
// (0 for no limit). A nil logger discards output.
func NewServer(maxClients int, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		maxClients:   maxClients,
		logger:       logger,
	}
}

// Register admits a new client with the given username and returns its handle.
func (s *Server) Register(username string) (*ClientHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shuttingDown {
		return nil, ErrShuttingDown
	}
	if s.maxClients > 0 && len(s.clients) >= s.maxClients {
		return nil, ErrServerFull
	}

	handle := &ClientHandle{
		ID:       s.nextClientID,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}
	s.nextClientID++
	s.clients[handle.ID] = handle

	s.logger.Info("client registered", "id", handle.ID, "user", username, "clients", len(s.clients))
	return handle, nil
}

// Unregister removes a client from the server.
func (s *Server) Unregister(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	delete(s.clients, clientID)
	s.logger.Info("client unregistered",
		"id", clientID, "user", handle.Username,
		"games", handle.Games, "best", handle.BestScore,
		"clients", len(s.clients))
}

// ReportScore records the final score of a finished game.
func (s *Server) ReportScore(clientID int, score int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	handle.Games++
	if score > handle.BestScore {
		handle.BestScore = score
	}
	s.logger.Info("game finished", "id", clientID, "user", handle.Username, "score", score)
}

// Client returns a copy of the handle's bookkeeping fields, if registered.
func (s *Server) Client(clientID int) (ClientHandle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return ClientHandle{}, false
	}
	return *handle, true
}

// Count returns the number of connected clients.
func (s *Server) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// New registrations are refused from the moment it is called.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.Lock()
	s.shuttingDown = true
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.Unlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s.Count() == 0 {
			return
		}
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "clients", s.Count())
			return
		case <-ticker.C:
		}
	}
}
