package mcp

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	// Packages
	uuid "github.com/google/uuid"
)

///////////////////////////////////////////////////////////////////////
// TYPES

// httpTransport serves the streamable HTTP transport: JSON-RPC requests
// arrive as POST bodies and sessions are tracked with the Mcp-Session-Id
// header.
type httpTransport struct {
	server *Server

	mu       sync.RWMutex
	sessions map[string]bool
}

///////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// SessionHeader carries the session identifier between requests
	SessionHeader = "Mcp-Session-Id"

	contentTypeJSON = "application/json"
)

///////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// HTTPHandler returns a handler implementing the streamable HTTP
// transport for the server
func (server *Server) HTTPHandler() http.Handler {
	return &httpTransport{
		server:   server,
		sessions: make(map[string]bool),
	}
}

func (t *httpTransport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		t.post(w, r)
	case http.MethodDelete:
		t.delete(w, r)
	default:
		// No server-initiated stream is offered
		w.Header().Set("Allow", "POST, DELETE")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

///////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (t *httpTransport) post(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Peek at the method to manage the session lifecycle
	var request Request
	if err := json.Unmarshal(body, &request); err != nil {
		writeError(w, nil, NewError(ErrorCodeInvalidRequest, err.Error()))
		return
	}

	session := r.Header.Get(SessionHeader)
	if request.Method == MessageTypeInitialize {
		// A new session begins on initialize
		session = uuid.NewString()
		t.mu.Lock()
		t.sessions[session] = true
		t.mu.Unlock()
	} else if session != "" && !t.valid(session) {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	response, err := t.server.processRequest(r.Context(), string(body))
	if err != nil {
		writeError(w, request.ID, NewError(ErrorCodeInvalidRequest, err.Error()))
		return
	}

	if session != "" {
		w.Header().Set(SessionHeader, session)
	}
	if response == nil {
		// Notification - accepted without a body
		w.WriteHeader(http.StatusAccepted)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.Write(response)
}

func (t *httpTransport) delete(w http.ResponseWriter, r *http.Request) {
	session := r.Header.Get(SessionHeader)
	if session == "" || !t.valid(session) {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	t.mu.Lock()
	delete(t.sessions, session)
	t.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (t *httpTransport) valid(session string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sessions[session]
}

func writeError(w http.ResponseWriter, id any, rpcErr *Error) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(Response{
		Version: RPCVersion,
		ID:      id,
		Err:     rpcErr,
	})
}
