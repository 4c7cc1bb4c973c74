// Package syncd serves synchronized JSON documents over HTTP and
// websockets. Concurrent client edits converge by transforming each
// incoming delta over everything committed since the revision it was
// rooted at.
package syncd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/google/gops/agent"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/jot-format/go-jot"
	"github.com/jot-format/go-jot/encode"
	"github.com/jot-format/go-jot/ir"
	"github.com/jot-format/go-jot/parse"
)

// Spec configures a Server.
type Spec struct {
	Log    *slog.Logger
	Policy *jot.Policy

	// Diagnostics starts a gops agent for runtime inspection.
	Diagnostics bool
}

// Server hosts documents and their sessions.
type Server struct {
	Spec Spec

	mu   sync.Mutex
	docs map[string]*document

	upgrader websocket.Upgrader
}

// New creates a Server from a spec.
func New(spec *Spec) (*Server, error) {
	if spec.Log == nil {
		spec.Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slogLevel(),
		}))
	}
	if spec.Diagnostics {
		if err := agent.Listen(agent.Options{}); err != nil {
			return nil, fmt.Errorf("diagnostics agent: %w", err)
		}
	}
	return &Server{
		Spec: *spec,
		docs: map[string]*document{},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}, nil
}

func slogLevel() slog.Level {
	if os.Getenv("DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/v1/docs", s.createDoc).Methods("POST")
	r.HandleFunc("/v1/docs/{id}", s.getDoc).Methods("GET")
	r.HandleFunc("/v1/docs/{id}/edits", s.postEdit).Methods("POST")
	r.HandleFunc("/v1/docs/{id}/ws", s.serveWS).Methods("GET")
	return r
}

// ListenAndServe serves the routes on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.Spec.Log.Info("syncd listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) lookup(id string) *document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[id]
}

func (s *Server) createDoc(w http.ResponseWriter, r *http.Request) {
	req := &CreateRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var value *ir.Node
	if len(req.Value) != 0 {
		var err error
		value, err = parse.Parse(req.Value)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	doc := newDocument(id, value)
	s.mu.Lock()
	if _, exists := s.docs[id]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, fmt.Errorf("document %q exists", id))
		return
	}
	s.docs[id] = doc
	s.mu.Unlock()
	s.Spec.Log.Info("created document", "id", id)
	writeDoc(w, http.StatusCreated, doc)
}

func (s *Server) getDoc(w http.ResponseWriter, r *http.Request) {
	doc := s.lookup(mux.Vars(r)["id"])
	if doc == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("no such document"))
		return
	}
	writeDoc(w, http.StatusOK, doc)
}

// postEdit commits a delta without a websocket, for one-shot clients.
func (s *Server) postEdit(w http.ResponseWriter, r *http.Request) {
	doc := s.lookup(mux.Vars(r)["id"])
	if doc == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("no such document"))
		return
	}
	frame := &EditFrame{}
	if err := json.NewDecoder(r.Body).Decode(frame); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rev, delta, err := doc.commit(nil, frame.Rev, frame.Delta, s.Spec.Policy)
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UpdateFrame{Rev: rev, Delta: delta})
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	doc := s.lookup(mux.Vars(r)["id"])
	if doc == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("no such document"))
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Spec.Log.Warn("upgrade failed", "error", err)
		return
	}
	sess := &session{
		id:   uuid.NewString(),
		doc:  doc,
		conn: conn,
		out:  make(chan any, sendBufferSize),
		log:  s.Spec.Log,
	}
	rev, value := doc.attach(sess)
	d, err := encode.Bytes(value)
	if err != nil {
		s.Spec.Log.Error("encode snapshot", "error", err)
		conn.Close()
		return
	}
	sess.send(UpdateFrame{Rev: rev, Value: d})
	s.Spec.Log.Info("session attached", "doc", doc.id, "session", sess.id)
	go sess.writePump()
	go sess.readPump(s)
}

func writeDoc(w http.ResponseWriter, status int, doc *document) {
	rev, value := doc.snapshot()
	d, err := encode.Bytes(value)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(DocResponse{ID: doc.id, Rev: rev, Value: d})
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}
