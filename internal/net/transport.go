package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"IshiGrid/internal/config"
	"IshiGrid/internal/export"
	"IshiGrid/internal/grid"
	"IshiGrid/internal/state"
)

// Message is a command sent by a browser front end.
type Message struct {
	Type   string      `json:"type"`
	Point  *grid.Point `json:"point,omitempty"`
	X      float64     `json:"x,omitempty"`
	Y      float64     `json:"y,omitempty"`
	Width  float64     `json:"width,omitempty"`
	Height float64     `json:"height,omitempty"`
	Format string      `json:"format,omitempty"`
}

// Reply answers one Message.
type Reply struct {
	Type   string            `json:"type"`
	Action *state.Action     `json:"action,omitempty"`
	Undo   *state.UndoResult `json:"undo,omitempty"`
	Point  *grid.Point       `json:"point,omitempty"`
	State  *state.Snapshot   `json:"state,omitempty"`
	Export *export.Result    `json:"export,omitempty"`
	Notice string            `json:"notice,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// NothingToExportNotice is shown when an export finds no eligible shape.
const NothingToExportNotice = "There are no shapes to export."

// Peer is one connected front end with its own editing session.
type Peer struct {
	Conn    *websocket.Conn
	Session *state.Session
}

// PeerManager tracks the live connections of the server.
type PeerManager struct {
	peers map[string]*Peer
	mu    sync.RWMutex
}

// NewPeerManager creates an empty manager.
func NewPeerManager() *PeerManager {
	return &PeerManager{
		peers: make(map[string]*Peer),
	}
}

// Add registers a peer under its session ID.
func (pm *PeerManager) Add(peer *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.peers[peer.Session.ID()] = peer
	log.Printf("[WS] Front end connected from %s (session %s)", peer.Conn.RemoteAddr(), peer.Session.ID())
}

// Remove forgets a peer.
func (pm *PeerManager) Remove(peer *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.peers, peer.Session.ID())
	log.Printf("[WS] Front end %s disconnected", peer.Conn.RemoteAddr())
}

// Count returns the number of connected peers.
func (pm *PeerManager) Count() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// CloseAll sends a close frame to every peer.
func (pm *PeerManager) CloseAll() {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for _, p := range pm.peers {
		_ = p.Conn.WriteControl(websocket.CloseMessage, msg, deadline)
	}
}

// Server is the headless editor. Every WebSocket connection gets a private
// session; nothing is shared between connections.
type Server struct {
	cfg      config.Config
	peers    *PeerManager
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// NewServer creates a server for cfg.
func NewServer(cfg config.Config) *Server {
	s := &Server{
		cfg:   cfg,
		peers: NewPeerManager(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("/ws", s.handleWS)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	return s
}

// Peers exposes the connection tracker.
func (s *Server) Peers() *PeerManager {
	return s.peers
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	log.Printf("Editor server listening on %s", ln.Addr())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	s.peers.CloseAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	peer := &Peer{
		Conn:    conn,
		Session: state.NewSession(state.WithHistoryLimit(s.cfg.Editor.HistoryLimit)),
	}
	s.peers.Add(peer)
	defer s.peers.Remove(peer)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Read from %s: %v", conn.RemoteAddr(), err)
			}
			return
		}
		reply := s.handle(peer.Session, msg)
		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("[WS] Write to %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
}

// handle applies one message to a session. Messages of one connection are
// handled in order, one at a time.
func (s *Server) handle(sess *state.Session, msg Message) Reply {
	switch msg.Type {
	case "pick":
		if msg.Point == nil {
			return Reply{Type: "error", Error: "pick without point"}
		}
		action := sess.Pick(*msg.Point)
		return s.picked(sess, action)

	case "pointer":
		_, action := sess.PickAt(msg.X, msg.Y, msg.Width, msg.Height)
		return s.picked(sess, action)

	case "hover":
		p := grid.FromRender(msg.X, msg.Y, msg.Width, msg.Height)
		return Reply{Type: "hover", Point: &p}

	case "undo":
		result, err := sess.Undo()
		if err != nil && !errors.Is(err, state.ErrEmptyState) {
			return Reply{Type: "error", Error: err.Error()}
		}
		snap := sess.Snapshot()
		return Reply{Type: "undone", Undo: &result, State: &snap}

	case "reset":
		sess.Reset()
		snap := sess.Snapshot()
		return Reply{Type: "reset", State: &snap}

	case "state":
		snap := sess.Snapshot()
		return Reply{Type: "state", State: &snap}

	case "export":
		format := msg.Format
		if format == "" {
			format = s.cfg.Export.Format
		}
		res, err := export.Render(sess.Snapshot(), format, s.cfg.Export.Basename, s.cfg.ExportOptions()...)
		switch {
		case errors.Is(err, export.ErrNothingToExport):
			return Reply{Type: "notice", Notice: NothingToExportNotice}
		case err != nil:
			return Reply{Type: "error", Error: err.Error()}
		}
		return Reply{Type: "export", Export: res}
	}
	return Reply{Type: "error", Error: fmt.Sprintf("unknown message type %q", msg.Type)}
}

func (s *Server) picked(sess *state.Session, action state.Action) Reply {
	snap := sess.Snapshot()
	return Reply{Type: "picked", Action: &action, State: &snap}
}
