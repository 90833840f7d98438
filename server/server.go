package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lazharichir/holdem/config"
	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/server/connection"
	"github.com/lazharichir/holdem/server/handlers"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// Server is the WebSocket poker server: it owns the room store, the
// connection registry and the message router
type Server struct {
	cfg     *config.Config
	log     *zap.Logger
	store   *domain.Store
	connMgr *connection.Manager
	router  *handlers.Router
}

// welcomeMessage assigns a stable per-connection identity
type welcomeMessage struct {
	Type    string `json:"type"`
	Payload struct {
		ID string `json:"id"`
	} `json:"payload"`
}

// NewServer creates a poker server from its configuration
func NewServer(cfg *config.Config, log *zap.Logger) *Server {
	store := domain.NewStore()
	connMgr := connection.NewManager()
	router := handlers.NewRouter(store, connMgr, cfg.HostPassword, log, cfg.Debug)

	return &Server{
		cfg:     cfg,
		log:     log,
		store:   store,
		connMgr: connMgr,
		router:  router,
	}
}

// Start begins listening on the configured port
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWebSocket)

	s.log.Info("starting server", zap.String("port", s.cfg.Port))
	return http.ListenAndServe("0.0.0.0:"+s.cfg.Port, mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("Poker server running."))
}

// handleWebSocket upgrades the connection, assigns it an identity and
// starts its pumps
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &connection.Client{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	s.connMgr.Register(client)
	s.log.Info("client connected",
		zap.String("client", client.ID),
		zap.String("remote", r.RemoteAddr),
	)

	go s.writePump(client)
	go s.readPump(client)

	s.sendWelcome(client)
}

func (s *Server) sendWelcome(client *connection.Client) {
	msg := welcomeMessage{Type: "WELCOME"}
	msg.Payload.ID = client.ID
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.connMgr.Deliver(client.ID, data)
}

// readPump reads frames off the socket until it drops, then runs the
// disconnect path
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.connMgr.Unregister(client)
		client.Conn.Close()
		s.router.HandleDisconnect(client)
	}()

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Warn("read error", zap.String("client", client.ID), zap.Error(err))
			}
			return
		}
		s.router.HandleMessage(client, message)
	}
}

// writePump drains the client's send channel onto the socket
func (s *Server) writePump(client *connection.Client) {
	defer client.Conn.Close()

	for message := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			s.log.Warn("write error", zap.String("client", client.ID), zap.Error(err))
			return
		}
	}
	client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
