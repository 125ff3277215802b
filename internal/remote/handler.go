package remote

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	hconsole "github.com/msto63/hcmd/foundation/console"
	"github.com/msto63/hcmd/foundation/console/dispatch"
	"github.com/msto63/hcmd/foundation/console/output"
	"github.com/msto63/hcmd/foundation/console/registry"
	mdwerror "github.com/msto63/hcmd/foundation/core/error"
	mdwlog "github.com/msto63/hcmd/foundation/core/log"
	"github.com/msto63/hcmd/foundation/utils/stringx"
	"github.com/msto63/hcmd/pkg/core/version"
)

// Message types
const (
	TypeExec    = "exec"
	TypePing    = "ping"
	TypeHello   = "hello"
	TypeOutput  = "output"
	TypePong    = "pong"
	TypeError   = "error"
	TypeGoodbye = "goodbye"
)

// Message is a request sent by the client
type Message struct {
	Type    string          `json:"type"`              // "exec", "ping"
	Payload json.RawMessage `json:"payload,omitempty"` // Message-specific payload
}

// ExecPayload carries console input
type ExecPayload struct {
	Input string `json:"input"`
}

// Response is sent by the server
type Response struct {
	Type    string      `json:"type"`              // "hello", "output", "pong", "error", "goodbye"
	Payload interface{} `json:"payload,omitempty"` // Response-specific payload
}

// HelloPayload is sent once after the upgrade
type HelloPayload struct {
	SessionID string `json:"session_id"`
	Version   string `json:"version"`
	Protocol  string `json:"protocol"`
	Text      string `json:"text,omitempty"` // output of the autoexec lines
}

// OutputPayload carries the sink output of one exec message
type OutputPayload struct {
	Text       string `json:"text"`
	Statements int    `json:"statements"`
	Dispatched int    `json:"dispatched"`
	Aborted    int    `json:"aborted,omitempty"`
}

// ErrorPayload represents an error payload
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HandlerConfig configures the websocket console handler
type HandlerConfig struct {
	// Session is the template for every connection's interpreter. Output
	// is set per connection; a nil Logger uses the handler's.
	Session      hconsole.Options
	Autoexec     []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ReadLimit    int64
	CheckOrigin  func(r *http.Request) bool
}

// Handler serves one interpreter per websocket connection
type Handler struct {
	cfg      HandlerConfig
	upgrader websocket.Upgrader
	logger   *mdwlog.Logger
	sessions atomic.Int64

	mu       sync.RWMutex // guards the session template
	session  hconsole.Options
	autoexec []string
}

// NewHandler creates a websocket console handler
func NewHandler(cfg HandlerConfig, logger *mdwlog.Logger) *Handler {
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 5 * time.Minute
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}

	return &Handler{
		cfg:      cfg,
		session:  cfg.Session,
		autoexec: cfg.Autoexec,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     cfg.CheckOrigin,
		},
		logger: logger.WithField("component", "remote-console"),
	}
}

// Reconfigure replaces the session template. Open sessions keep their
// interpreter; the next connection uses the new settings.
func (h *Handler) Reconfigure(session hconsole.Options, autoexec []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = session
	h.autoexec = autoexec
	h.logger.Info("session template updated", mdwlog.Fields{
		"aliases":  len(session.Aliases),
		"autoexec": len(autoexec),
	})
}

func (h *Handler) template() (hconsole.Options, []string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.session, h.autoexec
}

// Sessions returns the number of open connections
func (h *Handler) Sessions() int64 {
	return h.sessions.Load()
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.LogError(mdwerror.Wrap(err, "websocket upgrade failed").
			WithCode(mdwerror.CodeConnectionFailed).
			WithOperation("remote.ServeHTTP").
			WithDetail("remote", r.RemoteAddr))
		return
	}
	h.handleConnection(conn)
}

// session is the per-connection state
type session struct {
	conn   *websocket.Conn
	interp *hconsole.Interpreter
	out    *output.Buffer
	logger *mdwlog.Logger
	quit   bool
}

// handleConnection runs the read loop of a single connection. Messages are
// processed in order; the interpreter is never shared between goroutines.
func (h *Handler) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	h.sessions.Add(1)
	defer h.sessions.Add(-1)

	opts, autoexec := h.template()
	s := h.newSession(conn, opts)
	s.logger.Info("remote session opened", mdwlog.Fields{"remote": conn.RemoteAddr().String()})

	if h.cfg.ReadLimit > 0 {
		conn.SetReadLimit(h.cfg.ReadLimit)
	}
	conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
		return nil
	})

	s.interp.Exec(autoexec...)
	h.send(s, Response{Type: TypeHello, Payload: HelloPayload{
		SessionID: s.interp.SessionID(),
		Version:   version.Version,
		Protocol:  version.Protocol,
		Text:      s.out.Drain(),
	}})

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.WarnWithErr("websocket read error", err)
			} else {
				s.logger.Info("remote session closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))

		switch msg.Type {
		case TypePing:
			h.send(s, Response{Type: TypePong})

		case TypeExec:
			var payload ExecPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				h.sendError(s, mdwerror.CodeInvalidInput, "invalid exec payload")
				continue
			}
			h.exec(s, payload.Input)

			if s.quit {
				h.send(s, Response{Type: TypeGoodbye})
				deadline := time.Now().Add(h.cfg.WriteTimeout)
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "quit"), deadline)
				s.logger.Info("remote session ended by quit")
				return
			}

		default:
			h.sendError(s, mdwerror.CodeInvalidMessage, "unknown message type: "+msg.Type)
		}
	}
}

func (h *Handler) newSession(conn *websocket.Conn, opts hconsole.Options) *session {
	s := &session{conn: conn, out: output.NewBuffer()}

	opts.Output = s.out
	if opts.Logger == nil {
		opts.Logger = h.logger
	}
	s.interp = hconsole.New(opts)
	s.logger = h.logger.WithSession(s.interp.SessionID())

	quit := dispatch.HandlerFunc(func(*dispatch.Context) error {
		s.quit = true
		return nil
	})
	for _, name := range []string{"quit", "exit"} {
		cmd := registry.Command{Name: name, Usage: "- closes the remote session"}
		if err := s.interp.Register(cmd, quit); err != nil {
			s.logger.WarnWithErr("session command not registered", err, mdwlog.Fields{"command": name})
		}
	}
	return s
}

// exec parses input and sends everything the sink received
func (h *Handler) exec(s *session, input string) {
	s.interp.Parse(input)
	stats := s.interp.LastStats()

	s.logger.Debug("remote input executed", mdwlog.Fields{
		"input":      stringx.Truncate(input, 80, "..."),
		"statements": stats.Statements,
		"dispatched": stats.Dispatched,
	})

	h.send(s, Response{Type: TypeOutput, Payload: OutputPayload{
		Text:       s.out.Drain(),
		Statements: stats.Statements,
		Dispatched: stats.Dispatched,
		Aborted:    stats.Aborted,
	}})
}

// send sends a response message via WebSocket
func (h *Handler) send(s *session, resp Response) {
	s.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
	if err := s.conn.WriteJSON(resp); err != nil {
		s.logger.WarnWithErr("websocket send error", err)
	}
}

// sendError sends an error response via WebSocket
func (h *Handler) sendError(s *session, code mdwerror.Code, message string) {
	s.logger.Debug("remote request rejected", mdwlog.Fields{"code": code, "message": message})
	h.send(s, Response{
		Type: TypeError,
		Payload: ErrorPayload{
			Code:    code.String(),
			Message: message,
		},
	})
}
