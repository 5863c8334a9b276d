// ABOUTME: WebSocket control surface for the machine
// ABOUTME: Queues remote trigger/load/status commands into the engine loop
package control

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/padbank/padbank-go/internal/protocol"
	"github.com/padbank/padbank-go/pkg/engine"
)

// Controller is the machine surface the server drives. Every call is
// queued into the single control loop; none runs concurrently with a
// tick.
type Controller interface {
	Trigger(voice int) error
	LoadIndex(voice, index int) error
	LoadRef(voice int, ref string) error
	Status() []engine.VoiceStatus
	Samples() map[string][]string
	Rescan() error
}

// Config holds control server configuration.
type Config struct {
	Port int
}

// Server exposes the control surface over WebSocket.
type Server struct {
	config Config
	ctrl   Controller

	upgrader   websocket.Upgrader
	httpServer *http.Server
}

// New creates a control server.
func New(config Config, ctrl Controller) *Server {
	return &Server{
		config: config,
		ctrl:   ctrl,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Start begins serving. Non-blocking; errors after startup are logged.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/padbank", s.handleWebSocket)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: mux,
	}

	go func() {
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("control server error: %v", err)
		}
	}()

	log.Printf("Control surface listening on :%d", s.config.Port)
	return nil
}

// Stop shuts the server down.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	clientID := uuid.New().String()
	log.Printf("Control client connected: %s (%s)", clientID, r.RemoteAddr)

	for {
		var cmd protocol.Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("control client %s read error: %v", clientID, err)
			}
			return
		}

		reply := s.dispatch(cmd)
		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("control client %s write error: %v", clientID, err)
			return
		}
	}
}

// dispatch executes one command against the machine.
func (s *Server) dispatch(cmd protocol.Command) protocol.Reply {
	switch cmd.Type {
	case protocol.CmdTrigger:
		if err := s.ctrl.Trigger(cmd.Voice); err != nil {
			return errorReply(cmd.Type, err)
		}
		return protocol.Reply{Type: protocol.ReplyAck, Request: cmd.Type}

	case protocol.CmdLoad:
		var err error
		switch {
		case cmd.Ref != "":
			err = s.ctrl.LoadRef(cmd.Voice, cmd.Ref)
		case cmd.Index != nil:
			err = s.ctrl.LoadIndex(cmd.Voice, *cmd.Index)
		default:
			err = fmt.Errorf("load needs an index or a ref")
		}
		if err != nil {
			return errorReply(cmd.Type, err)
		}
		return protocol.Reply{Type: protocol.ReplyAck, Request: cmd.Type}

	case protocol.CmdStatus:
		return protocol.Reply{
			Type:    protocol.ReplyStatus,
			Request: cmd.Type,
			Voices:  StatusReport(s.ctrl.Status()),
		}

	case protocol.CmdList:
		return protocol.Reply{
			Type:    protocol.ReplyList,
			Request: cmd.Type,
			Samples: s.ctrl.Samples(),
		}

	case protocol.CmdRescan:
		if err := s.ctrl.Rescan(); err != nil {
			return errorReply(cmd.Type, err)
		}
		return protocol.Reply{Type: protocol.ReplyAck, Request: cmd.Type}

	default:
		return errorReply(cmd.Type, fmt.Errorf("unknown command %q", cmd.Type))
	}
}

func errorReply(request string, err error) protocol.Reply {
	return protocol.Reply{Type: protocol.ReplyError, Request: request, Error: err.Error()}
}

// StatusReport converts engine statuses to their wire form.
func StatusReport(statuses []engine.VoiceStatus) []protocol.VoiceStatus {
	out := make([]protocol.VoiceStatus, len(statuses))
	for i, st := range statuses {
		out[i] = protocol.VoiceStatus{
			Voice:     i,
			State:     st.State.String(),
			Asset:     st.Asset,
			Cursor:    st.Cursor,
			Total:     st.Total,
			Buffered:  st.Buffered,
			Underruns: st.Underruns,
		}
	}
	return out
}
