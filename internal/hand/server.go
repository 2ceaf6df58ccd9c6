package hand

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iburimskiy/particle-morph/internal/logging"
)

const (
	// A detector that stays silent this long is treated as gone.
	idleTimeout  = 5 * time.Second
	maxFrameSize = 64 << 10
)

// Frame is one detector message. Either raw landmarks for every detected
// hand, or a tension computed on the detector side.
type Frame struct {
	Hands   [][]Landmark `json:"hands,omitempty"`
	Tension *float64     `json:"tension,omitempty"`
	Present *bool        `json:"present,omitempty"`
}

// Reading resolves the frame to a control signal value.
func (f Frame) Reading() (float64, bool) {
	if f.Tension != nil {
		present := true
		if f.Present != nil {
			present = *f.Present
		}
		return *f.Tension, present
	}
	return Tension(f.Hands)
}

// Server accepts detector connections on a websocket and forwards each frame
// to the sink. When the last detector disconnects the sink is reset to
// (0, false).
type Server struct {
	sink     Sink
	upgrader websocket.Upgrader
	clients  atomic.Int32
}

func NewServer(sink Sink) *Server {
	return &Server{
		sink: sink,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 1024,
			// The detector page is usually opened from disk or another port.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Clients is the number of connected detectors.
func (s *Server) Clients() int {
	return int(s.clients.Load())
}

// Handler routes /ws to the detector endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", s)
	return mux
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger().Warn("detector upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	log := logging.Logger().With("remote", r.RemoteAddr)
	s.clients.Add(1)
	log.Info("detector connected")
	defer func() {
		if s.clients.Add(-1) == 0 {
			s.sink.UpdateSignal(0, false)
		}
		log.Info("detector disconnected")
	}()

	conn.SetReadLimit(maxFrameSize)
	for {
		_ = conn.SetReadDeadline(time.Now().Add(idleTimeout))
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("detector read ended", "err", err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			log.Warn("malformed detector frame", "err", err)
			continue
		}
		tension, present := frame.Reading()
		s.sink.UpdateSignal(tension, present)
	}
}

// ListenAndServe serves the detector endpoint on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logging.Logger().Info("waiting for hand detector", "addr", "ws://"+ln.Addr().String()+"/ws")
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve detector: %w", err)
	}
	return nil
}
