package observer

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/tower-jumper/constants"
	"github.com/lixenwraith/tower-jumper/status"
)

// ScoreView is the /score response, read from the status registry
type ScoreView struct {
	RunID          string `json:"run_id"`
	Score          int64  `json:"score"`
	HighestFloor   int64  `json:"highest_floor"`
	ConfirmedCombo int64  `json:"confirmed_combo"`
	ComboJumps     int64  `json:"combo_jumps"`
	ComboFloors    int64  `json:"combo_floors"`
	Milestones     int64  `json:"milestones"`
	Frames         int64  `json:"frames"`
	GameOver       bool   `json:"game_over"`
}

// Server exposes the observer routes
type Server struct {
	reg      *status.Registry
	hub      *Hub
	log      zerolog.Logger
	upgrader websocket.Upgrader
	router   *mux.Router
}

// NewServer builds the route table over reg and hub
func NewServer(reg *status.Registry, hub *Hub, log zerolog.Logger) *Server {
	s := &Server{
		reg: reg,
		hub: hub,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	r := mux.NewRouter()
	r.HandleFunc("/score", s.handleScore).Methods(http.MethodGet)
	r.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
	r.HandleFunc("/metrics/{group}", s.handleMetrics).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)
	s.router = r
	return s
}

// Handler returns the route table
func (s *Server) Handler() http.Handler { return s.router }

// Score reads the current score view
func (s *Server) Score() ScoreView {
	ints := s.reg.Ints
	return ScoreView{
		RunID:          s.reg.Strings.Get(status.KeyRunID).Load(),
		Score:          ints.Get(status.KeyScore).Load(),
		HighestFloor:   ints.Get(status.KeyHighestFloor).Load(),
		ConfirmedCombo: ints.Get(status.KeyConfirmedCombo).Load(),
		ComboJumps:     ints.Get(status.KeyComboJumps).Load(),
		ComboFloors:    ints.Get(status.KeyComboFloors).Load(),
		Milestones:     ints.Get(status.KeyMilestones).Load(),
		Frames:         ints.Get(status.KeyFrames).Load(),
		GameOver:       s.reg.Bools.Get(status.KeyGameOver).Load(),
	}
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then disconnects websocket clients
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.hub.Close()
		shutCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	s.log.Info().Str("addr", ln.Addr().String()).Msg("observer listening")
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return err
}

func (s *Server) handleScore(rw http.ResponseWriter, r *http.Request) {
	writeJSON(rw, s.Score())
}

func (s *Server) handleMetrics(rw http.ResponseWriter, r *http.Request) {
	group := mux.Vars(r)["group"]
	snap := s.reg.Snapshot(group)
	if group != "" && len(snap) == 0 {
		http.Error(rw, "unknown metric group", http.StatusNotFound)
		return
	}
	writeJSON(rw, snap)
}

func (s *Server) handleWS(rw http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	id, out := s.hub.Subscribe()
	defer s.hub.Unsubscribe(id)
	s.log.Debug().Uint64("client", id).Str("remote", r.RemoteAddr).Msg("observer client joined")

	// Reader only detects disconnects; inbound messages are ignored
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			s.log.Debug().Uint64("client", id).Msg("observer client left")
			return
		case msg, ok := <-out:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "run ended"),
					time.Now().Add(time.Second))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(constants.ObserverWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}

func writeJSON(rw http.ResponseWriter, v any) {
	rw.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(rw).Encode(v)
}
