// Package server exposes the equity engine to trainer frontends over
// WebSocket, streaming progress frames during long runs.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/config"
	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/deck"
	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/equity"
	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/statistics"
)

// Server serves simulate and curve requests over WebSocket
type Server struct {
	addr     string
	cfg      *config.SimulationSettings
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// New creates a server using the given simulation defaults
func New(addr string, cfg *config.SimulationSettings, logger *log.Logger) *Server {
	return &Server{
		addr: addr,
		cfg:  cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Trainer frontends connect from file:// and localhost origins.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.WithPrefix("server"),
	}
}

// Handler returns the HTTP handler serving /ws and /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start serves until the listener fails
func (s *Server) Start() error {
	s.logger.Info("Starting equity server", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	// Cancelled when the read loop ends so an in-flight run aborts as soon
	// as the client goes away.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	client := &client{conn: conn, logger: s.logger}
	s.logger.Info("Client connected", "remote", conn.RemoteAddr())

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("Client read error", "error", err)
			}
			return
		}

		switch msg.Type {
		case MessageTypeSimulate:
			s.handleSimulate(ctx, client, msg)
		case MessageTypeCurve:
			s.handleCurve(ctx, client, msg)
		default:
			client.sendError("unknown message type: " + string(msg.Type))
		}
	}
}

func (s *Server) handleSimulate(ctx context.Context, c *client, msg Message) {
	var req SimulateRequest
	if err := unmarshalData(msg, &req); err != nil {
		c.sendError(err.Error())
		return
	}

	players := make([]equity.Player, 0, len(req.Players))
	for _, spec := range req.Players {
		var hole []deck.Card
		if spec.Hole != "" {
			var err error
			hole, err = deck.ParseCards(spec.Hole)
			if err != nil {
				c.sendError(err.Error())
				return
			}
		}
		players = append(players, equity.Player{
			Name:   spec.Name,
			Hole:   hole,
			Active: spec.Active,
			Hero:   spec.Hero,
		})
	}

	board, err := deck.ParseCards(req.Board)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	dead, err := deck.ParseCards(req.Dead)
	if err != nil {
		c.sendError(err.Error())
		return
	}

	cfg := equity.Config{
		Trials:  req.Trials,
		Seed:    s.seedFor(req.Seed),
		Workers: s.cfg.Workers,
		Logger:  s.logger,
		OnProgress: func(done, total int) {
			c.send(MessageTypeProgress, ProgressData{Done: done, Total: total})
		},
	}
	if cfg.Trials <= 0 {
		cfg.Trials = s.cfg.Trials
	}

	result, err := equity.Simulate(ctx, players, board, dead, cfg)
	if err != nil {
		c.sendError(err.Error())
		return
	}

	resp := SimulateResponse{
		Trials:  result.Trials,
		Players: make([]PlayerResult, len(players)),
	}
	for i, p := range players {
		pr := PlayerResult{Name: p.Name, Wins: result.Wins[i], Ties: result.Ties[i]}
		if result.Trials > 0 {
			pr.WinPct = float64(result.Wins[i]) / float64(result.Trials) * 100
			pr.TiePct = float64(result.Ties[i]) / float64(result.Trials) * 100
			prop := statistics.Proportion{Successes: result.Wins[i], Trials: result.Trials}
			pr.MarginPct = prop.MarginPct()
		}
		resp.Players[i] = pr
	}
	c.send(MessageTypeResult, resp)
}

func (s *Server) handleCurve(ctx context.Context, c *client, msg Message) {
	var req CurveRequest
	if err := unmarshalData(msg, &req); err != nil {
		c.sendError(err.Error())
		return
	}

	heroCards, err := deck.ParseCards(req.Hero)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	if len(heroCards) != 2 {
		c.sendError("hero must hold exactly 2 cards")
		return
	}

	opponents := req.Opponents
	if opponents <= 0 {
		opponents = equity.MaxCurveOpponents
	}
	trials := req.Trials
	if trials <= 0 {
		trials = s.cfg.CurveTrials
	}

	points, err := equity.Curve(ctx, [2]deck.Card{heroCards[0], heroCards[1]}, opponents, trials, s.seedFor(req.Seed))
	if err != nil {
		c.sendError(err.Error())
		return
	}

	resp := CurveResponse{Points: make([]CurvePointData, len(points))}
	for i, p := range points {
		resp.Points[i] = CurvePointData{Opponents: p.Opponents, EquityPct: p.EquityPct}
	}
	c.send(MessageTypeCurveResult, resp)
}

// seedFor picks the request seed, the configured seed, or the wall clock,
// in that order.
func (s *Server) seedFor(requested *int64) int64 {
	if requested != nil {
		return *requested
	}
	if s.cfg.Seed != 0 {
		return s.cfg.Seed
	}
	return time.Now().UnixNano()
}

// client wraps a WebSocket connection with a write lock: progress frames
// arrive from the simulator's ticker goroutine while the request handler
// owns the connection.
type client struct {
	conn   *websocket.Conn
	logger *log.Logger
	mu     sync.Mutex
}

func (c *client) send(t MessageType, data any) {
	msg, err := NewMessage(t, data)
	if err != nil {
		c.logger.Error("Failed to encode message", "type", t, "error", err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(msg); err != nil {
		c.logger.Warn("Failed to write message", "type", t, "error", err)
	}
}

func (c *client) sendError(message string) {
	c.send(MessageTypeError, ErrorData{Message: message})
}

func unmarshalData(msg Message, v any) error {
	if err := json.Unmarshal(msg.Data, v); err != nil {
		return fmt.Errorf("decoding %s request: %w", msg.Type, err)
	}
	return nil
}
