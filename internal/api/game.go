package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/isaacjstriker/blockdrop/games/blockdrop"
	"go.uber.org/zap"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all connections for now. In production, you'd want to restrict this.
		return true
	},
}

type clientMessage struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

type stateMessage struct {
	Type  string             `json:"type"`
	State blockdrop.Snapshot `json:"state"`
}

type gameOverMessage struct {
	Type  string `json:"type"`
	Score int    `json:"score"`
	Lines int    `json:"lines"`
	Level int    `json:"level"`
}

// handleGameConnection upgrades to a WebSocket and plays one session per
// connection. The client sends {"type":"input","key":"left"} and gets a
// state message after every change.
func (s *APIServer) handleGameConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("failed to upgrade connection", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	logger := s.logger.With(zap.String("remote", r.RemoteAddr))
	updates := make(chan blockdrop.Snapshot, 1)
	// Game over is reported on its own channel so a newer frame can't
	// replace it before it is written.
	overs := make(chan blockdrop.State, 1)
	loop := blockdrop.NewLoop(
		blockdrop.NewEngine(s.rules, s.pieces()),
		blockdrop.WithLogger(logger),
		blockdrop.WithObserver(blockdrop.LatestObserver(updates)),
		blockdrop.WithGameOver(func(st blockdrop.State) {
			select {
			case overs <- st:
			case <-ctx.Done():
			}
		}),
	)

	go loop.Run(ctx)
	go readInput(ctx, cancel, conn, loop, logger)

	logger.Info("web game started")
	gameLoop(ctx, conn, loop.Snapshot(), updates, overs, logger)
}

func readInput(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, loop *blockdrop.Loop, logger *zap.Logger) {
	defer cancel()
	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			// client disconnected
			return
		}
		if msg.Type != "input" {
			continue
		}

		cmd, ok := blockdrop.ParseCommand(msg.Key)
		if !ok {
			logger.Debug("unknown input", zap.String("key", msg.Key))
			continue
		}
		if err := loop.Send(ctx, cmd); err != nil {
			return
		}
	}
}

// gameLoop pushes state to the client until it disconnects
func gameLoop(ctx context.Context, conn *websocket.Conn, initial blockdrop.Snapshot, updates <-chan blockdrop.Snapshot, overs <-chan blockdrop.State, logger *zap.Logger) {
	write := func(v any) bool {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(v); err != nil {
			logger.Debug("write failed", zap.Error(err))
			return false
		}
		return true
	}

	if !write(stateMessage{Type: "state", State: initial}) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-updates:
			if !write(stateMessage{Type: "state", State: snap}) {
				return
			}
		case st := <-overs:
			if !write(gameOverMessage{Type: "gameOver", Score: st.Score, Lines: st.Lines, Level: st.Level}) {
				return
			}
		}
	}
}
