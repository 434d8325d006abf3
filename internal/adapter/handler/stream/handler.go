// Package stream serves interactive quote sessions over websocket. Each
// connection owns one QuoteSession and receives a full state snapshot after
// every change, including asynchronously arriving quote results.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"bridgequote/internal/application"
	"bridgequote/internal/application/port"
	"bridgequote/internal/config"
	"bridgequote/internal/domain/entity"
	"bridgequote/internal/metrics"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	sendBuffer   = 64
)

// Client message types.
const (
	MsgGetChains      = "get_chains"
	MsgSearchTokens   = "search_tokens"
	MsgSetSourceChain = "set_source_chain"
	MsgSetDestChain   = "set_dest_chain"
	MsgSetSourceToken = "set_source_token"
	MsgSetDestToken   = "set_dest_token"
	MsgSetAmount      = "set_amount"
	MsgSetSlippage    = "set_slippage"
	MsgSwap           = "swap"
	MsgSetPolicy      = "set_policy"
	MsgSelectRoute    = "select_route"
	MsgSnapshot       = "snapshot"
	MsgPing           = "ping"
)

// Server message types.
const (
	MsgConnected = "connected"
	MsgState     = "state"
	MsgChains    = "chains"
	MsgTokens    = "tokens"
	MsgError     = "error"
	MsgPong      = "pong"
)

// ClientMessage is a request from the browser. Only the fields relevant to Type are read.
type ClientMessage struct {
	Type     string `json:"type"`
	ChainID  string `json:"chainId,omitempty"`
	Address  string `json:"address,omitempty"`
	Query    string `json:"query,omitempty"`
	Amount   string `json:"amount,omitempty"`
	Slippage string `json:"slippage,omitempty"`
	Policy   string `json:"policy,omitempty"`
	BridgeID string `json:"bridgeId,omitempty"`
}

// ServerMessage is pushed to the browser.
type ServerMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Handler upgrades HTTP requests to websocket quote sessions.
type Handler struct {
	metadata port.MetadataService
	quotes   port.QuoteService
	cfg      config.Config
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewHandler(metadata port.MetadataService, quotes port.QuoteService, cfg config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		metadata: metadata,
		quotes:   quotes,
		cfg:      cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(*http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.Named("StreamHandler"),
	}
}

// ServeHTTP runs one session for the lifetime of the connection.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	send := make(chan ServerMessage, sendBuffer)
	enqueue := func(msg ServerMessage) {
		select {
		case send <- msg:
		case <-ctx.Done():
		default:
			h.logger.Warn("Send buffer full, dropping message", zap.String("type", msg.Type))
		}
	}

	session := application.NewQuoteSession(ctx, h.quotes, h.metadata, h.cfg, h.logger, func(snap application.SessionSnapshot) {
		enqueue(ServerMessage{Type: MsgState, SessionID: snap.ID, Data: snap})
	})
	defer session.Close()

	logger := h.logger.With(zap.String("sessionId", session.ID()))
	metrics.StreamSessionsActive.Inc()
	defer metrics.StreamSessionsActive.Dec()
	logger.Info("Quote session opened", zap.String("remoteAddr", r.RemoteAddr))

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writeLoop(ctx, conn, send, logger)
	}()

	enqueue(ServerMessage{Type: MsgConnected, SessionID: session.ID(), Data: session.Snapshot()})

	if limit := h.cfg.Stream.ReadLimitBytes; limit > 0 {
		conn.SetReadLimit(limit)
	}
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("Websocket read failed", zap.Error(err))
			}
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			enqueue(ServerMessage{Type: MsgError, Error: "malformed message"})
			continue
		}
		metrics.StreamMessages.WithLabelValues(msg.Type).Inc()

		reply, err := h.Dispatch(ctx, session, msg)
		if err != nil {
			logger.Debug("Message rejected", zap.String("type", msg.Type), zap.Error(err))
			enqueue(ServerMessage{Type: MsgError, SessionID: session.ID(), Error: err.Error()})
			continue
		}
		if reply != nil {
			enqueue(*reply)
		}
	}

	cancel()
	<-writerDone
	logger.Info("Quote session closed")
}

// Dispatch applies one client message to the session. Selection changes are
// answered by the state snapshot the session pushes, so they return no reply.
func (h *Handler) Dispatch(ctx context.Context, session *application.QuoteSession, msg ClientMessage) (*ServerMessage, error) {
	switch msg.Type {
	case MsgGetChains:
		return &ServerMessage{Type: MsgChains, SessionID: session.ID(), Data: h.metadata.Chains(ctx)}, nil
	case MsgSearchTokens:
		chainID, err := entity.NewChainID(msg.ChainID)
		if err != nil {
			return nil, err
		}
		h.metadata.EnsureLoaded(ctx, chainID)
		return &ServerMessage{Type: MsgTokens, SessionID: session.ID(), Data: h.metadata.FilterTokens(ctx, chainID, msg.Query)}, nil
	case MsgSetSourceChain, MsgSetDestChain:
		chainID, err := entity.NewChainID(msg.ChainID)
		if err != nil {
			return nil, err
		}
		if msg.Type == MsgSetSourceChain {
			session.SetSourceChain(ctx, chainID)
		} else {
			session.SetDestChain(ctx, chainID)
		}
		return nil, nil
	case MsgSetSourceToken:
		return nil, session.SetSourceToken(ctx, msg.Address)
	case MsgSetDestToken:
		return nil, session.SetDestToken(ctx, msg.Address)
	case MsgSetAmount:
		session.SetAmount(msg.Amount)
		return nil, nil
	case MsgSetSlippage:
		session.SetSlippage(msg.Slippage)
		return nil, nil
	case MsgSwap:
		session.SwapDirection()
		return nil, nil
	case MsgSetPolicy:
		return nil, session.SetPolicy(msg.Policy)
	case MsgSelectRoute:
		return nil, session.SelectRoute(msg.BridgeID)
	case MsgSnapshot:
		return &ServerMessage{Type: MsgState, SessionID: session.ID(), Data: session.Snapshot()}, nil
	case MsgPing:
		return &ServerMessage{Type: MsgPong, SessionID: session.ID()}, nil
	default:
		return nil, errors.New("unknown message type: " + msg.Type)
	}
}

func (h *Handler) writeLoop(ctx context.Context, conn *websocket.Conn, send <-chan ServerMessage, logger *zap.Logger) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	writeTimeout := h.cfg.Stream.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}

	for {
		select {
		case msg := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				logger.Warn("Websocket write failed", zap.Error(err))
				_ = conn.Close()
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				logger.Warn("Websocket ping failed", zap.Error(err))
				_ = conn.Close()
				return
			}
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second),
			)
			return
		}
	}
}
