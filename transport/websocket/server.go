package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-web/internal/view"
	"github.com/rocketscienceinc/tictactoe-web/transport/cookie"
)

const (
	readLimit    = 4096
	pongWait     = 60 * time.Second
	writeTimeout = 10 * time.Second

	// pings go out before the peer's pong deadline runs out.
	pingPeriod = pongWait * 9 / 10
)

type gameUseCase interface {
	Open(ctx context.Context, sessionID string) (*usecase.Session, error)
	MakeMove(ctx context.Context, sessionID string, cell int) (*usecase.Session, error)
	JumpTo(ctx context.Context, sessionID string, step int) (*usecase.Session, error)
	Restart(ctx context.Context, sessionID string) (*usecase.Session, error)
}

type handlerFunc func(ctx context.Context, sessionID string, payload *RequestPayload) (*usecase.Session, error)

type Server struct {
	logger   *slog.Logger
	game     gameUseCase
	renderer *view.Renderer
	upgrader websocket.Upgrader

	sessionTTL time.Duration
	pongWait   time.Duration
	pingPeriod time.Duration

	handlers map[string]handlerFunc
}

// New builds the WebSocket endpoint. sessionTTL sets how long a session
// cookie handed out on upgrade lives.
func New(logger *slog.Logger, game gameUseCase, renderer *view.Renderer, sessionTTL time.Duration) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		game:     game,
		renderer: renderer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		sessionTTL: sessionTTL,
		pongWait:   pongWait,
		pingPeriod: pingPeriod,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionState] = server.handleState
	server.handlers[actionMove] = server.handleMove
	server.handlers[actionJump] = server.handleJump
	server.handlers[actionNew] = server.handleNew

	return server
}

// ServeHTTP upgrades the connection and serves the browser's session until it disconnects.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	session, err := that.game.Open(req.Context(), cookie.SessionID(req))
	if err != nil {
		log.Error("failed to open session", "error", err)
		http.Error(writer, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	header := http.Header{}
	if cookie.SessionID(req) != session.ID {
		header.Add("Set-Cookie", cookie.Session(session.ID, that.sessionTTL).String())
	}

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		// Upgrade has already replied to the client.
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log = log.With("session", session.ID)
	log.Info("WebSocket connection established")

	if err = that.handleMessages(req.Context(), conn, session.ID); err != nil {
		log.Error("error handling messages", "error", err)
	}

	log.Info("WebSocket connection closed")
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, sessionID string) error {
	log := that.logger.With("method", "handleMessages", "session", sessionID)

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(that.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(that.pongWait))
	})

	done := make(chan struct{})
	defer close(done)

	go that.keepAlive(conn, done)

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				log.Debug("failed to unmarshal message", "error", err)
				if err = that.sendError(conn, "", "malformed message"); err != nil {
					return err
				}
				continue
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		_ = conn.SetReadDeadline(time.Now().Add(that.pongWait))

		if err := that.dispatch(ctx, conn, sessionID, &message); err != nil {
			return err
		}
	}
}

// keepAlive pings the browser until done is closed or a ping fails.
// WriteControl may run alongside the reader loop's writes.
func (that *Server) keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(that.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				that.logger.Debug("failed to send ping", "error", err)
				return
			}
		}
	}
}

// dispatch runs one action. Only write failures end the connection.
func (that *Server) dispatch(ctx context.Context, conn *websocket.Conn, sessionID string, message *Message) error {
	log := that.logger.With("method", "dispatch", "action", message.Action)

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Debug("unknown action")
		return that.sendError(conn, message.Action, apperror.ErrUnknownAction.Error())
	}

	var payload RequestPayload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			log.Debug("failed to unmarshal payload", "error", err)
			return that.sendError(conn, message.Action, "malformed payload")
		}
	}

	session, err := handler(ctx, sessionID, &payload)
	if err != nil {
		if errors.Is(err, errMissingField) || isInvalidInput(err) {
			log.Debug("rejected request", "error", err)
			return that.sendError(conn, message.Action, err.Error())
		}

		log.Error("error processing message", "error", err)
		return that.sendError(conn, message.Action, "internal error")
	}

	return that.sendGame(conn, message.Action, session)
}

func (that *Server) sendGame(conn *websocket.Conn, action string, session *usecase.Session) error {
	page := view.NewPage(session.Game)

	var html bytes.Buffer
	if err := that.renderer.Fragment(&html, page); err != nil {
		return fmt.Errorf("failed to render game: %w", err)
	}

	return that.sendMessage(conn, action, ResponsePayload{
		Game: newGameResponse(session.Game),
		HTML: html.String(),
	})
}

func (that *Server) sendError(conn *websocket.Conn, action, reason string) error {
	return that.sendMessage(conn, action, ResponsePayload{Error: reason})
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
