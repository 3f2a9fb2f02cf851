package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
}

// Session is one browser's game as seen by the transports.
type Session struct {
	ID   string
	Game *tictactoe.Game
}

// GameManager runs every click against the stored game of its session.
// Handling is serialized, so each load, change and store happens as one step.
type GameManager struct {
	logger   *slog.Logger
	sessions sessionRepo

	mu sync.Mutex
}

func NewGameManager(logger *slog.Logger, sessions sessionRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		sessions: sessions,
	}
}

// Open returns the session's game, starting a new one when the id is empty,
// malformed or no longer stored.
func (that *GameManager) Open(ctx context.Context, sessionID string) (*Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.getOrCreate(ctx, sessionID)
}

// MakeMove applies a click on cell. Clicks on an occupied cell or on a
// decided game leave the game as it was and are not reported.
func (that *GameManager) MakeMove(ctx context.Context, sessionID string, cell int) (*Session, error) {
	log := that.logger.With("method", "MakeMove", "session", sessionID, "cell", cell)

	return that.update(ctx, sessionID, func(game *tictactoe.Game) error {
		err := game.ApplyMove(cell)
		if errors.Is(err, apperror.ErrCellOccupied) || errors.Is(err, apperror.ErrGameFinished) {
			log.Debug("move ignored", "reason", err)
			return nil
		}

		return err
	})
}

func (that *GameManager) JumpTo(ctx context.Context, sessionID string, step int) (*Session, error) {
	return that.update(ctx, sessionID, func(game *tictactoe.Game) error {
		return game.JumpTo(step)
	})
}

// Restart replaces the session's game with an empty board.
func (that *GameManager) Restart(ctx context.Context, sessionID string) (*Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	id := sessionID
	if !isSessionID(id) {
		id = uuid.NewString()
	}

	session := &Session{ID: id, Game: tictactoe.NewGame()}
	if err := that.save(ctx, session); err != nil {
		return nil, err
	}

	that.logger.Info("game restarted", "session", id)

	return session, nil
}

func (that *GameManager) update(ctx context.Context, sessionID string, apply func(game *tictactoe.Game) error) (*Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.getOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err = apply(session.Game); err != nil {
		return nil, err
	}

	if err = that.save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (that *GameManager) getOrCreate(ctx context.Context, sessionID string) (*Session, error) {
	log := that.logger.With("method", "getOrCreate")

	if isSessionID(sessionID) {
		stored, err := that.sessions.GetByID(ctx, sessionID)
		if err == nil {
			return &Session{ID: sessionID, Game: tictactoe.Restore(stored)}, nil
		}

		if !errors.Is(err, repository.ErrSessionNotFound) {
			return nil, fmt.Errorf("failed to get session: %w", err)
		}

		log.Debug("session not found, starting a new game", "session", sessionID)
	} else {
		sessionID = uuid.NewString()
	}

	session := &Session{ID: sessionID, Game: tictactoe.NewGame()}
	if err := that.save(ctx, session); err != nil {
		return nil, err
	}

	log.Info("session created", "session", sessionID)

	return session, nil
}

func (that *GameManager) save(ctx context.Context, session *Session) error {
	if err := that.sessions.CreateOrUpdate(ctx, session.Game.Snapshot(session.ID)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func isSessionID(id string) bool {
	if id == "" {
		return false
	}

	_, err := uuid.Parse(id)

	return err == nil
}
