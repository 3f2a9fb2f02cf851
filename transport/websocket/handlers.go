package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
)

var errMissingField = errors.New("missing field")

func (that *Server) handleState(ctx context.Context, sessionID string, _ *RequestPayload) (*usecase.Session, error) {
	return that.game.Open(ctx, sessionID)
}

func (that *Server) handleMove(ctx context.Context, sessionID string, payload *RequestPayload) (*usecase.Session, error) {
	if payload.Cell == nil {
		return nil, fmt.Errorf("%w: cell", errMissingField)
	}

	return that.game.MakeMove(ctx, sessionID, *payload.Cell)
}

func (that *Server) handleJump(ctx context.Context, sessionID string, payload *RequestPayload) (*usecase.Session, error) {
	if payload.Step == nil {
		return nil, fmt.Errorf("%w: step", errMissingField)
	}

	return that.game.JumpTo(ctx, sessionID, *payload.Step)
}

func (that *Server) handleNew(ctx context.Context, sessionID string, _ *RequestPayload) (*usecase.Session, error) {
	return that.game.Restart(ctx, sessionID)
}

func isInvalidInput(err error) bool {
	return errors.Is(err, apperror.ErrInvalidCell) || errors.Is(err, apperror.ErrInvalidStep)
}
