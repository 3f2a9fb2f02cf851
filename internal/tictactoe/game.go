package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

// Game keeps every board snapshot of one match and the step currently shown.
// Snapshots are arrays, so handing one out never exposes stored state.
type Game struct {
	history []entity.Board
	step    int
}

func NewGame() *Game {
	return &Game{
		history: []entity.Board{{}},
	}
}

// Restore rebuilds a game from a stored session. A session with an empty or
// inconsistent history starts over.
func Restore(session *entity.Session) *Game {
	if session == nil || len(session.History) == 0 {
		return NewGame()
	}

	history := make([]entity.Board, len(session.History))
	copy(history, session.History)

	step := session.Step
	if step < 0 || step >= len(history) {
		step = len(history) - 1
	}

	return &Game{history: history, step: step}
}

// Snapshot exports the game for storage.
func (that *Game) Snapshot(id string) *entity.Session {
	return &entity.Session{
		ID:      id,
		History: that.History(),
		Step:    that.step,
	}
}

// ApplyMove places the active mark on cell. Everything recorded after the
// current step is dropped before the new snapshot is appended.
func (that *Game) ApplyMove(cell int) error {
	if cell < 0 || cell >= entity.BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	current := that.Current()

	if _, ok := CalculateWinner(current); ok {
		return apperror.ErrGameFinished
	}

	if current[cell] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	next := current
	next[cell] = that.Turn()

	that.history = append(that.history[:that.step+1:that.step+1], next)
	that.step = len(that.history) - 1

	return nil
}

// JumpTo selects an earlier (or later) snapshot without changing history.
func (that *Game) JumpTo(step int) error {
	if step < 0 || step >= len(that.history) {
		return fmt.Errorf("%w: step %d of %d", apperror.ErrInvalidStep, step, len(that.history))
	}

	that.step = step

	return nil
}

func (that *Game) Current() entity.Board {
	return that.history[that.step]
}

func (that *Game) History() []entity.Board {
	history := make([]entity.Board, len(that.history))
	copy(history, that.history)

	return history
}

func (that *Game) Step() int {
	return that.step
}

// Turn is the mark that moves next: X on even steps, O on odd ones.
func (that *Game) Turn() string {
	return markForStep(that.step)
}

func (that *Game) Winner() (entity.Win, bool) {
	return CalculateWinner(that.Current())
}

func (that *Game) IsDraw() bool {
	if _, ok := that.Winner(); ok {
		return false
	}

	return IsFull(that.Current())
}

// Status is the line shown above the board.
func (that *Game) Status() string {
	if win, ok := that.Winner(); ok {
		return "Winner: " + win.Mark
	}

	if that.IsDraw() {
		return "Draw"
	}

	return "Next player: " + that.Turn()
}
