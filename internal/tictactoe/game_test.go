package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

func play(t *testing.T, game *Game, cells ...int) {
	t.Helper()

	for _, cell := range cells {
		require.NoError(t, game.ApplyMove(cell))
	}
}

func TestNewGame(t *testing.T) {
	// When: a new game is created
	game := NewGame()

	// Then: it holds a single empty snapshot and X is next
	assert.Equal(t, []entity.Board{{}}, game.History())
	assert.Equal(t, 0, game.Step())
	assert.Equal(t, x, game.Turn())
	assert.Equal(t, "Next player: X", game.Status())
}

func TestGame_ApplyMove(t *testing.T) {
	t.Run("Center opening", func(t *testing.T) {
		// Given: a new game
		game := NewGame()

		// When: X plays the center
		err := game.ApplyMove(4)

		// Then: the board has X in the center, O is next and history grew
		require.NoError(t, err)
		assert.Equal(t, entity.Board{e, e, e, e, x, e, e, e, e}, game.Current())
		assert.Equal(t, o, game.Turn())
		assert.Len(t, game.History(), 2)
		assert.Equal(t, 1, game.Step())
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: X holds cell 0
		game := NewGame()
		play(t, game, 0)

		// When: O tries the same cell
		err := game.ApplyMove(0)

		// Then: ErrCellOccupied is returned and nothing changed
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, entity.Board{x, e, e, e, e, e, e, e, e}, game.Current())
		assert.Len(t, game.History(), 2)
		assert.Equal(t, o, game.Turn())
	})

	t.Run("Invalid Cell", func(t *testing.T) {
		game := NewGame()

		assert.ErrorIs(t, game.ApplyMove(9), apperror.ErrInvalidCell)
		assert.ErrorIs(t, game.ApplyMove(-1), apperror.ErrInvalidCell)
		assert.Len(t, game.History(), 1)
	})

	t.Run("Winning row ends the game", func(t *testing.T) {
		// Given: X plays 0,1,2 while O plays 3,4
		game := NewGame()
		play(t, game, 0, 3, 1, 4, 2)

		// When: checking the winner
		win, ok := game.Winner()

		// Then: X won on the top row
		require.True(t, ok)
		assert.Equal(t, entity.Win{Mark: x, Line: [3]int{0, 1, 2}}, win)
		assert.Equal(t, "Winner: X", game.Status())

		// And: further moves are rejected without changing the board
		before := game.Current()
		err := game.ApplyMove(8)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, before, game.Current())
		assert.Len(t, game.History(), 6)
	})

	t.Run("Draw", func(t *testing.T) {
		// Given: X plays 0,1,5,6,8 and O plays 2,3,4,7
		game := NewGame()
		play(t, game, 0, 2, 1, 3, 5, 4, 6, 7, 8)

		// Then: there is no winner and the status reports a draw
		_, ok := game.Winner()
		assert.False(t, ok)
		assert.True(t, game.IsDraw())
		assert.Equal(t, "Draw", game.Status())

		// And: no move is accepted because every cell is taken
		for cell := 0; cell < entity.BoardSize; cell++ {
			assert.ErrorIs(t, game.ApplyMove(cell), apperror.ErrCellOccupied)
		}
		assert.Len(t, game.History(), 10)
	})

	t.Run("Stored snapshots are never mutated", func(t *testing.T) {
		// Given: a game with two moves
		game := NewGame()
		play(t, game, 4, 0)
		history := game.History()

		// When: the returned history is modified by the caller
		history[1][8] = o

		// Then: the game still holds its own snapshots
		assert.Equal(t, entity.Board{e, e, e, e, x, e, e, e, e}, game.History()[1])
		assert.Equal(t, entity.Board{}, game.History()[0])
	})
}

func TestGame_JumpTo(t *testing.T) {
	t.Run("Jump sets step and turn parity", func(t *testing.T) {
		// Given: three moves
		game := NewGame()
		play(t, game, 0, 4, 8)

		// When: jumping to step 1
		require.NoError(t, game.JumpTo(1))

		// Then: the first snapshot is current and O is next
		assert.Equal(t, 1, game.Step())
		assert.Equal(t, entity.Board{x, e, e, e, e, e, e, e, e}, game.Current())
		assert.Equal(t, o, game.Turn())
		assert.Len(t, game.History(), 4)

		// When: jumping to the start
		require.NoError(t, game.JumpTo(0))

		// Then: X is next
		assert.Equal(t, x, game.Turn())
	})

	t.Run("Move after jump discards the abandoned branch", func(t *testing.T) {
		// Given: four moves, then a jump back to step 1
		game := NewGame()
		play(t, game, 0, 4, 8, 2)
		require.NoError(t, game.JumpTo(1))

		// When: O plays a different cell
		require.NoError(t, game.ApplyMove(6))

		// Then: history length is earlierStep + 2 and the new branch is current
		assert.Len(t, game.History(), 3)
		assert.Equal(t, 2, game.Step())
		assert.Equal(t, entity.Board{x, e, e, e, e, e, o, e, e}, game.Current())
		assert.Equal(t, x, game.Turn())
	})

	t.Run("Jump back from a won game allows play again", func(t *testing.T) {
		// Given: X has won
		game := NewGame()
		play(t, game, 0, 3, 1, 4, 2)

		// When: jumping to before the winning move and playing elsewhere
		require.NoError(t, game.JumpTo(4))
		require.NoError(t, game.ApplyMove(8))

		// Then: the game continues on the new branch
		_, ok := game.Winner()
		assert.False(t, ok)
		assert.Len(t, game.History(), 6)
		assert.Equal(t, o, game.Turn())
	})

	t.Run("Invalid step", func(t *testing.T) {
		game := NewGame()
		play(t, game, 0)

		assert.ErrorIs(t, game.JumpTo(2), apperror.ErrInvalidStep)
		assert.ErrorIs(t, game.JumpTo(-1), apperror.ErrInvalidStep)
		assert.Equal(t, 1, game.Step())
	})
}

func TestRestore(t *testing.T) {
	t.Run("Round trip through a session", func(t *testing.T) {
		// Given: a game jumped back to step 1
		game := NewGame()
		play(t, game, 4, 0)
		require.NoError(t, game.JumpTo(1))

		// When: snapshotting and restoring
		restored := Restore(game.Snapshot("abc"))

		// Then: history and step survive
		assert.Equal(t, game.History(), restored.History())
		assert.Equal(t, 1, restored.Step())
		assert.Equal(t, o, restored.Turn())
	})

	t.Run("Empty session starts a new game", func(t *testing.T) {
		restored := Restore(&entity.Session{ID: "abc"})

		assert.Equal(t, []entity.Board{{}}, restored.History())
		assert.Equal(t, 0, restored.Step())
	})

	t.Run("Out of range step is clamped to the last snapshot", func(t *testing.T) {
		restored := Restore(&entity.Session{
			History: []entity.Board{{}, {e, e, e, e, x, e, e, e, e}},
			Step:    7,
		})

		assert.Equal(t, 1, restored.Step())
	})
}
