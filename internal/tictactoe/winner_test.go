package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func TestCalculateWinner(t *testing.T) {
	t.Run("Every line is detected", func(t *testing.T) {
		for _, combo := range entity.WinCombos {
			// Given: a board where only the combo is filled with O
			var board entity.Board
			for _, idx := range combo {
				board[idx] = o
			}

			// When: calculating the winner
			win, ok := CalculateWinner(board)

			// Then: O wins on exactly that line
			require.True(t, ok, "combo %v", combo)
			assert.Equal(t, entity.Win{Mark: o, Line: combo}, win)
		}
	})

	t.Run("Winner X in first column", func(t *testing.T) {
		// Given: X holds the first column
		board := entity.Board{x, o, e, x, o, e, x, e, e}

		// When: calculating the winner
		win, ok := CalculateWinner(board)

		// Then: X wins on 0,3,6
		require.True(t, ok)
		assert.Equal(t, x, win.Mark)
		assert.Equal(t, [3]int{0, 3, 6}, win.Line)
	})

	t.Run("Rows are checked before diagonals", func(t *testing.T) {
		// Given: a board of X only, every line qualifies
		board := entity.Board{x, x, x, x, x, x, x, x, x}

		// When: calculating the winner
		win, ok := CalculateWinner(board)

		// Then: the first row is reported
		require.True(t, ok)
		assert.Equal(t, [3]int{0, 1, 2}, win.Line)
	})

	t.Run("Columns are checked before diagonals", func(t *testing.T) {
		// Given: X holds the middle column and the main diagonal
		board := entity.Board{x, x, o, e, x, o, o, x, x}

		// When: calculating the winner
		win, ok := CalculateWinner(board)

		// Then: the column wins the tie
		require.True(t, ok)
		assert.Equal(t, [3]int{1, 4, 7}, win.Line)
	})

	t.Run("Ongoing game has no winner", func(t *testing.T) {
		// Given: a board without three in a row
		board := entity.Board{x, o, x, e, o, e, x, e, e}

		// When: calculating the winner
		_, ok := CalculateWinner(board)

		// Then: there is no winner
		assert.False(t, ok)
	})

	t.Run("Draw board has no winner", func(t *testing.T) {
		// Given: a full board without three in a row
		board := entity.Board{x, x, o, o, o, x, x, o, x}

		// When: calculating the winner
		_, ok := CalculateWinner(board)

		// Then: there is no winner and the board is full
		assert.False(t, ok)
		assert.True(t, IsFull(board))
	})

	t.Run("Empty board", func(t *testing.T) {
		_, ok := CalculateWinner(entity.Board{})

		assert.False(t, ok)
		assert.False(t, IsFull(entity.Board{}))
	})
}
