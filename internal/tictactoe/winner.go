package tictactoe

import "github.com/rocketscienceinc/tictactoe-web/internal/entity"

// CalculateWinner returns the first completed line in entity.WinCombos order.
func CalculateWinner(board entity.Board) (entity.Win, bool) {
	for _, combo := range entity.WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return entity.Win{Mark: a, Line: combo}, true
		}
	}

	return entity.Win{}, false
}

// IsFull reports whether no empty cell remains.
func IsFull(board entity.Board) bool {
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return false
		}
	}

	return true
}

func markForStep(step int) string {
	if step%2 == 0 {
		return entity.PlayerX
	}
	return entity.PlayerO
}
