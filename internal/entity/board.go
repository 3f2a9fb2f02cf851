package entity

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""

	BoardSize = 9
)

// WinCombos lists every winning line. The order is rows, columns, then
// diagonals and decides which line is reported when several qualify.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a row-major snapshot of the nine cells.
type Board [BoardSize]string

// Win is a completed line and the mark that completed it.
type Win struct {
	Mark string `json:"mark"`
	Line [3]int `json:"line"`
}

// Contains reports whether cell belongs to the winning line.
func (that Win) Contains(cell int) bool {
	for _, idx := range that.Line {
		if idx == cell {
			return true
		}
	}

	return false
}
