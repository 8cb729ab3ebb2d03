package tictactoe

import "github.com/rocketscienceinc/tictactoe/internal/entity"

// winCombos lists rows, then columns, then diagonals. WinningLine reports the first match in this order.
var winCombos = [8]entity.Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// WinCombos returns a copy of the eight winning lines.
func WinCombos() [8]entity.Line {
	return winCombos
}

// WinningLine - returns the first line whose three cells hold the same mark.
func WinningLine(board *entity.Board) (entity.Line, bool) {
	for _, combo := range winCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return combo, true
		}
	}

	return entity.Line{}, false
}

// Outcome - classifies the board. It is always derived from the cells, never stored.
func Outcome(board *entity.Board) entity.Outcome {
	if line, ok := WinningLine(board); ok {
		return entity.Win(board[line[0]])
	}

	if board.IsFull() {
		return entity.Draw()
	}

	return entity.InProgress()
}

// Score - returns +1 if perspective owns a line, -1 if the opponent does, 0 otherwise.
func Score(board *entity.Board, perspective entity.Mark) int {
	line, ok := WinningLine(board)
	if !ok {
		return 0
	}

	if board[line[0]] == perspective {
		return 1
	}

	return -1
}
