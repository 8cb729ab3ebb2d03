package tictactoe

import "github.com/rocketscienceinc/tictactoe/internal/entity"

const winScore = 10

// BestMove - picks the cell that is optimal for bot against an optimal opponent.
// Ties go to the lowest index. Returns false when the board has no empty cell.
// The board is mutated during the search and restored before returning.
func BestMove(board *entity.Board, bot, opponent entity.Mark) (int, bool) {
	bestCell := -1
	bestScore := 0

	for cell := range board {
		if board[cell] != entity.EmptyCell {
			continue
		}

		board[cell] = bot
		score := Minimax(board, 0, false, bot, opponent)
		board[cell] = entity.EmptyCell

		if bestCell == -1 || score > bestScore {
			bestCell = cell
			bestScore = score
		}
	}

	return bestCell, bestCell != -1
}

// Minimax - exhaustive search scored from bot's perspective. Faster wins score higher
// and slower losses score higher, because the terminal scores are adjusted by depth.
// The board is restored to its original cells before returning.
func Minimax(board *entity.Board, depth int, maximizing bool, bot, opponent entity.Mark) int {
	switch Score(board, bot) {
	case 1:
		return winScore - depth
	case -1:
		return depth - winScore
	}

	if board.IsFull() {
		return 0
	}

	mover := opponent
	if maximizing {
		mover = bot
	}

	best := 0
	first := true
	for cell := range board {
		if board[cell] != entity.EmptyCell {
			continue
		}

		board[cell] = mover
		score := Minimax(board, depth+1, !maximizing, bot, opponent)
		board[cell] = entity.EmptyCell

		switch {
		case first:
			best = score
			first = false
		case maximizing && score > best:
			best = score
		case !maximizing && score < best:
			best = score
		}
	}

	return best
}
