package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
)

// Mark is a player's symbol. EmptyCell marks an unoccupied cell.
type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = ""
)

const BoardSize = 9

// Opponent returns the other player's mark.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// ParseMark - converts "X" or "O" into a Mark.
func ParseMark(value string) (Mark, error) {
	switch mark := Mark(value); mark {
	case PlayerX, PlayerO:
		return mark, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrUnknownMark, value)
	}
}

// Board is a 3x3 grid laid out row by row, index = row*3 + col.
type Board [BoardSize]Mark

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// EmptyCells returns the indexes of unoccupied cells in ascending order.
func (that *Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}
	return cells
}

// Line is a triple of cell indexes that wins the game when owned by one mark.
type Line [3]int

type OutcomeStatus string

const (
	StatusOngoing OutcomeStatus = "ongoing"
	StatusWin     OutcomeStatus = "win"
	StatusDraw    OutcomeStatus = "draw"
)

// Outcome classifies a board. Winner is set only for StatusWin.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Winner Mark          `json:"winner,omitempty"`
}

func InProgress() Outcome {
	return Outcome{Status: StatusOngoing}
}

func Win(mark Mark) Outcome {
	return Outcome{Status: StatusWin, Winner: mark}
}

func Draw() Outcome {
	return Outcome{Status: StatusDraw}
}

func (that Outcome) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that Outcome) IsWin() bool {
	return that.Status == StatusWin
}

func (that Outcome) IsDraw() bool {
	return that.Status == StatusDraw
}

func (that Outcome) IsFinished() bool {
	return that.IsWin() || that.IsDraw()
}

type Mode string

const (
	ModeNone         Mode = ""
	ModeHumanVsHuman Mode = "human"
	ModeHumanVsBot   Mode = "bot"
)

// ParseMode - converts a configured or typed mode name into a Mode. An empty value is ModeNone.
func ParseMode(value string) (Mode, error) {
	switch mode := Mode(value); mode {
	case ModeNone, ModeHumanVsHuman, ModeHumanVsBot:
		return mode, nil
	default:
		return ModeNone, fmt.Errorf("%w: %q", apperror.ErrUnknownMode, value)
	}
}

func (that Mode) IsPlayable() bool {
	return that == ModeHumanVsHuman || that == ModeHumanVsBot
}

// Snapshot is the read-only view of a session handed to the presentation layer.
type Snapshot struct {
	Board       Board   `json:"board"`
	Turn        Mark    `json:"turn"`
	Outcome     Outcome `json:"outcome"`
	Mode        Mode    `json:"mode"`
	WinningLine *Line   `json:"winning_line,omitempty"`
	MoveCount   int     `json:"move_count"`
	BotThinking bool    `json:"bot_thinking"`
}
