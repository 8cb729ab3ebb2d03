package viewmodel

import (
	"fmt"
	"strconv"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// CellView describes one cell of the grid as the presentation should draw it.
type CellView struct {
	Index       int
	Mark        entity.Mark
	Label       string
	Highlighted bool
}

type GameView struct {
	Cells    [entity.BoardSize]CellView
	Status   string
	Finished bool
}

// NewGameView - projects a session snapshot into cells and a status line.
// Empty cells are labelled with their index so a player can type it.
func NewGameView(snapshot entity.Snapshot, botMark entity.Mark) GameView {
	var view GameView

	for i, mark := range snapshot.Board {
		label := string(mark)
		if mark == entity.EmptyCell {
			label = strconv.Itoa(i)
		}

		view.Cells[i] = CellView{
			Index: i,
			Mark:  mark,
			Label: label,
		}
	}

	if snapshot.WinningLine != nil {
		for _, cell := range snapshot.WinningLine {
			view.Cells[cell].Highlighted = true
		}
	}

	view.Status = status(snapshot, botMark)
	view.Finished = snapshot.Outcome.IsFinished()

	return view
}

func status(snapshot entity.Snapshot, botMark entity.Mark) string {
	withBot := snapshot.Mode == entity.ModeHumanVsBot

	switch {
	case snapshot.Mode == entity.ModeNone:
		return "Choose a mode to start"
	case snapshot.Outcome.IsWin():
		if withBot && snapshot.Outcome.Winner == botMark {
			return fmt.Sprintf("Bot (%s) wins", botMark)
		}
		return fmt.Sprintf("%s wins", snapshot.Outcome.Winner)
	case snapshot.Outcome.IsDraw():
		return "Draw"
	case withBot && snapshot.Turn == botMark:
		return fmt.Sprintf("Bot (%s) is thinking...", botMark)
	default:
		return fmt.Sprintf("%s to move", snapshot.Turn)
	}
}
