package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/transport/viewmodel"
)

// Theme colors the board.
type Theme struct {
	MarkX     tcell.Color
	MarkO     tcell.Color
	Empty     tcell.Color
	Highlight tcell.Color
}

var DefaultTheme = Theme{
	MarkX:     tcell.ColorAqua,
	MarkO:     tcell.ColorFuchsia,
	Empty:     tcell.ColorGray,
	Highlight: tcell.ColorGreen,
}

func (that Theme) tableCell(cell viewmodel.CellView) *tview.TableCell {
	text := "  " + cell.Label + "  "
	if cell.Mark == entity.EmptyCell {
		text = "  " + string(rune('1'+cell.Index)) + "  "
	}

	tableCell := tview.NewTableCell(text).
		SetAlign(tview.AlignCenter).
		SetExpansion(1)

	switch cell.Mark {
	case entity.PlayerX:
		tableCell.SetTextColor(that.MarkX)
	case entity.PlayerO:
		tableCell.SetTextColor(that.MarkO)
	default:
		tableCell.SetTextColor(that.Empty)
	}

	if cell.Highlighted {
		tableCell.SetBackgroundColor(that.Highlight)
	}

	return tableCell
}
