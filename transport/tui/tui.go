package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/transport/viewmodel"
)

const (
	pageMenu = "menu"
	pageGame = "game"

	labelHuman = "Human vs Human"
	labelBot   = "Human vs Bot"
	labelQuit  = "Quit"

	helpText = "1-9 or Enter: place   r: reset   m: mode   q: quit"
)

type session interface {
	SetMode(mode entity.Mode) error
	ApplyMove(cell int) error
	Reset()
	Snapshot() entity.Snapshot
	SetBotMoveHook(hook func(entity.Snapshot))
}

type UI struct {
	logger    *slog.Logger
	session   session
	botMark   entity.Mark
	startMode entity.Mode
	theme     Theme

	app    *tview.Application
	pages  *tview.Pages
	board  *tview.Table
	status *tview.TextView
	onMenu bool
}

func New(logger *slog.Logger, session session, botMark entity.Mark, startMode entity.Mode) *UI {
	ui := &UI{
		logger:    logger.With("component", "tui"),
		session:   session,
		botMark:   botMark,
		startMode: startMode,
		theme:     DefaultTheme,
		app:       tview.NewApplication(),
	}

	ui.board = tview.NewTable().
		SetBorders(true).
		SetSelectable(true, true).
		SetSelectedFunc(func(row, column int) {
			ui.move(row*3 + column)
		})

	ui.status = tview.NewTextView().
		SetTextAlign(tview.AlignCenter)

	help := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetText(helpText)

	game := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.board, 7, 0, true).
		AddItem(ui.status, 1, 0, false).
		AddItem(help, 1, 0, false)

	menu := tview.NewModal().
		SetText("Choose a mode").
		AddButtons([]string{labelHuman, labelBot, labelQuit}).
		SetDoneFunc(func(_ int, label string) {
			ui.choose(label)
		})

	ui.pages = tview.NewPages().
		AddPage(pageGame, game, true, true).
		AddPage(pageMenu, menu, true, false)

	ui.app.SetInputCapture(ui.handleKey)

	return ui
}

// Start - runs the terminal UI until the user quits or ctx is cancelled.
func (that *UI) Start(ctx context.Context) error {
	that.session.SetBotMoveHook(func(entity.Snapshot) {
		that.app.QueueUpdateDraw(func() {
			that.render(that.session.Snapshot())
		})
	})

	if that.startMode.IsPlayable() {
		that.selectMode(that.startMode)
	} else {
		that.showMenu()
	}

	go func() {
		<-ctx.Done()
		that.app.Stop()
	}()

	if err := that.app.SetRoot(that.pages, true).EnableMouse(true).Run(); err != nil {
		return fmt.Errorf("failed to run terminal ui: %w", err)
	}

	return nil
}

func (that *UI) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEscape || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
		that.app.Stop()
		return nil
	}

	if that.onMenu || event.Key() != tcell.KeyRune {
		return event
	}

	if cell, ok := cellForKey(event.Rune()); ok {
		that.move(cell)
		return nil
	}

	switch event.Rune() {
	case 'r':
		that.session.Reset()
		that.render(that.session.Snapshot())
		return nil
	case 'm':
		that.showMenu()
		return nil
	}

	return event
}

func (that *UI) choose(label string) {
	switch label {
	case labelHuman:
		that.selectMode(entity.ModeHumanVsHuman)
	case labelBot:
		that.selectMode(entity.ModeHumanVsBot)
	default:
		that.app.Stop()
	}
}

func (that *UI) selectMode(mode entity.Mode) {
	if err := that.session.SetMode(mode); err != nil {
		that.logger.Error("failed to select mode", "mode", mode, "error", err)
		return
	}

	that.onMenu = false
	that.pages.SwitchToPage(pageGame)
	that.app.SetFocus(that.board)
	that.render(that.session.Snapshot())
}

func (that *UI) showMenu() {
	that.onMenu = true
	that.pages.ShowPage(pageMenu)
}

func (that *UI) move(cell int) {
	if err := that.session.ApplyMove(cell); err != nil {
		that.logger.Debug("move rejected", "cell", cell, "error", err)
	}

	that.render(that.session.Snapshot())
}

func (that *UI) render(snapshot entity.Snapshot) {
	view := viewmodel.NewGameView(snapshot, that.botMark)

	for _, cell := range view.Cells {
		that.board.SetCell(cell.Index/3, cell.Index%3, that.theme.tableCell(cell))
	}

	that.status.SetText(view.Status)
}

// cellForKey maps the keys 1-9 onto cells 0-8.
func cellForKey(key rune) (int, bool) {
	if key < '1' || key > '9' {
		return 0, false
	}

	return int(key - '1'), true
}
