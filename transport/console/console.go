package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/transport/viewmodel"
)

const helpText = `commands:
  mode human|bot   start a match
  0-8              place a mark
  reset            restart the match
  show             print the board
  help             print this help
  quit             leave`

var errQuit = errors.New("quit")

type session interface {
	SetMode(mode entity.Mode) error
	ApplyMove(cell int) error
	Reset()
	Snapshot() entity.Snapshot
	SetBotMoveHook(hook func(entity.Snapshot))
}

type Console struct {
	logger  *slog.Logger
	session session
	botMark entity.Mark

	in  io.Reader
	mu  sync.Mutex
	out io.Writer

	handlers map[string]func(args []string) error

	markX     *color.Color
	markO     *color.Color
	highlight *color.Color
	dim       *color.Color
	failure   *color.Color
}

func New(logger *slog.Logger, session session, botMark entity.Mark, in io.Reader, out io.Writer) *Console {
	console := &Console{
		logger:  logger.With("component", "console"),
		session: session,
		botMark: botMark,
		in:      in,
		out:     out,

		handlers: make(map[string]func(args []string) error),

		markX:     color.New(color.FgCyan, color.Bold),
		markO:     color.New(color.FgMagenta, color.Bold),
		highlight: color.New(color.FgBlack, color.BgGreen, color.Bold),
		dim:       color.New(color.Faint),
		failure:   color.New(color.FgRed),
	}

	console.handlers["mode"] = console.handleMode
	console.handlers["reset"] = console.handleReset
	console.handlers["show"] = console.handleShow
	console.handlers["help"] = console.handleHelp
	console.handlers["quit"] = console.handleQuit
	console.handlers["exit"] = console.handleQuit

	return console
}

// Run - reads commands line by line until quit, end of input or ctx cancellation.
func (that *Console) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	that.session.SetBotMoveHook(func(snapshot entity.Snapshot) {
		that.printBoard(snapshot)
	})

	that.println(helpText)
	that.printBoard(that.session.Snapshot())

	scanner := bufio.NewScanner(that.in)
	lines := make(chan string)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("console stopped", "reason", ctx.Err())
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				return nil
			}

			err := that.handleLine(line)
			if errors.Is(err, errQuit) {
				return nil
			}

			if err != nil {
				log.Debug("command rejected", "input", line, "error", err)
				that.println(that.failure.Sprint(err.Error()))
			}
		}
	}
}

func (that *Console) handleLine(line string) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}

	if cell, err := strconv.Atoi(fields[0]); err == nil {
		return that.handleMove(cell)
	}

	handler, ok := that.handlers[fields[0]]
	if !ok {
		return fmt.Errorf("unknown command %q, type help", fields[0])
	}

	return handler(fields[1:])
}

func (that *Console) handleMove(cell int) error {
	if err := that.session.ApplyMove(cell); err != nil {
		return fmt.Errorf("move rejected: %w", err)
	}

	that.printBoard(that.session.Snapshot())

	return nil
}

func (that *Console) handleMode(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: mode human|bot")
	}

	mode, err := entity.ParseMode(args[0])
	if err != nil {
		return err
	}

	if err = that.session.SetMode(mode); err != nil {
		return err
	}

	that.printBoard(that.session.Snapshot())

	return nil
}

func (that *Console) handleReset(_ []string) error {
	that.session.Reset()
	that.printBoard(that.session.Snapshot())

	return nil
}

func (that *Console) handleShow(_ []string) error {
	that.printBoard(that.session.Snapshot())

	return nil
}

func (that *Console) handleHelp(_ []string) error {
	that.println(helpText)

	return nil
}

func (that *Console) handleQuit(_ []string) error {
	return errQuit
}

func (that *Console) printBoard(snapshot entity.Snapshot) {
	view := viewmodel.NewGameView(snapshot, that.botMark)

	var sb strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}

		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			cells[col] = that.paint(view.Cells[row*3+col])
		}
		sb.WriteString(strings.Join(cells, "|"))
		sb.WriteString("\n")
	}
	sb.WriteString(view.Status)

	that.println(sb.String())
}

func (that *Console) paint(cell viewmodel.CellView) string {
	text := " " + cell.Label + " "

	switch {
	case cell.Highlighted:
		return that.highlight.Sprint(text)
	case cell.Mark == entity.PlayerX:
		return that.markX.Sprint(text)
	case cell.Mark == entity.PlayerO:
		return that.markO.Sprint(text)
	default:
		return that.dim.Sprint(text)
	}
}

// println - serializes writes from the input loop and the bot move hook.
func (that *Console) println(text string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, err := fmt.Fprintln(that.out, text); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
