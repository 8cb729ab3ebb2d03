package usecase

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

type botPlayer interface {
	ChooseMove(board entity.Board, botMark entity.Mark) (int, error)
}

type Settings struct {
	BotMark   entity.Mark
	MoveDelay time.Duration
}

// Session owns the board of one match and orchestrates turns between a human and the bot.
// Outcome and winning line are derived from the board on every read.
type Session struct {
	mu sync.Mutex

	id       string
	logger   *slog.Logger
	bot      botPlayer
	settings Settings
	onBot    func(entity.Snapshot)

	mode  entity.Mode
	board entity.Board
	turn  entity.Mark
	moves int

	// generation changes with every mode change, reset and accepted move.
	generation uint64
	timer      *time.Timer
}

func NewSession(logger *slog.Logger, bot botPlayer, settings Settings) (*Session, error) {
	if !settings.BotMark.IsPlayer() {
		return nil, fmt.Errorf("%w: bot mark %q", apperror.ErrUnknownMark, settings.BotMark)
	}

	id := uuid.NewString()

	return &Session{
		id:       id,
		logger:   logger.With("component", "session", "session", id),
		bot:      bot,
		settings: settings,
		turn:     entity.PlayerX,
	}, nil
}

func (that *Session) ID() string {
	return that.id
}

// SetBotMoveHook - registers a callback invoked after each bot move, outside the session lock.
func (that *Session) SetBotMoveHook(hook func(entity.Snapshot)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.onBot = hook
}

// SetMode - switches the mode and restarts the match.
func (that *Session) SetMode(mode entity.Mode) error {
	if !mode.IsPlayable() {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownMode, mode)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.mode = mode
	that.resetLocked()

	that.logger.Info("mode selected", "mode", mode)

	return nil
}

// Reset - starts a fresh match in the current mode.
func (that *Session) Reset() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.resetLocked()

	that.logger.Info("match reset", "mode", that.mode)
}

// ApplyMove - places the current player's mark on behalf of a human. Rejected moves leave the state unchanged.
func (that *Session) ApplyMove(cell int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.isBotTurnLocked() {
		that.logger.Debug("move rejected", "method", "ApplyMove", "cell", cell, "reason", apperror.ErrNotYourTurn)
		return apperror.ErrNotYourTurn
	}

	return that.applyMoveLocked(cell)
}

func (that *Session) Snapshot() entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked()
}

// Close - cancels a pending bot move.
func (that *Session) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancelPendingLocked()
}

func (that *Session) resetLocked() {
	that.cancelPendingLocked()

	that.board = entity.Board{}
	that.turn = entity.PlayerX
	that.moves = 0

	that.scheduleBotLocked()
}

func (that *Session) applyMoveLocked(cell int) error {
	log := that.logger.With("method", "ApplyMove", "cell", cell)

	if err := that.validateMoveLocked(cell); err != nil {
		log.Debug("move rejected", "reason", err)
		return err
	}

	that.cancelPendingLocked()

	mark := that.turn
	that.board[cell] = mark
	that.moves++

	outcome := tictactoe.Outcome(&that.board)
	if outcome.IsOngoing() {
		that.turn = mark.Opponent()
	}

	log.Debug("move applied", "mark", mark, "outcome", outcome.Status)

	that.scheduleBotLocked()

	return nil
}

func (that *Session) validateMoveLocked(cell int) error {
	if tictactoe.Outcome(&that.board).IsFinished() {
		return apperror.ErrGameFinished
	}

	if !entity.IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.board[cell] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}

func (that *Session) isBotTurnLocked() bool {
	return that.mode == entity.ModeHumanVsBot &&
		that.turn == that.settings.BotMark &&
		tictactoe.Outcome(&that.board).IsOngoing()
}

// scheduleBotLocked - starts the delayed bot move when the bot is to play. Any previous timer must be cancelled.
func (that *Session) scheduleBotLocked() {
	if !that.isBotTurnLocked() {
		return
	}

	generation := that.generation
	that.timer = time.AfterFunc(that.settings.MoveDelay, func() {
		that.playBot(generation)
	})

	that.logger.Debug("bot move scheduled", "delay", that.settings.MoveDelay)
}

func (that *Session) cancelPendingLocked() {
	that.generation++

	if that.timer == nil {
		return
	}

	if that.timer.Stop() {
		that.logger.Debug("pending bot move cancelled")
	}
	that.timer = nil
}

func (that *Session) playBot(generation uint64) {
	log := that.logger.With("method", "playBot")

	that.mu.Lock()

	if generation != that.generation || !that.isBotTurnLocked() {
		that.mu.Unlock()
		log.Debug("stale bot move discarded")
		return
	}
	that.timer = nil

	cell, err := that.bot.ChooseMove(that.board, that.settings.BotMark)
	if err != nil {
		that.mu.Unlock()
		log.Error("bot failed to choose a move", "error", err)
		return
	}

	if err = that.applyMoveLocked(cell); err != nil {
		that.mu.Unlock()
		log.Error("bot move rejected", "cell", cell, "error", err)
		return
	}

	snapshot := that.snapshotLocked()
	hook := that.onBot
	that.mu.Unlock()

	log.Info("bot moved", "cell", cell, "outcome", snapshot.Outcome.Status)

	if hook != nil {
		hook(snapshot)
	}
}

func (that *Session) snapshotLocked() entity.Snapshot {
	snapshot := entity.Snapshot{
		Board:       that.board,
		Turn:        that.turn,
		Outcome:     tictactoe.Outcome(&that.board),
		Mode:        that.mode,
		MoveCount:   that.moves,
		BotThinking: that.timer != nil,
	}

	if line, ok := tictactoe.WinningLine(&that.board); ok {
		snapshot.WinningLine = &line
	}

	return snapshot
}
