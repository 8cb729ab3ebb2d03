package service

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

type BotService interface {
	ChooseMove(board entity.Board, botMark entity.Mark) (int, error)
}

type botService struct {
	logger *slog.Logger
}

func NewBotService(logger *slog.Logger) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
	}
}

// ChooseMove - runs the exhaustive search on a copy of the board and returns the bot's cell.
func (that *botService) ChooseMove(board entity.Board, botMark entity.Mark) (int, error) {
	if !botMark.IsPlayer() {
		return -1, fmt.Errorf("%w: %q", apperror.ErrUnknownMark, botMark)
	}

	cell, ok := tictactoe.BestMove(&board, botMark, botMark.Opponent())
	if !ok {
		return -1, apperror.ErrNoLegalMove
	}

	that.logger.Debug("bot chose a move", "mark", botMark, "cell", cell)

	return cell, nil
}
