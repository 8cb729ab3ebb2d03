package suite

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/service"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
)

const maxWaitDuration = 10 * time.Second

// DefaultSettings - bot plays O and moves without a presentation delay.
var DefaultSettings = usecase.Settings{
	BotMark:   entity.PlayerO,
	MoveDelay: 0,
}

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Bot     service.BotService
	Session *usecase.Session
}

// New - builds a session backed by the real bot. Set TEST_LOG=1 to see session logs.
func New(t *testing.T, settings usecase.Settings) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	var sink io.Writer = io.Discard
	if os.Getenv("TEST_LOG") != "" {
		sink = os.Stdout
	}

	logger := slog.New(slog.NewJSONHandler(sink, &slog.HandlerOptions{Level: slog.LevelDebug}))

	bot := service.NewBotService(logger)

	session, err := usecase.NewSession(logger, bot, settings)
	if err != nil {
		t.Fatalf("could not create session: %v", err)
	}

	t.Cleanup(func() {
		session.Close()
	})

	return ctx, &Suite{
		T:       t,
		Logger:  logger,
		Bot:     bot,
		Session: session,
	}
}
