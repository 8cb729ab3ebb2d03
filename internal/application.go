package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe/internal/config"
	"github.com/rocketscienceinc/tictactoe/internal/service"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
	"github.com/rocketscienceinc/tictactoe/transport/console"
	"github.com/rocketscienceinc/tictactoe/transport/tui"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	botMark, err := conf.Bot.GetMark()
	if err != nil {
		return fmt.Errorf("invalid bot config: %w", err)
	}

	startMode, err := conf.Game.GetMode()
	if err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}

	botService := service.NewBotService(logger)
	session, err := usecase.NewSession(logger, botService, usecase.Settings{
		BotMark:   botMark,
		MoveDelay: conf.Bot.MoveDelay,
	})
	if err != nil {
		return fmt.Errorf("could not create session: %w", err)
	}
	defer session.Close()

	log.Info("Starting game", "ui", conf.UI, "session", session.ID(), "bot_mark", botMark)

	switch conf.UI {
	case config.UIConsole:
		if startMode.IsPlayable() {
			if err = session.SetMode(startMode); err != nil {
				return fmt.Errorf("could not select mode: %w", err)
			}
		}

		if err = console.New(logger, session, botMark, os.Stdin, os.Stdout).Run(ctx); err != nil {
			return fmt.Errorf("console error: %w", err)
		}
	default:
		if err = tui.New(logger, session, botMark, startMode).Start(ctx); err != nil {
			return fmt.Errorf("terminal ui error: %w", err)
		}
	}

	log.Info("Game closed")

	return nil
}
