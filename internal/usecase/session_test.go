package usecase_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
	"github.com/rocketscienceinc/tictactoe/testing/suite"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

type mockBot struct {
	mock.Mock
}

func (that *mockBot) ChooseMove(board entity.Board, botMark entity.Mark) (int, error) {
	args := that.Called(board, botMark)
	return args.Int(0), args.Error(1)
}

func newMockedSession(t *testing.T, bot *mockBot, delay time.Duration) *usecase.Session {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	session, err := usecase.NewSession(logger, bot, usecase.Settings{BotMark: entity.PlayerO, MoveDelay: delay})
	require.NoError(t, err)

	t.Cleanup(session.Close)

	return session
}

func playMoves(t *testing.T, session *usecase.Session, cells ...int) {
	t.Helper()

	for _, cell := range cells {
		require.NoError(t, session.ApplyMove(cell), "move %d", cell)
	}
}

func TestNewSession(t *testing.T) {
	t.Run("Starts empty with X to move and no mode", func(t *testing.T) {
		// Given: a fresh session
		_, st := suite.New(t, suite.DefaultSettings)

		// When: reading its snapshot
		snapshot := st.Session.Snapshot()

		// Then: the match has not started
		assert.Equal(t, entity.Board{}, snapshot.Board)
		assert.Equal(t, entity.PlayerX, snapshot.Turn)
		assert.Equal(t, entity.InProgress(), snapshot.Outcome)
		assert.Equal(t, entity.ModeNone, snapshot.Mode)
		assert.Nil(t, snapshot.WinningLine)
		assert.NotEmpty(t, st.Session.ID())
	})

	t.Run("Rejects an invalid bot mark", func(t *testing.T) {
		logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

		_, err := usecase.NewSession(logger, &mockBot{}, usecase.Settings{BotMark: entity.EmptyCell})

		require.ErrorIs(t, err, apperror.ErrUnknownMark)
	})
}

func TestSession_ApplyMove(t *testing.T) {
	t.Run("Top row wins for X", func(t *testing.T) {
		// Given: a human vs human match
		_, st := suite.New(t, suite.DefaultSettings)
		require.NoError(t, st.Session.SetMode(entity.ModeHumanVsHuman))

		// When: X takes 0, 1, 2 while O takes 4, 3
		playMoves(t, st.Session, 0, 4, 1, 3, 2)

		// Then: X wins on the top row and the turn stays with X
		snapshot := st.Session.Snapshot()
		assert.Equal(t, entity.Win(entity.PlayerX), snapshot.Outcome)
		require.NotNil(t, snapshot.WinningLine)
		assert.Equal(t, entity.Line{0, 1, 2}, *snapshot.WinningLine)
		assert.Equal(t, entity.PlayerX, snapshot.Turn)
		assert.Equal(t, 5, snapshot.MoveCount)

		// When: someone tries to keep playing
		err := st.Session.ApplyMove(5)

		// Then: ErrGameFinished is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, snapshot, st.Session.Snapshot())
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: a human vs human match
		_, st := suite.New(t, suite.DefaultSettings)
		require.NoError(t, st.Session.SetMode(entity.ModeHumanVsHuman))

		// When: the board fills up as X O X / X O O / O X X
		playMoves(t, st.Session, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// Then: the match is drawn
		snapshot := st.Session.Snapshot()
		assert.Equal(t, entity.Draw(), snapshot.Outcome)
		assert.Nil(t, snapshot.WinningLine)
		assert.Equal(t, entity.Board{
			entity.PlayerX, entity.PlayerO, entity.PlayerX,
			entity.PlayerX, entity.PlayerO, entity.PlayerO,
			entity.PlayerO, entity.PlayerX, entity.PlayerX,
		}, snapshot.Board)
	})

	t.Run("Turn alternates on accepted moves only", func(t *testing.T) {
		// Given: X has played the center
		_, st := suite.New(t, suite.DefaultSettings)
		require.NoError(t, st.Session.SetMode(entity.ModeHumanVsHuman))
		playMoves(t, st.Session, 4)
		before := st.Session.Snapshot()
		require.Equal(t, entity.PlayerO, before.Turn)

		// When: O plays an occupied cell and two out of range cells
		errOccupied := st.Session.ApplyMove(4)
		errNegative := st.Session.ApplyMove(-1)
		errTooBig := st.Session.ApplyMove(9)

		// Then: every move is rejected and the state is unchanged
		require.ErrorIs(t, errOccupied, apperror.ErrCellOccupied)
		require.ErrorIs(t, errNegative, apperror.ErrInvalidCell)
		require.ErrorIs(t, errTooBig, apperror.ErrInvalidCell)
		assert.Equal(t, before, st.Session.Snapshot())

		// When: O plays a free cell
		playMoves(t, st.Session, 0)

		// Then: the turn returns to X
		assert.Equal(t, entity.PlayerX, st.Session.Snapshot().Turn)
	})
}

func TestSession_SetModeAndReset(t *testing.T) {
	t.Run("Unknown mode is rejected", func(t *testing.T) {
		_, st := suite.New(t, suite.DefaultSettings)

		err := st.Session.SetMode(entity.Mode("online"))

		require.ErrorIs(t, err, apperror.ErrUnknownMode)
		assert.Equal(t, entity.ModeNone, st.Session.Snapshot().Mode)
	})

	t.Run("Selecting a mode restarts the match", func(t *testing.T) {
		// Given: a match in progress
		_, st := suite.New(t, suite.DefaultSettings)
		require.NoError(t, st.Session.SetMode(entity.ModeHumanVsHuman))
		playMoves(t, st.Session, 0, 4)

		// When: the same mode is selected again
		require.NoError(t, st.Session.SetMode(entity.ModeHumanVsHuman))

		// Then: the board is fresh
		snapshot := st.Session.Snapshot()
		assert.Equal(t, entity.Board{}, snapshot.Board)
		assert.Equal(t, entity.PlayerX, snapshot.Turn)
		assert.Zero(t, snapshot.MoveCount)
	})

	t.Run("Reset keeps the mode", func(t *testing.T) {
		// Given: a finished match
		_, st := suite.New(t, suite.DefaultSettings)
		require.NoError(t, st.Session.SetMode(entity.ModeHumanVsHuman))
		playMoves(t, st.Session, 0, 4, 1, 3, 2)

		// When: the match is reset
		st.Session.Reset()

		// Then: the board is empty, X moves, and the mode is preserved
		snapshot := st.Session.Snapshot()
		assert.Equal(t, entity.Board{}, snapshot.Board)
		assert.Equal(t, entity.PlayerX, snapshot.Turn)
		assert.Equal(t, entity.InProgress(), snapshot.Outcome)
		assert.Nil(t, snapshot.WinningLine)
		assert.Equal(t, entity.ModeHumanVsHuman, snapshot.Mode)
	})
}

func TestSession_Bot(t *testing.T) {
	t.Run("Bot answers a corner opening with the center", func(t *testing.T) {
		// Given: a human vs bot match where the bot plays O
		_, st := suite.New(t, suite.DefaultSettings)
		require.NoError(t, st.Session.SetMode(entity.ModeHumanVsBot))

		// When: the human takes a corner
		playMoves(t, st.Session, 0)

		// Then: the bot replies in the center and hands the turn back
		require.Eventually(t, func() bool {
			return st.Session.Snapshot().MoveCount == 2
		}, waitFor, tick)

		snapshot := st.Session.Snapshot()
		assert.Equal(t, entity.PlayerO, snapshot.Board[4])
		assert.Equal(t, entity.PlayerX, snapshot.Turn)
		assert.False(t, snapshot.BotThinking)
	})

	t.Run("Bot opens when it plays X", func(t *testing.T) {
		// Given: the bot plays X and reports its moves
		settings := suite.DefaultSettings
		settings.BotMark = entity.PlayerX
		_, st := suite.New(t, settings)

		moved := make(chan entity.Snapshot, 1)
		st.Session.SetBotMoveHook(func(snapshot entity.Snapshot) {
			moved <- snapshot
		})

		// When: the bot mode is selected
		require.NoError(t, st.Session.SetMode(entity.ModeHumanVsBot))

		// Then: the bot takes the first cell and O is to move
		select {
		case snapshot := <-moved:
			assert.Equal(t, entity.PlayerX, snapshot.Board[0])
			assert.Equal(t, entity.PlayerO, snapshot.Turn)
			assert.Equal(t, 1, snapshot.MoveCount)
		case <-time.After(waitFor):
			t.Fatal("bot did not move")
		}
	})

	t.Run("Human cannot play on the bot's turn", func(t *testing.T) {
		// Given: the bot is thinking for a long time
		bot := &mockBot{}
		session := newMockedSession(t, bot, time.Hour)
		require.NoError(t, session.SetMode(entity.ModeHumanVsBot))
		playMoves(t, session, 0)
		before := session.Snapshot()
		require.True(t, before.BotThinking)

		// When: the human tries to move for O
		err := session.ApplyMove(1)

		// Then: the move is rejected
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, before, session.Snapshot())
		bot.AssertNotCalled(t, "ChooseMove", mock.Anything, mock.Anything)
	})

	t.Run("Bot move goes through the regular move path", func(t *testing.T) {
		// Given: a bot that answers with cell 8
		bot := &mockBot{}
		expected := entity.Board{entity.PlayerX}
		bot.On("ChooseMove", expected, entity.PlayerO).Return(8, nil).Once()

		session := newMockedSession(t, bot, 0)
		require.NoError(t, session.SetMode(entity.ModeHumanVsBot))

		// When: the human plays cell 0
		playMoves(t, session, 0)

		// Then: the bot's answer lands on the board
		require.Eventually(t, func() bool {
			return session.Snapshot().Board[8] == entity.PlayerO
		}, waitFor, tick)
		assert.Equal(t, entity.PlayerX, session.Snapshot().Turn)
		bot.AssertExpectations(t)
	})

	t.Run("Bot failure leaves the board unchanged", func(t *testing.T) {
		// Given: a bot that cannot find a move
		called := make(chan struct{}, 1)
		bot := &mockBot{}
		bot.On("ChooseMove", mock.Anything, entity.PlayerO).
			Return(-1, apperror.ErrNoLegalMove).
			Run(func(mock.Arguments) { called <- struct{}{} }).
			Once()

		session := newMockedSession(t, bot, 0)
		require.NoError(t, session.SetMode(entity.ModeHumanVsBot))

		// When: the human moves and the bot fails
		playMoves(t, session, 0)

		select {
		case <-called:
		case <-time.After(waitFor):
			t.Fatal("bot was not asked to move")
		}

		// Then: only the human's mark is on the board
		snapshot := session.Snapshot()
		assert.Equal(t, 1, snapshot.MoveCount)
		assert.Equal(t, entity.PlayerO, snapshot.Turn)
	})
}

func TestSession_PendingBotMoveCancellation(t *testing.T) {
	const delay = 50 * time.Millisecond

	t.Run("Mode change cancels the pending bot move", func(t *testing.T) {
		// Given: the bot is about to answer
		bot := &mockBot{}
		session := newMockedSession(t, bot, delay)
		require.NoError(t, session.SetMode(entity.ModeHumanVsBot))
		playMoves(t, session, 0)

		// When: the human switches to human vs human before the delay ends
		require.NoError(t, session.SetMode(entity.ModeHumanVsHuman))

		// Then: the bot never moves on the new board
		require.Never(t, func() bool {
			return session.Snapshot().MoveCount != 0
		}, 4*delay, tick)
		assert.False(t, session.Snapshot().BotThinking)
		bot.AssertNotCalled(t, "ChooseMove", mock.Anything, mock.Anything)
	})

	t.Run("Reset cancels the pending bot move", func(t *testing.T) {
		// Given: the bot is about to answer
		bot := &mockBot{}
		session := newMockedSession(t, bot, delay)
		require.NoError(t, session.SetMode(entity.ModeHumanVsBot))
		playMoves(t, session, 4)

		// When: the match is reset before the delay ends
		session.Reset()

		// Then: the fresh board stays empty
		require.Never(t, func() bool {
			return session.Snapshot().MoveCount != 0
		}, 4*delay, tick)
		bot.AssertNotCalled(t, "ChooseMove", mock.Anything, mock.Anything)
	})

	t.Run("Close cancels the pending bot move", func(t *testing.T) {
		bot := &mockBot{}
		session := newMockedSession(t, bot, delay)
		require.NoError(t, session.SetMode(entity.ModeHumanVsBot))
		playMoves(t, session, 4)

		session.Close()

		require.Never(t, func() bool {
			return session.Snapshot().MoveCount != 1
		}, 4*delay, tick)
		bot.AssertNotCalled(t, "ChooseMove", mock.Anything, mock.Anything)
	})
}
