package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const (
	UITerminal = "tui"
	UIConsole  = "console"
)

var ErrUnknownUI = errors.New("unknown ui")

type Config struct {
	LogLevel string `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	LogFile  string `yaml:"log-file" env:"TICTACTOE_LOG_FILE" env-default:"tictactoe.log"`
	UI       string `yaml:"ui" env:"TICTACTOE_UI" env-default:"tui"`
	Game     Game   `yaml:"game"`
	Bot      Bot    `yaml:"bot"`
}

type Game struct {
	Mode string `yaml:"mode" env:"TICTACTOE_GAME_MODE"`
}

type Bot struct {
	Mark      string        `yaml:"mark" env:"TICTACTOE_BOT_MARK" env-default:"O"`
	MoveDelay time.Duration `yaml:"move-delay" env:"TICTACTOE_BOT_MOVE_DELAY" env-default:"500ms"`
}

// MustLoad - load all configurations in config.yml file, or from the environment when the file is absent.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	default:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	}

	if err = config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) validate() error {
	if that.UI != UITerminal && that.UI != UIConsole {
		return fmt.Errorf("%w: %q", ErrUnknownUI, that.UI)
	}

	if _, err := that.Game.GetMode(); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	if _, err := that.Bot.GetMark(); err != nil {
		return fmt.Errorf("bot: %w", err)
	}

	return nil
}

func (that *Game) GetMode() (entity.Mode, error) {
	return entity.ParseMode(that.Mode)
}

func (that *Bot) GetMark() (entity.Mark, error) {
	return entity.ParseMark(that.Mark)
}
