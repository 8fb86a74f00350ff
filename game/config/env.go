package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/wricardo/maze-escape/game/engine"
)

// Env holds settings read from the environment. Command line flags override
// these values.
type Env struct {
	BoardDir     string
	DefaultBoard string
	MinBoardSize int
	MaxBoardSize int

	Proto    string // v4 or v6
	TCPPort  int
	HTTPHost string
	HTTPPort int

	SessionTTL time.Duration
	Debug      bool
}

// DefaultEnv returns the settings used when nothing is configured
func DefaultEnv() Env {
	return Env{
		BoardDir:     "input",
		DefaultBoard: DefaultBoardName,
		MinBoardSize: engine.MinBoardSize,
		MaxBoardSize: engine.MaxBoardSize,
		Proto:        "v4",
		TCPPort:      51511,
		HTTPHost:     "localhost",
		HTTPPort:     8080,
		SessionTTL:   24 * time.Hour,
	}
}

// LoadEnv loads the given .env files (".env" when none are named) and reads
// the MAZE_* variables on top of the defaults. Missing .env files are not an
// error.
func LoadEnv(files ...string) Env {
	if err := godotenv.Load(files...); err != nil {
		log.Debugf(".env file not loaded: %v", err)
	}
	return readEnv(os.LookupEnv)
}

func readEnv(lookup func(string) (string, bool)) Env {
	env := DefaultEnv()

	str := func(key string, target *string) {
		if v, ok := lookup(key); ok && v != "" {
			*target = v
		}
	}
	num := func(key string, target *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := cast.ToIntE(v)
			if err != nil {
				log.Warnf("ignoring %s: %v", key, err)
				return
			}
			*target = n
		}
	}

	str("MAZE_BOARD_DIR", &env.BoardDir)
	str("MAZE_BOARD", &env.DefaultBoard)
	num("MAZE_MIN_BOARD_SIZE", &env.MinBoardSize)
	num("MAZE_MAX_BOARD_SIZE", &env.MaxBoardSize)
	str("MAZE_PROTO", &env.Proto)
	num("MAZE_PORT", &env.TCPPort)
	str("MAZE_HTTP_HOST", &env.HTTPHost)
	num("MAZE_HTTP_PORT", &env.HTTPPort)

	if v, ok := lookup("MAZE_SESSION_TTL"); ok && v != "" {
		ttl, err := cast.ToDurationE(v)
		if err != nil {
			log.Warnf("ignoring MAZE_SESSION_TTL: %v", err)
		} else {
			env.SessionTTL = ttl
		}
	}
	if v, ok := lookup("MAZE_DEBUG"); ok && v != "" {
		env.Debug = cast.ToBool(v)
	}

	return env
}

// BoardPolicy returns the configured board size bounds
func (e Env) BoardPolicy() engine.BoardPolicy {
	return engine.BoardPolicy{MinSize: e.MinBoardSize, MaxSize: e.MaxBoardSize}
}
