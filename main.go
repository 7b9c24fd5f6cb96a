package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog"

	"tilerogue/pkg/engine/viewport"
	"tilerogue/pkg/game/renderer"
	"tilerogue/pkg/game/renderer/ebitengine"
	"tilerogue/pkg/game/renderer/tui"
	"tilerogue/pkg/game/session"
	"tilerogue/pkg/game/setup"
)

func initGotext() {
	gotext.Configure("mo/", "en_GB.utf8", "default")
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func main() {
	backendName := flag.String("renderer", "ebiten", "display backend: ebiten or tui")
	cols := flag.Int("cols", setup.DefaultCols, "grid width in tiles")
	rows := flag.Int("rows", setup.DefaultRows, "grid height in tiles")
	npcs := flag.Int("npcs", setup.DefaultNPCCount, "number of npcs to scatter")
	seed := flag.Int64("seed", 0, "level seed, 0 picks a time-based seed")
	tileSize := flag.Int("tile-size", ebitengine.DefaultTileSize, "tile size in pixels (ebiten backend)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := newLogger(*debug)
	initGotext()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	logger.Debug().Int64("seed", *seed).Msg("level seed")

	cfg := setup.DefaultConfig()
	cfg.Cols = *cols
	cfg.Rows = *rows
	cfg.NPCCount = *npcs
	// Keep the reference start cell inside small grids.
	if cfg.PlayerCol >= cfg.Cols {
		cfg.PlayerCol = cfg.Cols / 2
	}
	if cfg.PlayerRow >= cfg.Rows {
		cfg.PlayerRow = cfg.Rows / 2
	}

	lvl, err := setup.BuildLevel(cfg, rng, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot build level")
	}

	var (
		backend  renderer.Renderer
		listener session.RenderListener
		vpCfg    viewport.Config
	)
	switch *backendName {
	case "tui":
		t := tui.New(logger)
		backend, listener, vpCfg = t, t, tui.Config()
	case "ebiten":
		e := ebitengine.New(rng, *tileSize, logger)
		backend, listener, vpCfg = e, e, e.Config()
	default:
		fmt.Fprintf(os.Stderr, "unknown renderer %q (want ebiten or tui)\n", *backendName)
		os.Exit(2)
	}

	s := session.New(session.Config{
		Grid:     lvl.Grid,
		Player:   lvl.Player,
		NPCs:     lvl.NPCs,
		Viewport: vpCfg,
		Listener: listener,
		Logger:   logger,
	})

	if err := backend.Run(s); err != nil {
		logger.Fatal().Err(err).Msg("renderer exited")
	}
}
