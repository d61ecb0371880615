package main

import (
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/IndecisiveBear/IndecisiveBearGame/internal/application/game"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/application/replay"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/application/scene/playing"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/config"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/logger"
)

//go:embed configs
var configFS embed.FS

const windowTitle = "Indecisive Bear"

type options struct {
	configDir string
	level     string
	record    string
	replay    string
	headless  bool
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configDir, "config", "", "Read configs from this directory instead of the built-in ones")
	flag.StringVar(&opts.level, "level", "", "Level to play (default: the replay's level, else demo)")
	flag.StringVar(&opts.record, "record", "", "Record input to file (e.g., -record replay.json)")
	flag.StringVar(&opts.replay, "replay", "", "Play back a recorded replay file")
	flag.BoolVar(&opts.headless, "headless", false, "With -replay, run without a window and print the result")
	flag.Parse()
	return opts
}

func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

func run(opts options) error {
	if opts.headless && opts.replay == "" {
		return fmt.Errorf("-headless needs -replay")
	}

	loader, err := newLoader(opts.configDir)
	if err != nil {
		return err
	}

	logCfg, err := logger.LoadConfig(loader.FS(), "logging.yaml")
	if err != nil {
		return err
	}
	closer, err := logger.Initialize(logCfg)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	cfg, err := loader.LoadGame()
	if err != nil {
		return err
	}

	var data *replay.ReplayData
	if opts.replay != "" {
		if data, err = replay.LoadReplay(opts.replay); err != nil {
			return err
		}
	}

	levelName := opts.level
	if levelName == "" && data != nil {
		levelName = data.Level
	}
	if levelName == "" {
		levelName = "demo"
	}
	level, err := loader.LoadLevel(levelName)
	if err != nil {
		return err
	}

	if data != nil && opts.headless {
		result, err := runReplay(cfg, level, data)
		if err != nil {
			return err
		}
		fmt.Println(result)
		return nil
	}

	scn, err := playing.New(cfg, level, opts.record)
	if err != nil {
		return err
	}
	if data != nil {
		if data.Level != level.ID {
			return fmt.Errorf("replay was recorded on level %q, not %q", data.Level, level.ID)
		}
		scn.Replay(replay.NewReplayer(*data))
	}

	g := game.New(scn, cfg.Display)
	defer g.Close()
	g.ApplyWindow(windowTitle)

	logger.Info("starting", "level", level.ID, "tps", cfg.Display.Framerate)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	logger.Info("window closed", "frames", g.Frames())
	return nil
}

func main() {
	if err := run(parseFlags()); err != nil {
		log.Fatal(err)
	}
}
