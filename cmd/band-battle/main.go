package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/band-battle/audio"
	"github.com/lixenwraith/band-battle/config"
	"github.com/lixenwraith/band-battle/core"
	"github.com/lixenwraith/band-battle/engine"
	"github.com/lixenwraith/band-battle/game"
	"github.com/lixenwraith/band-battle/render"
	"github.com/lixenwraith/band-battle/vmath"
)

var (
	configFlag      = flag.String("config", "", "Path to a TOML config file")
	debugFlag       = flag.Bool("debug", false, "Write logs to logs/band-battle.log")
	muteFlag        = flag.Bool("mute", false, "Disable audio output")
	seedFlag        = flag.Uint64("seed", 0, "Random seed (0 uses config or clock)")
	printConfigFlag = flag.Bool("print-config", false, "Print the effective config and exit")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "band-battle: %v\n", err)
		os.Exit(1)
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}
	if *seedFlag != 0 {
		cfg.Match.Seed = *seedFlag
	}

	if *printConfigFlag {
		if err := cfg.Encode(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "band-battle: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "band-battle: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	core.SetCrashTerminal(screen)
	screen.HideCursor()

	field := render.NewField(screen, cfg.Field.CellWidth, cfg.Field.CellHeight)

	// Audio failure is not fatal: the match runs silent
	output := audio.NewOutput(cfg.AudioConfig())
	if err := output.Initialize(); err != nil {
		log.Printf("audio: initialization failed, continuing without sound: %v", err)
	}
	defer output.Close()

	redTrack, err := audio.NewTrack("red", audio.RedRiff, output.SampleRate())
	if err != nil {
		return err
	}
	blueTrack, err := audio.NewTrack("blue", audio.BlueRiff, output.SampleRate())
	if err != nil {
		return err
	}
	output.Add(redTrack)
	output.Add(blueTrack)

	var rng *vmath.FastRand
	if cfg.Match.Seed != 0 {
		rng = vmath.NewFastRand(cfg.Match.Seed)
	}
	world := engine.NewWorld(field, engine.NewMonotonicTimeProvider(), rng)

	match, err := game.New(world, cfg, redTrack, blueTrack, output)
	if err != nil {
		return err
	}

	var sched *engine.Scheduler
	sched = engine.NewScheduler(world, cfg.TickInterval(), func(live int) {
		match.Update()
		_, dropped := sched.Stats()
		field.Show(match.HUD(live, sched.IsPaused(), dropped))
	})
	sched.Start()
	defer sched.Stop()

	if cfg.Match.Autoplay {
		match.SetPlaying(true)
	}

	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	})

	for ev := range events {
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if quit := handleKey(ev, match, sched); quit {
				match.SetPlaying(false)
				fired, dropped := sched.Stats()
				log.Printf("match %s: exit after %d frames (%d dropped)", match.ID, fired, dropped)
				return nil
			}
		}
	}
	return nil
}

// handleKey applies one key press; it reports true when the player quits
func handleKey(ev *tcell.EventKey, match *game.Match, sched *engine.Scheduler) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case ' ':
			playing := match.TogglePlaying()
			log.Printf("match %s: playing=%v", match.ID, playing)
		case 'p', 'P':
			paused := sched.TogglePause()
			log.Printf("match %s: paused=%v", match.ID, paused)
		}
	}
	return false
}
