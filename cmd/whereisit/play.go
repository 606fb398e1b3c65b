package main

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/whereisit/internal/audio"
	"github.com/vovakirdan/whereisit/internal/config"
	"github.com/vovakirdan/whereisit/internal/platform/tui"
	"github.com/vovakirdan/whereisit/internal/session"
)

var (
	flagMute    bool
	flagVolume  float64
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start the game in the terminal.

Drag the picture that is asked for into the frame with the mouse.
Without a mouse: Tab picks a picture, arrow keys move it, Enter drops it.

Controls:
  Mouse      - Drag pictures
  Tab        - Pick a picture
  Arrows     - Move the picked picture
  Enter      - Drop
  Esc        - Cancel the drag
  R          - Ask again
  Q/Ctrl+C   - Quit

Examples:
  whereisit play
  whereisit play --difficulty easy --mute
  whereisit play --rounds 5 --policy cyclic
  whereisit play --log-file /tmp/whereisit.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addOverrideFlags(playCmd)
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume from 0 to 1")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the screen is taken by the game)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut)
	if err != nil {
		return err
	}
	logger.Info("configuration loaded", "source", source, "stages", len(cfg.Stages))

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var player audio.Player = audio.Silent{}
	if !flagMute {
		spk := audio.NewSpeaker(flagVolume)
		if err := spk.Init(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			defer spk.Close()
			player = spk
		}
	}

	seq, err := config.Build(cfg, tui.FieldRect(width, height), seed, player)
	if err != nil {
		return err
	}
	sess := session.New(seq, player, logger)

	err = tui.Run(sess, width, height, tui.Options{
		TickRate:    flagFPS,
		Celebration: cfg.Celebration.Duration(),
		Confetti:    cfg.Celebration.Confetti,
		Seed:        seed,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	st := sess.Stats()
	logger.Info("session ended", "hits", st.Hits, "misses", st.Misses, "complete", st.Complete)
	return nil
}
