package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/whereisit/internal/config"
	"github.com/vovakirdan/whereisit/internal/core"
	"github.com/vovakirdan/whereisit/internal/session"
)

var (
	flagSimWidth  int
	flagSimHeight int
	flagSimSkill  float64
	flagSimSteps  int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play the stages with a scripted player",
	Long: `Runs the configured stages without a terminal UI. A scripted player drags
pictures with the given skill and every move is printed. Useful for checking a
configuration or reproducing a placement with --seed.

Examples:
  whereisit simulate
  whereisit simulate --seed 42 --skill 0.6
  whereisit simulate --config ./my-stages.yaml --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	addOverrideFlags(simulateCmd)
	simulateCmd.Flags().IntVar(&flagSimWidth, "width", 80, "Playfield width in cells")
	simulateCmd.Flags().IntVar(&flagSimHeight, "height", 22, "Playfield height in cells")
	simulateCmd.Flags().Float64Var(&flagSimSkill, "skill", 0.75, "Chance of a correct drop, 0 to 1")
	simulateCmd.Flags().IntVar(&flagSimSteps, "max-steps", 500, "Stop after this many drags")
}

func runSimulate(cmd *cobra.Command, args []string) {
	cfg, source, err := loadConfig()
	if err != nil {
		fail(err)
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fail(err)
	}
	logger.Info("configuration loaded", "source", source, "stages", len(cfg.Stages))

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	field := core.NewRect(0, 0, float64(flagSimWidth), float64(flagSimHeight))
	seq, err := config.Build(cfg, field, seed, nil)
	if err != nil {
		fail(err)
	}
	sess := session.New(seq, nil, logger)
	bot := session.NewBot(seed, flagSimSkill)

	fmt.Printf("Simulating %d stages on %dx%d (seed %d)\n\n", seq.Len(), flagSimWidth, flagSimHeight, seed)

	step := 0
	stats, err := bot.Run(sess, flagSimSteps, func(m session.Move) {
		step++
		line := fmt.Sprintf("%4d  %-14s level %d  %-5s -> (%5.1f, %5.1f)  %s",
			step, m.Stage, m.Level, m.Object, m.Drop.X, m.Drop.Y, m.Outcome)
		if tr := m.Transition; tr != nil {
			switch {
			case tr.Complete:
				line += "  game complete"
			case tr.StageChanged:
				line += "  next stage: " + tr.Stage
			default:
				line += fmt.Sprintf("  level %d", tr.Level)
			}
		}
		fmt.Println(line)
	})
	if err != nil {
		fail(err)
	}

	fmt.Println()
	fmt.Printf("Hits: %d  Misses: %d  Levels: %d  Stages: %d  Complete: %v\n",
		stats.Hits, stats.Misses, stats.Levels, stats.Stages, stats.Complete)
}
