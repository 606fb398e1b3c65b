// whereisit is a drag-and-drop picture game for small children, played in
// the terminal: "Where is the dog?" Drag the dog into the frame.
//
// Usage:
//
//	whereisit play             - Play the configured stages
//	whereisit stages           - List the configured stage sequence
//	whereisit icons            - List the available pictures
//	whereisit simulate         - Run the stages with a scripted player
//	whereisit config default   - Print the built-in configuration
//	whereisit config validate  - Check a configuration file
//
// Global flags:
//
//	--config <path>     - Stage configuration (default: search ~/.whereisit, ./configs)
//	--seed <value>      - RNG seed for reproducible placement
//	--fps <rate>        - Animation frame rate (default: 30)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/whereisit/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagFPS      int
	flagLogLevel string

	// Overrides shared by play and simulate
	flagDifficulty string
	flagRounds     int
	flagPolicy     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fail(err)
	}
}

var rootCmd = &cobra.Command{
	Use:   "whereisit",
	Short: "Where is it? - a drag-and-drop picture game for kids",
	Long: `Where is it? asks a child to find a picture and drag it into the frame.
Every hit is celebrated with confetti; after a few rounds the next stage begins.

Available commands:
  play      - Play the game
  stages    - Show the configured stage sequence
  icons     - Show the available pictures
  simulate  - Play the stages with a scripted player
  config    - Print or check configuration

Examples:
  whereisit play
  whereisit play --difficulty easy
  whereisit play --config ./my-stages.yaml --policy cyclic
  whereisit simulate --seed 42`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to stage configuration YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Animation frame rate")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(iconsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// addOverrideFlags registers the flags that adjust a loaded configuration.
func addOverrideFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	cmd.Flags().IntVar(&flagRounds, "rounds", 0, "Levels per stage (0 = as configured)")
	cmd.Flags().StringVar(&flagPolicy, "policy", "", "After the last stage: terminal or cyclic")
}

// loadConfig loads the configuration and applies command-line overrides.
func loadConfig() (config.Config, string, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return cfg, source, err
	}
	err = config.ApplyOverrides(&cfg, config.Overrides{
		Difficulty: flagDifficulty,
		Rounds:     flagRounds,
		Policy:     flagPolicy,
	})
	if err != nil {
		return cfg, source, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, source, fmt.Errorf("invalid configuration %s:\n%w", source, err)
	}
	return cfg, source, nil
}

// newLogger creates the application logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "whereisit",
		Level:           level,
	}), nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
