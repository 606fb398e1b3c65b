package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/whereisit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or check configuration",
}

var configDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the built-in stages.yaml",
	Long: `Prints the built-in configuration. Save it to ~/.whereisit/stages.yaml
or ./configs/stages.yaml and edit it to make your own stages.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		os.Stdout.Write(config.DefaultYAML())
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a configuration file",
	Long:  `Loads the given file (or the one the search order finds) and reports every problem.`,
	Args:  cobra.MaximumNArgs(1),
	Run:   runConfigValidate,
}

func init() {
	configCmd.AddCommand(configDefaultCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigValidate(cmd *cobra.Command, args []string) {
	path := flagConfig
	if len(args) == 1 {
		path = args[0]
	}

	cfg, source, err := config.Load(path)
	if err != nil {
		fail(err)
	}
	if err := cfg.Validate(); err != nil {
		fail(fmt.Errorf("%s is invalid:\n%w", source, err))
	}
	fmt.Printf("%s: OK (%d stages)\n", source, len(cfg.Stages))
}
