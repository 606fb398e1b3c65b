package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/whereisit/internal/config"
	"github.com/vovakirdan/whereisit/internal/registry"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List the configured stage sequence",
	Long:  `Shows the stages in play order after applying --config and the override flags.`,
	Args:  cobra.NoArgs,
	Run:   runStages,
}

var iconsCmd = &cobra.Command{
	Use:   "icons",
	Short: "List the available pictures",
	Long:  `Shows every picture a stage can use, by ID.`,
	Args:  cobra.NoArgs,
	Run:   runIcons,
}

func init() {
	addOverrideFlags(stagesCmd)
}

func runStages(cmd *cobra.Command, args []string) {
	cfg, source, err := loadConfig()
	if err != nil {
		fail(err)
	}

	fmt.Printf("Stages from %s (policy: %s):\n", source, policyName(cfg))
	fmt.Println()

	// Calculate column widths
	maxNameLen := len("Stage")
	for _, s := range cfg.Stages {
		maxNameLen = max(maxNameLen, len(s.Name))
	}

	fmt.Printf("  #  %-*s  %-8s  %6s  %s\n", maxNameLen, "Stage", "Target", "Rounds", "Pictures")
	fmt.Printf("  -  %-*s  %-8s  %6s  %s\n", maxNameLen, "-----", "------", "------", "--------")

	for i, s := range cfg.Stages {
		ids := make([]string, 0, len(s.Objects))
		for _, o := range s.Objects {
			ids = append(ids, o.ID)
		}
		fmt.Printf("  %d  %-*s  %-8s  %6d  %s\n", i+1, maxNameLen, s.Name, s.TargetID(), s.Threshold, strings.Join(ids, ", "))
	}
	fmt.Println()
}

func policyName(cfg config.Config) string {
	if cfg.Policy == "" {
		return "terminal"
	}
	return cfg.Policy
}

func runIcons(cmd *cobra.Command, args []string) {
	icons := registry.List()

	fmt.Println("Available pictures:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, icon := range icons {
		maxIDLen = max(maxIDLen, len(icon.ID))
	}

	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Size", "Title")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "----", "-----")
	for _, icon := range icons {
		size := icon.Size()
		fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, icon.ID, fmt.Sprintf("%.0fx%.0f", size.W, size.H), icon.Title)
	}

	fmt.Println()
	fmt.Println("Use the IDs in the objects list of a stage.")
}
