package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apexbrain/pitwall/internal/raceconfig"
	"github.com/apexbrain/pitwall/internal/wizard"
)

var initForce bool

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .pitwall.yaml interactively",
		Long: `Walk through the race setup — circuit, grid position, conditions, and
strategy posture — and write the answers as a .pitwall.yaml in the
current directory.`,
		Args: cobra.NoArgs,
		RunE: initCommandE,
	}

	cmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")

	return cmd
}

func initCommandE(_ *cobra.Command, _ []string) error {
	if !initForce {
		if _, err := os.Stat(raceconfig.ConfigFileName); err == nil {
			return fmt.Errorf("%s already exists; use --force to overwrite", raceconfig.ConfigFileName)
		}
	}

	spec, err := wizard.RunRaceWizard(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	content, err := wizard.GenerateConfig(spec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(raceconfig.ConfigFileName, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", raceconfig.ConfigFileName, err)
	}

	fmt.Printf("wrote %s for %s (P%d)\n", raceconfig.ConfigFileName, spec.Circuit, spec.GridPosition)
	fmt.Println("next: pitwall optimize")
	return nil
}
