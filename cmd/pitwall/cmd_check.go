package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/apexbrain/pitwall/internal/raceconfig"
	"github.com/apexbrain/pitwall/internal/validation"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [plans.yaml ...]",
		Short: "Validate configuration and plan files",
		Long: `Validate the nearest .pitwall.yaml and any given plan files against
their schemas, reporting every violation with its document location.`,
		RunE: checkCommandE,
	}
}

func checkCommandE(_ *cobra.Command, args []string) error {
	failed := false

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	if path, ok := findNearestConfig(cwd); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		failed = reportFile(path, validation.ValidateRaceConfigBytes(data)) || failed
	} else {
		fmt.Printf("—  no %s found, defaults apply\n", raceconfig.ConfigFileName)
	}

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		failed = reportFile(path, validation.ValidatePlansBytes(data)) || failed
	}

	if failed {
		return fmt.Errorf("validation failed")
	}
	return nil
}

// reportFile prints one status line per file plus any violations; it
// returns true when the file failed.
func reportFile(path string, errs []string) bool {
	if len(errs) == 0 {
		fmt.Printf("✅ %s\n", path)
		return false
	}
	fmt.Printf("❌ %s\n", path)
	for _, e := range errs {
		fmt.Printf("   %s\n", e)
	}
	return true
}

// findNearestConfig mirrors the loader's walk-up search but returns the
// path rather than the contents, so check can name the file it validated.
func findNearestConfig(dir string) (string, bool) {
	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, raceconfig.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return p, true
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}
