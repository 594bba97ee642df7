package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/impasto-cli/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate an impasto manifest and check referenced files",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	m, baseDir, err := manifest.Read(args[0])
	if err != nil {
		return err
	}

	errors := manifest.Validate(m, baseDir)
	if len(errors) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d paintings, %d extras, all files present and matching\n",
			m.Stats.TotalPaintings, m.Stats.TotalExtras)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errors))
}
