// Package cli wires configuration, logging and the job worker behind the
// cutout command.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "cutout <input>...",
		Short:        "Cut short vertical clips from local videos",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args)
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.Flags().String("out", "", "Output directory (default from OUT_DIR)")
	root.Flags().Int("clips", 0, "Number of clips per video (default from TARGET_COUNT)")
	root.Flags().Int("min", 0, "Minimum clip seconds (default from MIN_SEC)")
	root.Flags().Int("max", 0, "Maximum clip seconds (default from MAX_SEC)")
	root.Flags().String("title-hint", "", "Topic hint passed to segment selection")
	root.Flags().Bool("rule-only", false, "Skip the model and select segments by rules")
	root.Flags().Bool("dry-run", false, "Select segments and print them without rendering")
	root.Flags().Bool("no-subs", false, "Do not burn subtitles into clips")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
