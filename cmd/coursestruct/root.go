package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var verboseFlag bool

	ctx := newCommandContext(&configFlag, &verboseFlag)

	rootCmd := &cobra.Command{
		Use:   "coursestruct",
		Short: "Convert lesson spreadsheets into course-structure documents",
		Long: `coursestruct normalizes lesson spreadsheets into per-sheet slide/audio
records (workbook JSON) and regroups them into cmi5-style course-structure
XML with placeholder tokens for a later substitution pass.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newIngestCommand(ctx))
	rootCmd.AddCommand(newStructureCommand(ctx))
	rootCmd.AddCommand(newAttachCommand(ctx))

	return rootCmd
}
