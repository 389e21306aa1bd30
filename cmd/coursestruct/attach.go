package main

import (
	"github.com/spf13/cobra"

	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/attach"
)

func newAttachCommand(ctx *commandContext) *cobra.Command {
	var metaPath string
	var fromDir string
	var pattern string
	var level int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "attach",
		Short: "Embed compiled sheet objects into a lesson metadata file",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := attach.Run(metaPath, fromDir, attach.Options{
				Pattern: pattern,
				Level:   level,
				DryRun:  dryRun,
			})
			if err != nil {
				return err
			}

			for _, missing := range res.Missing {
				ctx.log.Warnw("no matching sheet found", "lesson", missing)
			}
			if res.SkippedOutOfScope > 0 {
				ctx.log.Infow("skipped out-of-scope entries", "count", res.SkippedOutOfScope)
			}
			if dryRun {
				ctx.log.Infow("dry run complete", "would_update", res.Updated)
			} else {
				ctx.log.Infow("embedded sheet objects", "updated", res.Updated, "backup", res.BackupPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&metaPath, "meta", "", "Lesson metadata JSON file (array of objects)")
	cmd.Flags().StringVar(&fromDir, "from-dir", "", "Directory containing workbook JSONs")
	cmd.Flags().StringVar(&pattern, "pattern", "*.json", "Workbook filename glob within --from-dir")
	cmd.Flags().IntVar(&level, "level", 0, "Restrict matching to one level (0 = all)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without writing")
	_ = cmd.MarkFlagRequired("meta")
	_ = cmd.MarkFlagRequired("from-dir")

	return cmd
}
