package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coursestruct/coursestruct-go/pkg/coursestruct"
	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/codes"
	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/models"
	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/output"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var codesPath string
	var pretty bool
	var split bool

	cmd := &cobra.Command{
		Use:   "ingest [input.xlsx|dir]...",
		Short: "Normalize lesson spreadsheets into workbook JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			usePretty := pretty
			if !cmd.Flags().Changed("pretty") {
				usePretty = ctx.cfg.Pretty
			}
			return runIngest(ctx, args,
				stringDefault(outputDir, ctx.cfg.OutputDir),
				stringDefault(codesPath, ctx.cfg.CodesPath),
				usePretty, split)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for workbook JSON files")
	cmd.Flags().StringVar(&codesPath, "codes", "", "Lesson-code table (JSON)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&split, "split", false, "Also write one JSON file per sheet")

	return cmd
}

func runIngest(ctx *commandContext, args []string, outputDir, codesPath string, pretty, split bool) error {
	if outputDir == "" {
		return errors.New("output directory required (use -o or output_dir in config)")
	}

	inputs, err := collectInputs(ctx, args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.New("no valid .xlsx files found to process")
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	opts := coursestruct.Options{
		Codes:  codes.Load(codesPath),
		Logger: ctx.log,
	}

	failed := 0
	for _, input := range inputs {
		wb, err := coursestruct.CompileWorkbook(input, opts)
		if err != nil {
			ctx.log.Errorw("workbook failed", "input", input, "error", err)
			failed++
			continue
		}

		data, err := output.ToJSON(wb, pretty)
		if err != nil {
			return fmt.Errorf("serialize %s: %w", input, err)
		}

		stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		outPath := filepath.Join(outputDir, stem+".json")
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}

		if split {
			if err := writeSheetFiles(wb, filepath.Join(outputDir, stem), pretty); err != nil {
				return err
			}
		}

		ctx.log.Infow("wrote workbook",
			"path", outPath,
			"sheets", wb.Totals.Sheets,
			"slides", wb.Totals.Slides,
			"audio_items", wb.Totals.AudioItems,
		)
	}

	if failed == len(inputs) {
		return fmt.Errorf("all %d workbook(s) failed", failed)
	}
	return nil
}

// writeSheetFiles writes each compiled sheet as its own JSON file under dir,
// named by the sheet's base slug.
func writeSheetFiles(wb *models.Workbook, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		data, err := output.SheetToJSON(sheet, pretty)
		if err != nil {
			return fmt.Errorf("serialize sheet %s: %w", sheet.SheetName, err)
		}
		path := filepath.Join(dir, sheet.Base+".json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

// collectInputs expands the input arguments: directories are scanned for
// .xlsx files (sorted), files are taken as-is, anything else is reported
// and skipped.
func collectInputs(ctx *commandContext, args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			ctx.log.Warnw("skipping invalid input", "input", arg)
			continue
		}
		if info.IsDir() {
			matches, err := filepath.Glob(filepath.Join(arg, "*.xlsx"))
			if err != nil {
				return nil, err
			}
			sort.Strings(matches)
			inputs = append(inputs, matches...)
			continue
		}
		if filepath.Ext(arg) == ".xlsx" {
			inputs = append(inputs, arg)
			continue
		}
		ctx.log.Warnw("skipping invalid input", "input", arg)
	}
	return inputs, nil
}
