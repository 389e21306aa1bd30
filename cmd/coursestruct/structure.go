package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/output"
	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/structure"
)

func newStructureCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "structure",
		Short: "Generate course-structure XML from workbook JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStructure(ctx, inputPath, stringDefault(outputDir, ctx.cfg.OutputDir))
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Workbook or lesson-list JSON file")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Root output directory")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runStructure(ctx *commandContext, inputPath, outputDir string) error {
	if outputDir == "" {
		return errors.New("output directory required (use -o or output_dir in config)")
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	records, err := structure.ExtractSheets(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	total := 0
	written := 0
	skipped := 0
	var rows [][]string

	for _, rec := range records {
		total++
		sheet := rec.Sheet
		lesson := fmt.Sprintf("L%d U%d Lesson %d", sheet.Level, sheet.Unit, sheet.LessonNum)

		doc, err := structure.BuildCourse(&sheet, rec.Xcode)
		if err != nil {
			if errors.Is(err, structure.ErrEmptyToc) {
				ctx.log.Warnw("skipping sheet",
					"sheet", sheet.SheetName,
					"reason", "no usable toc entries",
				)
				skipped++
				rows = append(rows, []string{sheet.SheetName, lesson, "skipped", "no usable toc entries"})
				continue
			}
			return err
		}

		base := sheet.Base
		if base == "" {
			base = structure.Slugify(sheet.SheetName)
		}
		path, err := output.WriteCourseXML(doc, outputDir, base, sheet.Level, sheet.Unit)
		if err != nil {
			return err
		}
		written++
		rows = append(rows, []string{sheet.SheetName, lesson, "written", path})
	}

	fmt.Println(renderTable([]string{"Sheet", "Lesson", "Status", "Detail"}, rows))
	ctx.log.Infow("structure run complete", "total", total, "written", written, "skipped", skipped)

	if written == 0 {
		return errors.New("no sheets written; check input structure")
	}
	return nil
}
