package structure

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/coursestruct/coursestruct-go/pkg/coursestruct/models"
)

// ErrEmptyToc marks a sheet with no usable toc entries. Such sheets are
// considered not yet authored: callers skip them with a warning and keep
// processing the rest of the input.
var ErrEmptyToc = errors.New("sheet has no usable toc entries")

const (
	idHost              = "http://benchmarkuniverse.com"
	moveOnNotApplicable = "NotApplicable"
)

var (
	quoteRuns    = regexp.MustCompile("[“”\"']")
	nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify lowercases a title and squashes everything that is not
// alphanumeric to single underscores.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = quoteRuns.ReplaceAllString(s, "")
	s = nonAlnumRuns.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "section"
	}
	return s
}

// placeholder formats the literal substitution token a downstream templating
// stage resolves; this builder never resolves them.
func placeholder(sheetName, field string) string {
	return "{" + sheetName + ":" + field + "}"
}

// tocGroup is one run of toc entries sharing a canonical block title, in
// first-seen order of titles.
type tocGroup struct {
	title string
	items []models.TocEntry
}

// BuildCourse converts one compiled sheet object into a course-structure
// document. A non-empty xcode overrides the sheet's own code. The sheet is
// deep-cloned first so the compiled record stays untouched.
func BuildCourse(sheet *models.SheetObject, xcode string) (*models.CourseDocument, error) {
	src, err := sheet.Clone()
	if err != nil {
		return nil, fmt.Errorf("clone sheet %q: %w", sheet.SheetName, err)
	}

	sheetName := strings.TrimSpace(src.SheetName)
	if sheetName == "" {
		sheetName = "Sheet"
	}
	code := strings.TrimSpace(xcode)
	if code == "" {
		code = strings.TrimSpace(src.Xcode)
	}
	if code == "" {
		code = "XCODE"
	}

	if len(src.Toc) == 0 {
		return nil, fmt.Errorf("sheet %q: %w", sheetName, ErrEmptyToc)
	}

	groups, titleBySlide, lastSlide := groupToc(src.Toc)

	skill := placeholder(sheetName, "skill")
	doc := &models.CourseDocument{
		Xmlns:    models.CourseStructureNS,
		XmlnsBec: models.PlayerExtensionNS,
		Course:   buildCourseHeader(src, sheetName, code, skill),
	}

	blockIndex := -1
	for _, g := range groups {
		if g.title != BlockLessonOpener {
			continue
		}
		doc.Blocks = append(doc.Blocks, openerBlock(g.items, code, titleBySlide, skill))
	}
	for _, g := range groups {
		switch g.title {
		case BlockLessonOpener, BlockAdditionalSupports:
			// The opener is already placed first; inlined supports
			// entries are replaced by the synthesized trailing block.
			continue
		}
		blockIndex++
		doc.Blocks = append(doc.Blocks, standardBlock(g, blockIndex, code, src.LessonNum, titleBySlide, skill))
	}
	blockIndex++
	doc.Blocks = append(doc.Blocks, supportsBlock(blockIndex, code, src.LessonNum, lastSlide))

	return doc, nil
}

// groupToc groups entries by canonical block title preserving first-seen
// title order, and indexes titles by slide number.
func groupToc(toc []models.TocEntry) (groups []tocGroup, titleBySlide map[int]string, lastSlide int) {
	index := make(map[string]int)
	titleBySlide = make(map[int]string)
	for _, entry := range toc {
		label := ""
		if entry.Section != nil {
			label = *entry.Section
		}
		title := CanonicalBlockTitle(label)
		if i, ok := index[title]; ok {
			groups[i].items = append(groups[i].items, entry)
		} else {
			index[title] = len(groups)
			groups = append(groups, tocGroup{title: title, items: []models.TocEntry{entry}})
		}
		titleBySlide[entry.SlideNumber] = entry.Title
		if entry.SlideNumber > lastSlide {
			lastSlide = entry.SlideNumber
		}
	}
	return groups, titleBySlide, lastSlide
}

func buildCourseHeader(src *models.SheetObject, sheetName, code, skill string) models.Course {
	courseTitle := fmt.Sprintf("Benchmark Phonics Intervention - Level %d Unit %d %s", src.Level, src.Unit, skill)
	return models.Course{
		ID:             fmt.Sprintf("%s/%s", idHost, code),
		Title:          textNode(courseTitle, ""),
		Description:    textNode(courseTitle, "en-US"),
		PackageVersion: "1.0",
		ShowPlayer:     models.ShowPlayer{Section: "all"},
		PlayerHeader: models.PlayerHeader{
			BackgroundColor: "#eee",
			ProgramLogoURL:  "contents/images/logo.png",
		},
		PlayerSideBar: models.PlayerSideBar{
			TableOfContentLabel:      "Table of Contents",
			AdditionalResourcesLabel: "Lesson Materials",
		},
		AdditionalResources: additionalResources(src.Unit, sheetName),
	}
}

// additionalResources emits the three fixed lesson-material entries: the
// current-unit student book, the next-unit student book, and the read-aloud
// card. SKUs stay as placeholder tokens.
func additionalResources(unit int, sheetName string) models.AdditionalResources {
	resource := func(title, desc, sku string) models.Resource {
		return models.Resource{
			Title:       textNode(title, ""),
			Description: textNode(desc, ""),
			SKU:         sku,
			Role:        "student",
		}
	}
	return models.AdditionalResources{Resources: []models.Resource{
		resource(
			fmt.Sprintf("Reading Collection Unit %d", unit),
			fmt.Sprintf("Unit %d Student Book", unit),
			placeholder(sheetName, "book1"),
		),
		resource(
			fmt.Sprintf("Reading Collection Unit %d", unit+1),
			fmt.Sprintf("Unit %d Student Book", unit+1),
			placeholder(sheetName, "book2"),
		),
		resource(
			"Read-Aloud Card",
			fmt.Sprintf("Unit %d Student Book", unit),
			placeholder(sheetName, "read_aloud_card"),
		),
	}}
}

func openerBlock(items []models.TocEntry, code string, titleBySlide map[int]string, skill string) models.Block {
	block := models.Block{
		ID:          fmt.Sprintf("%s/%s/block/lesson_opener_block", idHost, code),
		Title:       textNode(BlockLessonOpener, ""),
		Description: textNode(BlockLessonOpener, "en-US"),
	}
	for _, entry := range sortedBySlide(items) {
		sn := entry.SlideNumber
		title := titleBySlide[sn]
		if title == "" {
			title = BlockLessonOpener
		}
		block.Units = append(block.Units, models.AssignableUnit{
			ID:              fmt.Sprintf("%s/%s/block/lesson_opener_lesson", idHost, code),
			MoveOn:          moveOnNotApplicable,
			Title:           textNode(title, ""),
			Description:     textNode(title, ""),
			URL:             lessonURL(sn),
			TeacherResource: teacherResourceURL(sn),
			Skill:           &models.Skill{Code: skill},
		})
	}
	return block
}

func standardBlock(g tocGroup, blockIndex int, code string, lessonNum int, titleBySlide map[int]string, skill string) models.Block {
	slugSource := g.title
	if first := g.items[0]; first.Section != nil && *first.Section != "" {
		slugSource = *first.Section
	}
	blockID := fmt.Sprintf("%s/%s/block%d/lesson_%d/%s", idHost, code, blockIndex, lessonNum, Slugify(slugSource))
	block := models.Block{
		ID:          blockID,
		Title:       textNode(g.title, ""),
		Description: textNode(g.title, "en-US"),
	}

	// Slug collisions within the block get _2, _3, ... suffixes in order
	// of occurrence; the first occurrence keeps the bare slug.
	seen := make(map[string]int)
	for _, entry := range sortedBySlide(g.items) {
		sn := entry.SlideNumber
		title := titleBySlide[sn]
		if title == "" {
			title = fmt.Sprintf("Slide %d", sn)
		}
		slug := Slugify(title)
		seen[slug]++
		if n := seen[slug]; n > 1 {
			slug = fmt.Sprintf("%s_%d", slug, n)
		}
		block.Units = append(block.Units, models.AssignableUnit{
			ID:              fmt.Sprintf("%s/%s/block%d/lesson_%d/%s", idHost, code, blockIndex, lessonNum, slug),
			MoveOn:          moveOnNotApplicable,
			Title:           textNode(title, ""),
			Description:     textNode(title, ""),
			URL:             lessonURL(sn),
			TeacherResource: teacherResourceURL(sn),
			Skill:           &models.Skill{Code: skill},
		})
	}
	return block
}

// supportsBlock synthesizes the canonical trailing "Additional Supports"
// block. Its single unit links one page past the last real slide, the
// sentinel the player uses for static supplementary pages.
func supportsBlock(blockIndex int, code string, lessonNum, lastSlide int) models.Block {
	blockID := fmt.Sprintf("%s/%s/block%d/lesson_%d/additional_supports", idHost, code, blockIndex, lessonNum)
	return models.Block{
		ID:          blockID,
		Title:       textNode(BlockAdditionalSupports, ""),
		Description: textNode(BlockAdditionalSupports, "en-US"),
		Units: []models.AssignableUnit{{
			ID:          fmt.Sprintf("%s/%s/block%d/lesson_%d/additionalsupports_0", idHost, code, blockIndex, lessonNum),
			MoveOn:      moveOnNotApplicable,
			Title:       textNode(BlockAdditionalSupports, ""),
			Description: textNode(BlockAdditionalSupports, ""),
			URL:         lessonURL(lastSlide + 1),
		}},
	}
}

func sortedBySlide(items []models.TocEntry) []models.TocEntry {
	out := make([]models.TocEntry, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SlideNumber < out[j].SlideNumber })
	return out
}

func lessonURL(slide int) string {
	return fmt.Sprintf("contents/lesson/%d.html", slide)
}

func teacherResourceURL(slide int) string {
	return fmt.Sprintf("contents/teacherResources/support_%d.html", slide)
}

func textNode(text, lang string) models.TextNode {
	return models.TextNode{LangString: models.LangString{Lang: lang, Text: text}}
}
