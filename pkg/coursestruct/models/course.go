package models

import "encoding/xml"

// Namespace URIs for the course-structure document.
const (
	CourseStructureNS = "https://w3id.org/xapi/profiles/cmi5/v1/CourseStructure.xsd"
	PlayerExtensionNS = "https://cmi5extension.benchmarkuniverse.com/cmi5/BecPlayerExtension.xsd"
)

// CourseDocument is the root of one course-structure XML document. It is
// marshal-only: the structs carry literal "bec:" prefixes so the encoder
// reproduces the two-namespace layout without namespace rewriting.
type CourseDocument struct {
	XMLName  xml.Name `xml:"courseStructure"`
	Xmlns    string   `xml:"xmlns,attr"`
	XmlnsBec string   `xml:"xmlns:bec,attr"`
	Course   Course   `xml:"course"`
	Blocks   []Block  `xml:"block"`
}

// LangString is a language-tagged text node.
type LangString struct {
	Lang string `xml:"lang,attr,omitempty"`
	Text string `xml:",chardata"`
}

// TextNode wraps a single langstring child, the cmi5 text convention.
type TextNode struct {
	LangString LangString `xml:"langstring"`
}

// Course holds course-level metadata and player configuration.
type Course struct {
	ID                  string              `xml:"id,attr"`
	Title               TextNode            `xml:"title"`
	Description         TextNode            `xml:"description"`
	PackageVersion      string              `xml:"bec:packageVersion"`
	ShowPlayer          ShowPlayer          `xml:"bec:showPlayer"`
	PlayerHeader        PlayerHeader        `xml:"bec:playerHeader"`
	PlayerSideBar       PlayerSideBar       `xml:"bec:playerSideBar"`
	AdditionalResources AdditionalResources `xml:"bec:additionalResources"`
}

// ShowPlayer selects which sections render the player chrome.
type ShowPlayer struct {
	Section string `xml:"bec:section"`
}

// PlayerHeader configures the player header bar.
type PlayerHeader struct {
	BackgroundColor string `xml:"bec:backgroundColor"`
	ProgramLogoURL  string `xml:"bec:programLogoUrl"`
}

// PlayerSideBar configures the player sidebar labels.
type PlayerSideBar struct {
	TableOfContentLabel      string `xml:"bec:tableOfContentLabel"`
	AdditionalResourcesLabel string `xml:"bec:additionalResourcesLabel"`
}

// AdditionalResources lists lesson-material resources shown in the sidebar.
type AdditionalResources struct {
	Resources []Resource `xml:"bec:resource"`
}

// Resource is one additional-resource entry. SKU carries a placeholder
// token resolved by a later templating stage.
type Resource struct {
	Title       TextNode `xml:"bec:title"`
	Description TextNode `xml:"bec:description"`
	SKU         string   `xml:"bec:sku"`
	Role        string   `xml:"bec:role"`
}

// Block is a named group of assignable units for one curricular phase.
type Block struct {
	ID          string           `xml:"id,attr"`
	Title       TextNode         `xml:"title"`
	Description TextNode         `xml:"description"`
	Units       []AssignableUnit `xml:"au"`
}

// AssignableUnit is one addressable page/activity in the output document.
type AssignableUnit struct {
	ID              string   `xml:"id,attr"`
	MoveOn          string   `xml:"moveOn,attr"`
	Title           TextNode `xml:"title"`
	Description     TextNode `xml:"description"`
	URL             string   `xml:"url"`
	TeacherResource string   `xml:"bec:teacherResource,omitempty"`
	Skill           *Skill   `xml:"bec:skill,omitempty"`
}

// Skill carries the skill-code placeholder for an assignable unit.
type Skill struct {
	Code string `xml:"bec:code"`
}
