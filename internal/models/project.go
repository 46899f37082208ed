package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectKind represents the storage/behavior class of a project.
type ProjectKind string

const (
	// KindSystemTemplate is immutable seed data, never persisted.
	KindSystemTemplate ProjectKind = "systemTemplate"
	// KindEditableTemplate is a persisted copy-on-write override that
	// shadows a system template once the first edit lands.
	KindEditableTemplate ProjectKind = "editableTemplate"
	// KindUserTemplate is an independent template created by the user.
	KindUserTemplate ProjectKind = "userTemplate"
	// KindUserProject is an ordinary user project.
	KindUserProject ProjectKind = "project"
)

// ParseProjectKind converts a string tag to ProjectKind. Absent or
// legacy tags default to KindUserProject.
func ParseProjectKind(s string) ProjectKind {
	switch s {
	case "systemTemplate":
		return KindSystemTemplate
	case "editableTemplate":
		return KindEditableTemplate
	case "userTemplate":
		return KindUserTemplate
	default:
		return KindUserProject
	}
}

// TemplateKind names one of the fixed system template seeds. The kind
// doubles as a reserved project id at the command/query surface.
type TemplateKind string

const (
	TemplateKRDS TemplateKind = "krds"
	TemplateMXDS TemplateKind = "mxds"
)

// TemplateKinds lists every system template kind.
var TemplateKinds = []TemplateKind{TemplateKRDS, TemplateMXDS}

// IsTemplateKind reports whether id is one of the reserved template ids.
func IsTemplateKind(id string) bool {
	return id == string(TemplateKRDS) || id == string(TemplateMXDS)
}

// DefaultCategories seeds a project's category set. The set is never
// allowed to become empty.
var DefaultCategories = []string{
	"Button", "Form", "Card", "Layout", "Navigation",
	"Modal", "Table", "Typography", "Etc",
}

// Project is the aggregate root: a component guide with its virtual
// file tree, shared resources, and catalog of components.
type Project struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Kind            ProjectKind      `json:"kind"`
	Description     string           `json:"description,omitempty"`
	CoverImage      string           `json:"cover_image,omitempty"`
	Participants    []string         `json:"participants,omitempty"`
	IsBookmarkGuide bool             `json:"is_bookmark_guide"`
	FileTree        []*FileNode      `json:"file_tree"`
	Components      []*ComponentItem `json:"components"`
	Categories      []string         `json:"categories"`
	CommonFiles     []*CommonFile    `json:"common_files"`
	CommonAssets    []*CommonAsset   `json:"common_assets"`
	CreatedAt       time.Time        `json:"created_at"`
}

// NewProject creates an empty user project with default categories.
// The file tree is left to the caller (the filetree package owns the
// default shape).
func NewProject(name string) *Project {
	return &Project{
		ID:         uuid.NewString(),
		Name:       name,
		Kind:       KindUserProject,
		Categories: append([]string(nil), DefaultCategories...),
		CreatedAt:  time.Now(),
	}
}

// FindComponent returns the component with the given id, or nil.
func (p *Project) FindComponent(id string) *ComponentItem {
	for _, c := range p.Components {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// HasCategory reports whether name is in the category set.
func (p *Project) HasCategory(name string) bool {
	for _, c := range p.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// TemplateMeta carries the editable metadata of a system template that
// can be overridden without materializing a full editable copy.
type TemplateMeta struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	CoverImage  string `json:"cover_image,omitempty"`
}

// PersistedState is the local-storage blob: everything the state
// machine persists between sessions. Every field tolerates absence;
// the merge routine normalizes whatever it is handed.
type PersistedState struct {
	Projects                   []*Project                     `json:"projects"`
	SystemTemplateMetaOverride map[TemplateKind]*TemplateMeta `json:"system_template_meta_overrides,omitempty"`
	EditableTemplates          map[TemplateKind]*Project      `json:"editable_templates,omitempty"`
}
