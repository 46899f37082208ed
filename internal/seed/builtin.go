package seed

import (
	"github.com/good-yellow-bee/liveguide/internal/filetree"
	"github.com/good-yellow-bee/liveguide/internal/models"
)

// Builtin returns the embedded fallback seed for a template kind. It is
// intentionally small: the full design-system payloads ship as JSON
// documents in the template data directory.
func Builtin(kind models.TemplateKind) *models.Project {
	switch kind {
	case models.TemplateMXDS:
		return builtinMXDS()
	default:
		return builtinKRDS()
	}
}

// CanonicalTree returns the canonical file-tree shape for a template
// kind. The krds tree is authoritative: a persisted krds override's
// tree is always forced back to this shape on load.
func CanonicalTree(kind models.TemplateKind) []*models.FileNode {
	tree := filetree.DefaultTree()
	if kind == models.TemplateKRDS {
		for _, name := range []string{"krds_tokens.css", "krds.css", "krds.min.css"} {
			tree = filetree.EnsureFileUnderFolder(tree, "css", name)
		}
		tree = filetree.EnsureFileUnderFolder(tree, "js", "pattern.js")
	}
	return tree
}

func builtinKRDS() *models.Project {
	p := &models.Project{
		ID:          string(models.TemplateKRDS),
		Name:        "KRDS",
		Kind:        models.KindSystemTemplate,
		Description: "Korea Design System base guide",
		Categories:  append([]string(nil), models.DefaultCategories...),
		FileTree:    CanonicalTree(models.TemplateKRDS),
	}
	p.CommonFiles = []*models.CommonFile{
		models.NewCommonFile("krds_tokens.css", ":root { --krds-color-primary: #246beb; --krds-color-text: #1e2124; }", models.CommonFileCSS),
		models.NewCommonFile("krds.css", "body { font-family: 'Pretendard GOV', sans-serif; color: var(--krds-color-text); }", models.CommonFileCSS),
		models.NewCommonFile("krds.min.css", "body{font-family:'Pretendard GOV',sans-serif}", models.CommonFileCSS),
		models.NewCommonFile("component.css", "", models.CommonFileCSS),
		models.NewCommonFile("pattern.js", "window.krds = window.krds || {};", models.CommonFileJS),
		models.NewCommonFile("component.js", "", models.CommonFileJS),
	}

	btn := models.NewComponentItem("Primary Button", "Button")
	btn.Description = "Default call-to-action button"
	btn.HTML = `<button type="button" class="krds-btn primary">확인</button>`
	btn.CSS = ".krds-btn.primary { background: var(--krds-color-primary); color: #fff; padding: 8px 16px; border-radius: 4px; }"
	p.Components = append(p.Components, btn)
	models.SortComponents(p.Components)
	return p
}

func builtinMXDS() *models.Project {
	p := &models.Project{
		ID:          string(models.TemplateMXDS),
		Name:        "MXDS",
		Kind:        models.KindSystemTemplate,
		Description: "MX design system base guide",
		Categories:  append([]string(nil), models.DefaultCategories...),
		FileTree:    CanonicalTree(models.TemplateMXDS),
	}
	p.CommonFiles = []*models.CommonFile{
		models.NewCommonFile("mxds.css", ":root { --mxds-accent: #ff5a36; } body { font-family: system-ui, sans-serif; }", models.CommonFileCSS),
		models.NewCommonFile("component.css", "", models.CommonFileCSS),
		models.NewCommonFile("component.js", "", models.CommonFileJS),
	}
	card := models.NewComponentItem("Basic Card", "Card")
	card.HTML = `<div class="mx-card"><h3>Title</h3><p>Body</p></div>`
	card.CSS = ".mx-card { border: 1px solid #e5e7eb; border-radius: 8px; padding: 16px; }"
	p.Components = append(p.Components, card)
	models.SortComponents(p.Components)
	return p
}
