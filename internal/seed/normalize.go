package seed

import (
	"time"

	"github.com/google/uuid"

	"github.com/good-yellow-bee/liveguide/internal/filetree"
	"github.com/good-yellow-bee/liveguide/internal/models"
)

// Normalize coerces a decoded template document into a valid system
// template: reserved id, kind tag, id backfill for every nested entity,
// non-empty categories, and a default file tree when absent. The same
// defaulting rules apply to persisted data (see the guide package).
func Normalize(raw *models.Project, kind models.TemplateKind) *models.Project {
	p := &models.Project{
		ID:          string(kind),
		Name:        raw.Name,
		Kind:        models.KindSystemTemplate,
		Description: raw.Description,
		CoverImage:  raw.CoverImage,
		CreatedAt:   raw.CreatedAt,
	}
	if p.Name == "" {
		p.Name = defaultTemplateName(kind)
	}

	for _, c := range raw.Components {
		p.Components = append(p.Components, normalizeComponent(c))
	}
	models.SortComponents(p.Components)

	if len(raw.Categories) > 0 {
		p.Categories = append([]string(nil), raw.Categories...)
	} else {
		p.Categories = append([]string(nil), models.DefaultCategories...)
	}

	for _, f := range raw.CommonFiles {
		nf := *f
		if nf.ID == "" {
			nf.ID = uuid.NewString()
		}
		if nf.Kind == "" {
			nf.Kind = models.CommonFileCSS
		}
		p.CommonFiles = append(p.CommonFiles, &nf)
	}
	for _, a := range raw.CommonAssets {
		na := *a
		if na.ID == "" {
			na.ID = uuid.NewString()
		}
		p.CommonAssets = append(p.CommonAssets, &na)
	}

	if len(raw.FileTree) > 0 {
		p.FileTree = backfillNodeIDs(raw.FileTree)
	} else {
		p.FileTree = filetree.DefaultTree()
	}
	return p
}

func normalizeComponent(c *models.ComponentItem) *models.ComponentItem {
	nc := *c
	if nc.ID == "" {
		nc.ID = uuid.NewString()
	}
	if nc.CreatedAt.IsZero() {
		nc.CreatedAt = time.Now()
	}
	if nc.UpdatedAt.IsZero() {
		nc.UpdatedAt = nc.CreatedAt
	}
	return &nc
}

func backfillNodeIDs(tree []*models.FileNode) []*models.FileNode {
	for _, n := range tree {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if n.Kind == "" {
			if len(n.Children) > 0 {
				n.Kind = models.NodeKindFolder
			} else {
				n.Kind = models.NodeKindFile
			}
		}
		if len(n.Children) > 0 {
			n.Children = backfillNodeIDs(n.Children)
		}
	}
	return tree
}

func defaultTemplateName(kind models.TemplateKind) string {
	switch kind {
	case models.TemplateKRDS:
		return "KRDS"
	case models.TemplateMXDS:
		return "MXDS"
	default:
		return "Template"
	}
}
