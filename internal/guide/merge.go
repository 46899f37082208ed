package guide

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/good-yellow-bee/liveguide/internal/filetree"
	"github.com/good-yellow-bee/liveguide/internal/models"
	"github.com/good-yellow-bee/liveguide/internal/resources"
	"github.com/good-yellow-bee/liveguide/internal/seed"
)

// mergePersisted reconciles a persisted state blob against the current
// schema and seeds. It is total: any missing or structurally stale
// field is defaulted, so the result is always a valid aggregate. A nil
// blob yields fresh empty state.
func mergePersisted(st *models.PersistedState, seeds *seed.Loader) (
	projects []*models.Project,
	overrides map[models.TemplateKind]*models.Project,
	metas map[models.TemplateKind]*models.TemplateMeta,
) {
	overrides = make(map[models.TemplateKind]*models.Project)
	metas = make(map[models.TemplateKind]*models.TemplateMeta)
	if st == nil {
		return nil, overrides, metas
	}

	for _, p := range st.Projects {
		if p == nil {
			continue
		}
		// A record named after a system template with no kind tag is a
		// stale full copy from before templates were seeded separately.
		// The canonical seed is authoritative; the copy is dropped.
		if p.Kind == "" && isSeedName(p.Name, seeds) {
			log.Printf("guide: dropping legacy template copy %q from persisted state", p.Name)
			continue
		}
		normalizeProject(p)
		projects = append(projects, p)
	}

	for kind, ov := range st.EditableTemplates {
		if ov == nil || !models.IsTemplateKind(string(kind)) {
			continue
		}
		normalizeProject(ov)
		ov.ID = string(kind)
		ov.Kind = models.KindEditableTemplate
		if kind == models.TemplateKRDS {
			repairKRDSOverride(ov)
		}
		overrides[kind] = ov
	}

	for kind, meta := range st.SystemTemplateMetaOverride {
		if meta == nil || !models.IsTemplateKind(string(kind)) {
			continue
		}
		metas[kind] = meta
	}
	return projects, overrides, metas
}

// normalizeProject coerces one persisted project into an aggregate that
// respects every invariant. Missing text fields are zero values already;
// everything else gets an explicit default.
func normalizeProject(p *models.Project) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Kind = models.ParseProjectKind(string(p.Kind))
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	comps := make([]*models.ComponentItem, 0, len(p.Components))
	for _, c := range p.Components {
		if c == nil {
			continue
		}
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now()
		}
		if c.UpdatedAt.IsZero() {
			c.UpdatedAt = c.CreatedAt
		}
		comps = append(comps, c)
	}
	p.Components = comps
	models.SortComponents(p.Components)

	if len(p.Categories) == 0 {
		p.Categories = append([]string(nil), models.DefaultCategories...)
	}

	files := make([]*models.CommonFile, 0, len(p.CommonFiles))
	for _, f := range p.CommonFiles {
		if f == nil {
			continue
		}
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		f.Kind = models.ParseCommonFileKind(string(f.Kind))
		files = append(files, f)
	}
	p.CommonFiles = files

	assets := make([]*models.CommonAsset, 0, len(p.CommonAssets))
	for _, a := range p.CommonAssets {
		if a == nil {
			continue
		}
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		assets = append(assets, a)
	}
	p.CommonAssets = assets

	// Persisted copies of component-derived entries are never trusted.
	resources.StripDerived(p)

	if len(p.FileTree) == 0 {
		p.FileTree = filetree.DefaultTree()
	} else {
		backfillNodeIDs(p.FileTree)
	}
	resources.SyncToFileTree(p)
}

// repairKRDSOverride forces a krds override's tree back to its canonical
// shape while preserving the user's resource contents. Asset folder
// references are re-linked into the regenerated tree by folder name.
func repairKRDSOverride(ov *models.Project) {
	old := ov.FileTree
	ov.FileTree = seed.CanonicalTree(models.TemplateKRDS)
	relinkAssetFolders(ov.CommonAssets, old, ov.FileTree)
	resources.SyncToFileTree(ov)
}

func backfillNodeIDs(tree []*models.FileNode) {
	for _, n := range tree {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if n.Kind != models.NodeKindFolder && n.Kind != models.NodeKindFile {
			if len(n.Children) > 0 {
				n.Kind = models.NodeKindFolder
			} else {
				n.Kind = models.NodeKindFile
			}
		}
		if len(n.Children) > 0 {
			backfillNodeIDs(n.Children)
		}
	}
}

func isSeedName(name string, seeds *seed.Loader) bool {
	for _, kind := range models.TemplateKinds {
		if seeds.Load(kind).Name == name {
			return true
		}
	}
	return false
}
