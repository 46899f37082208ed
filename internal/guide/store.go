// Package guide implements the project/template state machine: the
// aggregate root over user projects, user templates, and the two system
// template kinds with their copy-on-write editable overrides.
package guide

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/good-yellow-bee/liveguide/internal/filetree"
	"github.com/good-yellow-bee/liveguide/internal/metrics"
	"github.com/good-yellow-bee/liveguide/internal/models"
	"github.com/good-yellow-bee/liveguide/internal/resources"
	"github.com/good-yellow-bee/liveguide/internal/seed"
	"github.com/good-yellow-bee/liveguide/internal/storage"
)

var (
	// ErrProjectNotFound reports an unknown project id.
	ErrProjectNotFound = errors.New("guide: project not found")
	// ErrComponentNotFound reports an unknown component id.
	ErrComponentNotFound = errors.New("guide: component not found")
	// ErrCategoryNotFound reports an unknown category name.
	ErrCategoryNotFound = errors.New("guide: category not found")
	// ErrCategoryExists reports an attempt to add a duplicate category.
	ErrCategoryExists = errors.New("guide: category already exists")
	// ErrReservedID reports a lifecycle operation aimed at a reserved
	// system-template id. Templates are reset, never deleted.
	ErrReservedID = errors.New("guide: operation not allowed on a system template id")
)

// Store is the aggregate root. All state transitions are synchronous
// snapshot mutations under one lock; the persisted blob is rewritten
// after every successful mutation.
type Store struct {
	mu     sync.Mutex
	seeds  *seed.Loader
	state  storage.StateStore
	mirror storage.Mirror // optional

	projects  []*models.Project
	overrides map[models.TemplateKind]*models.Project
	metas     map[models.TemplateKind]*models.TemplateMeta
	views     *viewCache
}

// NewStore creates a store over a seed loader, a state store, and an
// optional mirror (nil disables mirroring).
func NewStore(seeds *seed.Loader, state storage.StateStore, mirror storage.Mirror) *Store {
	return &Store{
		seeds:     seeds,
		state:     state,
		mirror:    mirror,
		overrides: make(map[models.TemplateKind]*models.Project),
		metas:     make(map[models.TemplateKind]*models.TemplateMeta),
		views:     newViewCache(),
	}
}

// Open loads and migrates the persisted state. A corrupt blob is logged
// and the store starts fresh; the migration itself is total and cannot
// fail.
func (s *Store) Open() error {
	persisted, err := s.state.Load()
	if err != nil {
		log.Printf("guide: load persisted state: %v (starting fresh)", err)
		persisted = nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects, s.overrides, s.metas = mergePersisted(persisted, s.seeds)
	return nil
}

// InvalidateTemplate drops the cached view of one template kind so the
// next read rebuilds it from the (possibly reloaded) seed.
func (s *Store) InvalidateTemplate(kind models.TemplateKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views.invalidate(kind)
}

// GetProject resolves a project id. A reserved template id resolves to
// the editable override when one exists, else to the derived seed view.
// The result is a detached snapshot: callers encode it after the lock is
// released, so it must never alias store-owned state.
func (s *Store) GetProject(id string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.resolveRead(id)
	if err != nil {
		return nil, err
	}
	return cloneForView(p), nil
}

// ListProjects returns detached snapshots of every user project and
// user template.
func (s *Store) ListProjects() []*models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, cloneForView(p))
	}
	return out
}

// ListTemplates returns the system template views (override when one
// exists) followed by the user templates, all as detached snapshots.
func (s *Store) ListTemplates() []*models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Project, 0, 2+len(s.projects))
	for _, kind := range models.TemplateKinds {
		if ov := s.overrides[kind]; ov != nil {
			out = append(out, cloneForView(ov))
			continue
		}
		out = append(out, cloneForView(s.templateView(kind)))
	}
	for _, p := range s.projects {
		if p.Kind == models.KindUserTemplate {
			out = append(out, cloneForView(p))
		}
	}
	return out
}

// CreateOptions carries the optional inputs of CreateProject.
type CreateOptions struct {
	Description      string
	CoverImage       string
	Participants     []string
	InitialFileTree  []*models.FileNode
	CopyFromGuideIDs []string
}

// CreateProject builds a new user project. When copy sources are given,
// their contents are deep-copied in: the last source wins the file
// tree, while files, assets, and components accumulate and categories
// union across all sources.
func (s *Store) CreateProject(name string, opts CreateOptions) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := models.NewProject(name)
	p.Description = opts.Description
	p.CoverImage = opts.CoverImage
	p.Participants = append([]string(nil), opts.Participants...)
	switch {
	case opts.InitialFileTree != nil:
		p.FileTree = opts.InitialFileTree
	default:
		p.FileTree = filetree.DefaultTree()
	}

	if len(opts.CopyFromGuideIDs) > 0 {
		if err := s.copyUnionInto(p, opts.CopyFromGuideIDs); err != nil {
			return nil, err
		}
	}

	s.projects = append(s.projects, p)
	return cloneForView(p), s.persist()
}

// copyUnionInto accumulates the contents of every source project into
// dst. Sources are resolved with template-view semantics. Asset folder
// references are re-linked only after the last source has settled the
// tree, so assets from earlier sources resolve against the final tree
// rather than one that gets replaced.
func (s *Store) copyUnionInto(dst *models.Project, sourceIDs []string) error {
	type assetOrigin struct {
		assets  []*models.CommonAsset
		srcTree []*models.FileNode
	}
	var origins []assetOrigin

	for _, id := range sourceIDs {
		src, err := s.resolveRead(id)
		if err != nil {
			return err
		}
		dst.FileTree = filetree.Clone(src.FileTree)

		files := resources.CloneCommonFiles(src.CommonFiles)
		dst.CommonFiles = append(dst.CommonFiles, files...)

		assets := resources.CloneCommonAssets(src.CommonAssets)
		origins = append(origins, assetOrigin{assets: assets, srcTree: src.FileTree})
		dst.CommonAssets = append(dst.CommonAssets, assets...)

		dst.Components = append(dst.Components, cloneComponents(src.Components)...)
		for _, cat := range src.Categories {
			if !dst.HasCategory(cat) {
				dst.Categories = append(dst.Categories, cat)
			}
		}
	}
	for _, o := range origins {
		relinkAssetFolders(o.assets, o.srcTree, dst.FileTree)
	}
	models.SortComponents(dst.Components)
	resources.SyncToFileTree(dst)
	return nil
}

// CreateProjectFromTemplate deep-copies a template (or any project)
// into a fresh user project with new ids for every nested entity.
func (s *Store) CreateProjectFromTemplate(sourceID, name string, opts CreateOptions) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, err := s.resolveRead(sourceID)
	if err != nil {
		return nil, err
	}
	p := models.NewProject(name)
	p.Description = opts.Description
	p.CoverImage = opts.CoverImage
	p.Participants = append([]string(nil), opts.Participants...)
	copyContentInto(p, src)

	s.projects = append(s.projects, p)
	return cloneForView(p), s.persist()
}

// SaveProjectAsTemplate deep-copies a user project into a new user
// template. The origin project is untouched.
func (s *Store) SaveProjectAsTemplate(projectID, templateName string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, err := s.resolveRead(projectID)
	if err != nil {
		return nil, err
	}
	t := models.NewProject(templateName)
	t.Kind = models.KindUserTemplate
	t.Description = src.Description
	t.CoverImage = src.CoverImage
	copyContentInto(t, src)

	s.projects = append(s.projects, t)
	return cloneForView(t), s.persist()
}

// DeleteProject removes a user project or user template. The mirror
// delete is best-effort and never blocks the local removal.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if models.IsTemplateKind(id) {
		return ErrReservedID
	}
	for i, p := range s.projects {
		if p.ID != id {
			continue
		}
		s.projects = append(s.projects[:i], s.projects[i+1:]...)
		if err := s.persist(); err != nil {
			return err
		}
		if s.mirror != nil {
			if err := s.mirror.Delete(context.Background(), id); err != nil {
				log.Printf("guide: mirror delete %s: %v", id, err)
			}
		}
		return nil
	}
	return ErrProjectNotFound
}

// MetaUpdate carries optional project metadata changes; nil fields are
// left untouched.
type MetaUpdate struct {
	Name            *string
	Description     *string
	CoverImage      *string
	Participants    *[]string
	IsBookmarkGuide *bool
}

// UpdateProjectMeta updates a project's metadata. Meta edits to a
// pristine system template are stored as a light meta override instead
// of materializing a full editable copy.
func (s *Store) UpdateProjectMeta(id string, upd MetaUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if models.IsTemplateKind(id) {
		kind := models.TemplateKind(id)
		if s.overrides[kind] == nil {
			meta := s.metas[kind]
			if meta == nil {
				meta = &models.TemplateMeta{}
				s.metas[kind] = meta
			}
			if upd.Name != nil {
				meta.Name = *upd.Name
			}
			if upd.Description != nil {
				meta.Description = *upd.Description
			}
			if upd.CoverImage != nil {
				meta.CoverImage = *upd.CoverImage
			}
			s.views.invalidate(kind)
			return s.persist()
		}
	}

	p, err := s.resolveWrite(id)
	if err != nil {
		return err
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.CoverImage != nil {
		p.CoverImage = *upd.CoverImage
	}
	if upd.Participants != nil {
		p.Participants = append([]string(nil), (*upd.Participants)...)
	}
	if upd.IsBookmarkGuide != nil {
		p.IsBookmarkGuide = *upd.IsBookmarkGuide
	}
	return s.persist()
}

// ResetEditableTemplate discards a kind's editable override and meta
// override, reverting to the pristine seed view.
func (s *Store) ResetEditableTemplate(kind models.TemplateKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.overrides, kind)
	delete(s.metas, kind)
	s.views.invalidate(kind)
	return s.persist()
}

// ComponentInput carries the fields of a new component.
type ComponentInput struct {
	Name        string
	Category    string
	Description string
	HTML        string
	CSS         string
	JS          string
}

// AddComponent appends a component and re-applies the sort invariant.
// An unknown category is added to the category set.
func (s *Store) AddComponent(projectID string, in ComponentInput) (*models.ComponentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.resolveWrite(projectID)
	if err != nil {
		return nil, err
	}
	item := models.NewComponentItem(in.Name, in.Category)
	item.Description = in.Description
	item.HTML = in.HTML
	item.CSS = in.CSS
	item.JS = in.JS
	if item.Category != "" && !p.HasCategory(item.Category) {
		p.Categories = append(p.Categories, item.Category)
	}
	p.Components = append(p.Components, item)
	models.SortComponents(p.Components)
	out := *item
	return &out, s.persist()
}

// ComponentUpdate carries optional component changes.
type ComponentUpdate struct {
	Name        *string
	Category    *string
	Description *string
	HTML        *string
	CSS         *string
	JS          *string
}

// UpdateComponent applies a partial update and re-applies the sort
// invariant.
func (s *Store) UpdateComponent(projectID, componentID string, upd ComponentUpdate) (*models.ComponentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.resolveWrite(projectID)
	if err != nil {
		return nil, err
	}
	c := p.FindComponent(componentID)
	if c == nil {
		return nil, ErrComponentNotFound
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Category != nil {
		c.Category = *upd.Category
		if c.Category != "" && !p.HasCategory(c.Category) {
			p.Categories = append(p.Categories, c.Category)
		}
	}
	if upd.Description != nil {
		c.Description = *upd.Description
	}
	if upd.HTML != nil {
		c.HTML = *upd.HTML
	}
	if upd.CSS != nil {
		c.CSS = *upd.CSS
	}
	if upd.JS != nil {
		c.JS = *upd.JS
	}
	c.UpdatedAt = time.Now()
	models.SortComponents(p.Components)
	out := *c
	return &out, s.persist()
}

// RemoveComponent removes a component and purges its derived artifacts
// from the resource collections and the file tree.
func (s *Store) RemoveComponent(projectID, componentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.resolveWrite(projectID)
	if err != nil {
		return err
	}
	for i, c := range p.Components {
		if c.ID != componentID {
			continue
		}
		p.Components = append(p.Components[:i], p.Components[i+1:]...)
		resources.PurgeComponentArtifacts(p, componentID)
		return s.persist()
	}
	return ErrComponentNotFound
}

// AddCategory appends a category. Duplicates are rejected.
func (s *Store) AddCategory(projectID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.resolveWrite(projectID)
	if err != nil {
		return err
	}
	if p.HasCategory(name) {
		return ErrCategoryExists
	}
	p.Categories = append(p.Categories, name)
	return s.persist()
}

// RenameCategory renames a category and carries its components along.
func (s *Store) RenameCategory(projectID, from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.resolveWrite(projectID)
	if err != nil {
		return err
	}
	if !p.HasCategory(from) {
		return ErrCategoryNotFound
	}
	if p.HasCategory(to) {
		return ErrCategoryExists
	}
	for i, cat := range p.Categories {
		if cat == from {
			p.Categories[i] = to
		}
	}
	for _, c := range p.Components {
		if c.Category == from {
			c.Category = to
		}
	}
	models.SortComponents(p.Components)
	return s.persist()
}

// RemoveCategory removes a category. The set is never allowed to become
// empty: removing the last category re-seeds the defaults. Orphaned
// components move to the first remaining category.
func (s *Store) RemoveCategory(projectID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.resolveWrite(projectID)
	if err != nil {
		return err
	}
	if !p.HasCategory(name) {
		return ErrCategoryNotFound
	}
	next := p.Categories[:0]
	for _, cat := range p.Categories {
		if cat != name {
			next = append(next, cat)
		}
	}
	p.Categories = next
	if len(p.Categories) == 0 {
		p.Categories = append([]string(nil), models.DefaultCategories...)
	}
	fallback := p.Categories[0]
	for _, c := range p.Components {
		if c.Category == name {
			c.Category = fallback
		}
	}
	models.SortComponents(p.Components)
	return s.persist()
}

// AddCommonFile adds a shared file and mirrors it into the file tree.
func (s *Store) AddCommonFile(projectID, name, content string, kind models.CommonFileKind) (*models.CommonFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.resolveWrite(projectID)
	if err != nil {
		return nil, err
	}
	f := resources.AddCommonFile(p, name, content, kind)
	out := *f
	return &out, s.persist()
}

// UpdateCommonFile edits a shared file. Derived files are rejected.
func (s *Store) UpdateCommonFile(projectID, fileID string, name, content *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.resolveWrite(projectID)
	if err != nil {
		return err
	}
	if err := resources.UpdateCommonFile(p, fileID, name, content); err != nil {
		return err
	}
	return s.persist()
}

// RemoveCommonFile removes a shared file. Derived files are rejected.
func (s *Store) RemoveCommonFile(projectID, fileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.resolveWrite(projectID)
	if err != nil {
		return err
	}
	if err := resources.RemoveCommonFile(p, fileID); err != nil {
		return err
	}
	return s.persist()
}

// AddCommonAsset adds a shared asset and mirrors it into its export
// folder or the default images folder.
func (s *Store) AddCommonAsset(projectID, name, dataURI, exportFolderID string) (*models.CommonAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.resolveWrite(projectID)
	if err != nil {
		return nil, err
	}
	a := resources.AddCommonAsset(p, name, dataURI, exportFolderID)
	out := *a
	return &out, s.persist()
}

// UpdateCommonAsset edits a shared asset.
func (s *Store) UpdateCommonAsset(projectID, assetID string, name, dataURI, exportFolderID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.resolveWrite(projectID)
	if err != nil {
		return err
	}
	if err := resources.UpdateCommonAsset(p, assetID, name, dataURI, exportFolderID); err != nil {
		return err
	}
	return s.persist()
}

// RemoveCommonAsset removes a shared asset and its mirrored tree node.
func (s *Store) RemoveCommonAsset(projectID, assetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.resolveWrite(projectID)
	if err != nil {
		return err
	}
	if err := resources.RemoveCommonAsset(p, assetID); err != nil {
		return err
	}
	return s.persist()
}

// AddTreeNode appends a new folder or file node under a parent ("" for
// the root level).
func (s *Store) AddTreeNode(projectID, parentID, name string, kind models.NodeKind) (*models.FileNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.resolveWrite(projectID)
	if err != nil {
		return nil, err
	}
	var node *models.FileNode
	if kind == models.NodeKindFolder {
		node = filetree.NewFolder(name)
	} else {
		node = filetree.NewFile(name)
	}
	next, err := filetree.AddNode(p.FileTree, parentID, node)
	if err != nil {
		return nil, err
	}
	p.FileTree = next
	out := *node
	if node.Children != nil {
		out.Children = cloneTreeSameIDs(node.Children)
	}
	return &out, s.persist()
}

// MoveTreeNode relocates a node. Cyclic and invalid moves are rejected
// with the tree unchanged.
func (s *Store) MoveTreeNode(projectID, nodeID, newParentID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.resolveWrite(projectID)
	if err != nil {
		return err
	}
	next, err := filetree.Move(p.FileTree, nodeID, newParentID, index)
	if err != nil {
		return err
	}
	p.FileTree = next
	return s.persist()
}

// RenameTreeNode renames a node in place.
func (s *Store) RenameTreeNode(projectID, nodeID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.resolveWrite(projectID)
	if err != nil {
		return err
	}
	if err := filetree.Rename(p.FileTree, nodeID, name); err != nil {
		return err
	}
	return s.persist()
}

// RemoveTreeNode removes a node. Protected files are refused.
func (s *Store) RemoveTreeNode(projectID, nodeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.resolveWrite(projectID)
	if err != nil {
		return err
	}
	next, err := filetree.RemoveByID(p.FileTree, nodeID)
	if err != nil {
		return err
	}
	p.FileTree = next
	return s.persist()
}

// SyncTree heals a project's file tree against its current resources.
func (s *Store) SyncTree(projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.resolveWrite(projectID)
	if err != nil {
		return err
	}
	resources.SyncToFileTree(p)
	return s.persist()
}

// ListTreeFolders lists every folder of a project with its path.
func (s *Store) ListTreeFolders(projectID string) ([]filetree.FolderEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.resolveRead(projectID)
	if err != nil {
		return nil, err
	}
	return filetree.ListFolders(p.FileTree), nil
}

// resolveRead returns the project behind an id without materializing
// anything. Reserved ids fall back from override to derived seed view.
func (s *Store) resolveRead(id string) (*models.Project, error) {
	if models.IsTemplateKind(id) {
		kind := models.TemplateKind(id)
		if ov := s.overrides[kind]; ov != nil {
			return ov, nil
		}
		return s.templateView(kind), nil
	}
	if p := s.findProject(id); p != nil {
		return p, nil
	}
	return nil, ErrProjectNotFound
}

// resolveWrite returns the mutable storage slot behind an id. The first
// write to a pristine template kind materializes its editable override.
func (s *Store) resolveWrite(id string) (*models.Project, error) {
	if models.IsTemplateKind(id) {
		kind := models.TemplateKind(id)
		if ov := s.overrides[kind]; ov != nil {
			return ov, nil
		}
		ov := s.materializeOverride(kind)
		s.overrides[kind] = ov
		return ov, nil
	}
	if p := s.findProject(id); p != nil {
		return p, nil
	}
	return nil, ErrProjectNotFound
}

// materializeOverride deep-copies the current seed into a persisted
// editable override keyed by the reserved template id.
func (s *Store) materializeOverride(kind models.TemplateKind) *models.Project {
	src := s.seeds.Load(kind)
	ov := &models.Project{
		ID:          string(kind),
		Name:        src.Name,
		Kind:        models.KindEditableTemplate,
		Description: src.Description,
		CoverImage:  src.CoverImage,
		CreatedAt:   time.Now(),
	}
	copyContentInto(ov, src)
	if meta := s.metas[kind]; meta != nil {
		if meta.Name != "" {
			ov.Name = meta.Name
		}
		if meta.Description != "" {
			ov.Description = meta.Description
		}
		if meta.CoverImage != "" {
			ov.CoverImage = meta.CoverImage
		}
	}
	return ov
}

// templateView returns the derived read-only view of a pristine system
// template: the seed with any meta override applied, memoized until the
// override changes.
func (s *Store) templateView(kind models.TemplateKind) *models.Project {
	meta := s.metas[kind]
	key := viewKey(meta)
	if v := s.views.get(kind, key); v != nil {
		return v
	}
	view := cloneForView(s.seeds.Load(kind))
	if meta != nil {
		if meta.Name != "" {
			view.Name = meta.Name
		}
		if meta.Description != "" {
			view.Description = meta.Description
		}
		if meta.CoverImage != "" {
			view.CoverImage = meta.CoverImage
		}
	}
	s.views.put(kind, key, view)
	return view
}

func (s *Store) findProject(id string) *models.Project {
	for _, p := range s.projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// persist rewrites the state blob. A refused empty overwrite is logged
// and tolerated: the in-memory state stays authoritative and the next
// non-empty write converges.
func (s *Store) persist() error {
	st := &models.PersistedState{Projects: s.projects}
	if len(s.overrides) > 0 {
		st.EditableTemplates = s.overrides
	}
	if len(s.metas) > 0 {
		st.SystemTemplateMetaOverride = s.metas
	}
	err := s.state.Save(st)
	if errors.Is(err, storage.ErrEmptyOverwrite) {
		log.Printf("guide: state write skipped: %v", err)
		return nil
	}
	switch {
	case err == nil:
		metrics.StateWritesTotal.WithLabelValues("ok").Inc()
	case errors.Is(err, storage.ErrQuotaExceeded):
		metrics.StateWritesTotal.WithLabelValues("quota").Inc()
	default:
		metrics.StateWritesTotal.WithLabelValues("error").Inc()
	}
	s.updateProjectGauge()
	return err
}

// updateProjectGauge refreshes the per-kind project count gauge.
func (s *Store) updateProjectGauge() {
	counts := make(map[models.ProjectKind]int)
	for _, p := range s.projects {
		counts[p.Kind]++
	}
	for _, kind := range []models.ProjectKind{models.KindUserProject, models.KindUserTemplate, models.KindEditableTemplate} {
		metrics.ProjectsTotal.WithLabelValues(string(kind)).Set(float64(counts[kind]))
	}
}
