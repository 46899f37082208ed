// Package resources manages a project's shared files and assets and
// keeps them mirrored into the project's virtual file tree.
package resources

import (
	"errors"
	"strings"

	"github.com/good-yellow-bee/liveguide/internal/filetree"
	"github.com/good-yellow-bee/liveguide/internal/models"
)

var (
	// ErrNotFound reports an unknown file or asset id.
	ErrNotFound = errors.New("resources: not found")
	// ErrDerivedReadOnly reports an edit aimed at a component-derived
	// file (component.css / component.js). Those are rendered from
	// component data and must be changed through component mutation.
	ErrDerivedReadOnly = errors.New("resources: derived file is read-only")
)

// derivedPrefix/suffix form the naming convention of per-component
// generated artifacts. They are recomputed on demand and never stored.
const (
	derivedPrefix = "c-"
	derivedSuffix = ".html"
)

// DerivedArtifactName returns the file name of the generated markup
// artifact for a component id.
func DerivedArtifactName(componentID string) string {
	return derivedPrefix + componentID + derivedSuffix
}

// IsDerivedArtifact reports whether a file name matches the generated
// per-component artifact convention.
func IsDerivedArtifact(name string) bool {
	return strings.HasPrefix(name, derivedPrefix) && strings.HasSuffix(name, derivedSuffix) &&
		len(name) > len(derivedPrefix)+len(derivedSuffix)
}

// isDerivedCommonFile reports whether a common file is one of the two
// files rendered from component data.
func isDerivedCommonFile(f *models.CommonFile) bool {
	return (f.Name == "component.css" && f.Kind == models.CommonFileCSS) ||
		(f.Name == "component.js" && f.Kind == models.CommonFileJS)
}

// folderForKind maps a common-file kind to its conventional folder.
func folderForKind(kind models.CommonFileKind) string {
	switch kind {
	case models.CommonFileCSS:
		return "css"
	case models.CommonFileJS:
		return "js"
	default:
		return "components"
	}
}

// AddCommonFile appends a common file and mirrors it into the file
// tree. HTML files introduce the components folder lazily.
func AddCommonFile(p *models.Project, name, content string, kind models.CommonFileKind) *models.CommonFile {
	f := models.NewCommonFile(name, content, kind)
	p.CommonFiles = append(p.CommonFiles, f)
	if kind == models.CommonFileHTML {
		p.FileTree = filetree.EnsureFolderUnderRoot(p.FileTree, "components")
	}
	p.FileTree = filetree.EnsureFileUnderFolder(p.FileTree, folderForKind(kind), name)
	return f
}

// UpdateCommonFile replaces a common file's name and/or content.
// Derived files are rejected.
func UpdateCommonFile(p *models.Project, id string, name, content *string) error {
	for _, f := range p.CommonFiles {
		if f.ID != id {
			continue
		}
		if isDerivedCommonFile(f) {
			return ErrDerivedReadOnly
		}
		if name != nil && *name != "" {
			f.Name = *name
		}
		if content != nil {
			f.Content = *content
		}
		return nil
	}
	return ErrNotFound
}

// RemoveCommonFile removes a common file. Derived files are rejected.
// The mirrored tree node, when present and unprotected, is removed too.
func RemoveCommonFile(p *models.Project, id string) error {
	for i, f := range p.CommonFiles {
		if f.ID != id {
			continue
		}
		if isDerivedCommonFile(f) {
			return ErrDerivedReadOnly
		}
		p.CommonFiles = append(p.CommonFiles[:i], p.CommonFiles[i+1:]...)
		if node := filetree.FindFileInFolder(p.FileTree, folderForKind(f.Kind), f.Name); node != nil {
			if next, err := filetree.RemoveByID(p.FileTree, node.ID); err == nil {
				p.FileTree = next
			}
		}
		return nil
	}
	return ErrNotFound
}

// AddCommonAsset appends an asset and mirrors it into its export folder
// (by id) or the default images folder.
func AddCommonAsset(p *models.Project, name, dataURI, exportFolderID string) *models.CommonAsset {
	a := models.NewCommonAsset(name, dataURI)
	a.ExportFolderID = exportFolderID
	p.CommonAssets = append(p.CommonAssets, a)
	ensureAssetNode(p, a)
	return a
}

func ensureAssetNode(p *models.Project, a *models.CommonAsset) {
	if a.ExportFolderID != "" {
		p.FileTree = filetree.EnsureFileUnderFolderByID(p.FileTree, a.ExportFolderID, a.Name)
		return
	}
	p.FileTree = filetree.EnsureFileUnderFolder(p.FileTree, "img", a.Name)
}

// UpdateCommonAsset replaces an asset's fields. A changed export folder
// is re-mirrored into the tree.
func UpdateCommonAsset(p *models.Project, id string, name, dataURI, exportFolderID *string) error {
	for _, a := range p.CommonAssets {
		if a.ID != id {
			continue
		}
		if name != nil && *name != "" {
			a.Name = *name
		}
		if dataURI != nil {
			a.DataURI = *dataURI
		}
		if exportFolderID != nil {
			a.ExportFolderID = *exportFolderID
		}
		ensureAssetNode(p, a)
		return nil
	}
	return ErrNotFound
}

// RemoveCommonAsset removes an asset and its mirrored tree node.
func RemoveCommonAsset(p *models.Project, id string) error {
	for i, a := range p.CommonAssets {
		if a.ID != id {
			continue
		}
		p.CommonAssets = append(p.CommonAssets[:i], p.CommonAssets[i+1:]...)
		folder := "img"
		if a.ExportFolderID != "" {
			if f := filetree.FindByID(p.FileTree, a.ExportFolderID); f != nil && f.IsFolder() {
				folder = f.Name
			}
		}
		if node := filetree.FindFileInFolder(p.FileTree, folder, a.Name); node != nil {
			if next, err := filetree.RemoveByID(p.FileTree, node.ID); err == nil {
				p.FileTree = next
			}
		}
		return nil
	}
	return ErrNotFound
}

// SyncToFileTree re-applies the ensure operations for every current
// common file and asset, healing a tree that has drifted (for example
// after a structural reset). Component-derived artifacts are skipped:
// they are recomputed on demand and never synced or persisted.
func SyncToFileTree(p *models.Project) {
	for _, f := range p.CommonFiles {
		if IsDerivedArtifact(f.Name) {
			continue
		}
		if f.Kind == models.CommonFileHTML {
			p.FileTree = filetree.EnsureFolderUnderRoot(p.FileTree, "components")
		}
		p.FileTree = filetree.EnsureFileUnderFolder(p.FileTree, folderForKind(f.Kind), f.Name)
	}
	for _, a := range p.CommonAssets {
		if IsDerivedArtifact(a.Name) {
			continue
		}
		ensureAssetNode(p, a)
	}
}

// StripDerived removes every component-derived artifact from the
// project's resource collections and file tree. Persisted copies of
// derived entries are never trusted.
func StripDerived(p *models.Project) {
	files := p.CommonFiles[:0]
	for _, f := range p.CommonFiles {
		if !IsDerivedArtifact(f.Name) {
			files = append(files, f)
		}
	}
	p.CommonFiles = files

	assets := p.CommonAssets[:0]
	for _, a := range p.CommonAssets {
		if !IsDerivedArtifact(a.Name) {
			assets = append(assets, a)
		}
	}
	p.CommonAssets = assets

	p.FileTree = stripDerivedNodes(p.FileTree)
}

func stripDerivedNodes(tree []*models.FileNode) []*models.FileNode {
	out := tree[:0]
	for _, n := range tree {
		if n.Kind == models.NodeKindFile && IsDerivedArtifact(n.Name) {
			continue
		}
		if len(n.Children) > 0 {
			n.Children = stripDerivedNodes(n.Children)
		}
		out = append(out, n)
	}
	return out
}

// PurgeComponentArtifacts removes the generated artifact of a removed
// component from the resource collections and the file tree.
func PurgeComponentArtifacts(p *models.Project, componentID string) {
	name := DerivedArtifactName(componentID)

	files := p.CommonFiles[:0]
	for _, f := range p.CommonFiles {
		if f.Name != name {
			files = append(files, f)
		}
	}
	p.CommonFiles = files

	assets := p.CommonAssets[:0]
	for _, a := range p.CommonAssets {
		if a.Name != name {
			assets = append(assets, a)
		}
	}
	p.CommonAssets = assets

	p.FileTree = removeNodesNamed(p.FileTree, name)
}

func removeNodesNamed(tree []*models.FileNode, name string) []*models.FileNode {
	out := tree[:0]
	for _, n := range tree {
		if n.Kind == models.NodeKindFile && n.Name == name {
			continue
		}
		if len(n.Children) > 0 {
			n.Children = removeNodesNamed(n.Children, name)
		}
		out = append(out, n)
	}
	return out
}

// CloneCommonFiles deep-copies files with fresh ids.
func CloneCommonFiles(files []*models.CommonFile) []*models.CommonFile {
	out := make([]*models.CommonFile, 0, len(files))
	for _, f := range files {
		out = append(out, models.NewCommonFile(f.Name, f.Content, f.Kind))
	}
	return out
}

// CloneCommonAssets deep-copies assets with fresh ids. Export folder
// references are carried as-is; callers re-link them when the target
// tree was cloned too.
func CloneCommonAssets(assets []*models.CommonAsset) []*models.CommonAsset {
	out := make([]*models.CommonAsset, 0, len(assets))
	for _, a := range assets {
		c := models.NewCommonAsset(a.Name, a.DataURI)
		c.ExportFolderID = a.ExportFolderID
		out = append(out, c)
	}
	return out
}
