package guide

import (
	"time"

	"github.com/google/uuid"

	"github.com/good-yellow-bee/liveguide/internal/filetree"
	"github.com/good-yellow-bee/liveguide/internal/models"
	"github.com/good-yellow-bee/liveguide/internal/resources"
)

// copyContentInto deep-copies src's tree, resources, components, and
// categories into dst with fresh ids for every nested entity. Asset
// export-folder references are re-linked into the cloned tree by folder
// name; unresolvable references fall back to the default images folder.
func copyContentInto(dst, src *models.Project) {
	dst.FileTree = filetree.Clone(src.FileTree)
	dst.CommonFiles = resources.CloneCommonFiles(src.CommonFiles)
	dst.CommonAssets = resources.CloneCommonAssets(src.CommonAssets)
	relinkAssetFolders(dst.CommonAssets, src.FileTree, dst.FileTree)
	dst.Components = cloneComponents(src.Components)
	dst.Categories = append([]string(nil), src.Categories...)
	resources.SyncToFileTree(dst)
}

// cloneComponents copies components with fresh ids and timestamps.
func cloneComponents(components []*models.ComponentItem) []*models.ComponentItem {
	now := time.Now()
	out := make([]*models.ComponentItem, 0, len(components))
	for _, c := range components {
		cc := *c
		cc.ID = uuid.NewString()
		cc.CreatedAt = now
		cc.UpdatedAt = now
		out = append(out, &cc)
	}
	models.SortComponents(out)
	return out
}

// relinkAssetFolders rewrites each asset's export folder id from a node
// in srcTree to the same-named folder in dstTree. An id that does not
// resolve to a folder in both trees is cleared.
func relinkAssetFolders(assets []*models.CommonAsset, srcTree, dstTree []*models.FileNode) {
	for _, a := range assets {
		if a.ExportFolderID == "" {
			continue
		}
		src := filetree.FindByID(srcTree, a.ExportFolderID)
		if src == nil || !src.IsFolder() {
			a.ExportFolderID = ""
			continue
		}
		dst := filetree.FolderByName(dstTree, src.Name)
		if dst == nil {
			a.ExportFolderID = ""
			continue
		}
		a.ExportFolderID = dst.ID
	}
}

// cloneForView copies a project preserving every id. Used for derived
// template views, which alias the seed's identity but must not alias
// its mutable slices.
func cloneForView(src *models.Project) *models.Project {
	dst := *src
	dst.Participants = append([]string(nil), src.Participants...)
	dst.Categories = append([]string(nil), src.Categories...)
	dst.FileTree = cloneTreeSameIDs(src.FileTree)

	dst.Components = make([]*models.ComponentItem, 0, len(src.Components))
	for _, c := range src.Components {
		cc := *c
		dst.Components = append(dst.Components, &cc)
	}
	dst.CommonFiles = make([]*models.CommonFile, 0, len(src.CommonFiles))
	for _, f := range src.CommonFiles {
		ff := *f
		dst.CommonFiles = append(dst.CommonFiles, &ff)
	}
	dst.CommonAssets = make([]*models.CommonAsset, 0, len(src.CommonAssets))
	for _, a := range src.CommonAssets {
		aa := *a
		dst.CommonAssets = append(dst.CommonAssets, &aa)
	}
	return &dst
}

func cloneTreeSameIDs(tree []*models.FileNode) []*models.FileNode {
	out := make([]*models.FileNode, 0, len(tree))
	for _, n := range tree {
		c := &models.FileNode{ID: n.ID, Name: n.Name, Kind: n.Kind}
		if n.Children != nil {
			c.Children = cloneTreeSameIDs(n.Children)
		}
		out = append(out, c)
	}
	return out
}
