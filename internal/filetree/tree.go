// Package filetree implements the virtual file-tree engine: lookup,
// path resolution, protected-node checks, ancestor-safe moves, and
// idempotent ensure operations. Trees are forests of FileNode; the
// operations return the (possibly re-rooted) forest alongside any
// rejection.
package filetree

import (
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/good-yellow-bee/liveguide/internal/models"
)

var (
	// ErrNodeNotFound reports a lookup or move target that does not exist.
	ErrNodeNotFound = errors.New("filetree: node not found")
	// ErrProtected reports an attempt to remove a protected file.
	ErrProtected = errors.New("filetree: node is protected")
	// ErrCyclicMove reports a move of a node into itself or a descendant.
	ErrCyclicMove = errors.New("filetree: cannot move node into itself or its descendant")
	// ErrNotFolder reports a folder-only operation aimed at a file.
	ErrNotFolder = errors.New("filetree: target is not a folder")
)

// DefaultTree builds the default project layout:
//
//	WebContent/
//	 ├ css/component.css
//	 ├ js/component.js
//	 ├ img/
//	 ├ components/
//	 └ index.html
func DefaultTree() []*models.FileNode {
	return []*models.FileNode{
		folder("WebContent",
			folder("css", file("component.css")),
			folder("js", file("component.js")),
			folder("img"),
			folder("components"),
			file("index.html"),
		),
	}
}

func folder(name string, children ...*models.FileNode) *models.FileNode {
	if children == nil {
		children = []*models.FileNode{}
	}
	return &models.FileNode{ID: uuid.NewString(), Name: name, Kind: models.NodeKindFolder, Children: children}
}

func file(name string) *models.FileNode {
	return &models.FileNode{ID: uuid.NewString(), Name: name, Kind: models.NodeKindFile}
}

// NewFolder creates a detached folder node.
func NewFolder(name string) *models.FileNode { return folder(name) }

// NewFile creates a detached file node.
func NewFile(name string) *models.FileNode { return file(name) }

// FindByID returns the node with the given id, or nil.
func FindByID(tree []*models.FileNode, id string) *models.FileNode {
	for _, n := range tree {
		if n.ID == id {
			return n
		}
		if len(n.Children) > 0 {
			if found := FindByID(n.Children, id); found != nil {
				return found
			}
		}
	}
	return nil
}

// findByName returns the first node with the given name, depth-first.
func findByName(tree []*models.FileNode, name string) *models.FileNode {
	for _, n := range tree {
		if n.Name == name {
			return n
		}
		if len(n.Children) > 0 {
			if found := findByName(n.Children, name); found != nil {
				return found
			}
		}
	}
	return nil
}

// FolderByName returns the first folder with the given name, or nil.
func FolderByName(tree []*models.FileNode, name string) *models.FileNode {
	for _, n := range tree {
		if n.IsFolder() && n.Name == name {
			return n
		}
		if len(n.Children) > 0 {
			if found := FolderByName(n.Children, name); found != nil {
				return found
			}
		}
	}
	return nil
}

// PathTo returns the name segments from the root to the node, or nil
// when the node is absent.
func PathTo(tree []*models.FileNode, id string) []string {
	return pathTo(tree, id, nil)
}

func pathTo(tree []*models.FileNode, id string, prefix []string) []string {
	for _, n := range tree {
		path := append(append([]string(nil), prefix...), n.Name)
		if n.ID == id {
			return path
		}
		if len(n.Children) > 0 {
			if found := pathTo(n.Children, id, path); found != nil {
				return found
			}
		}
	}
	return nil
}

// IsProtected reports whether the node is a file whose name is in the
// protected set. Protected files may never be removed.
func IsProtected(n *models.FileNode) bool {
	return n != nil && n.Kind == models.NodeKindFile && models.IsProtectedFileName(n.Name)
}

// IsAncestorOrSelf reports whether nodeID is descendantID or one of its
// ancestors. Used to guard moves only.
func IsAncestorOrSelf(tree []*models.FileNode, nodeID, descendantID string) bool {
	if nodeID == descendantID {
		return true
	}
	n := FindByID(tree, nodeID)
	if n == nil {
		return false
	}
	return FindByID(n.Children, descendantID) != nil
}

// detach removes the node with the given id and returns the new forest
// plus the detached node (nil when absent).
func detach(tree []*models.FileNode, id string) ([]*models.FileNode, *models.FileNode) {
	for i, n := range tree {
		if n.ID == id {
			next := append(append([]*models.FileNode(nil), tree[:i]...), tree[i+1:]...)
			return next, n
		}
		if len(n.Children) > 0 {
			if children, node := detach(n.Children, id); node != nil {
				n.Children = children
				return tree, node
			}
		}
	}
	return tree, nil
}

// insert places node under parentID (nil parent means the root level)
// at the given index, clamped into [0, len(children)].
func insert(tree []*models.FileNode, node *models.FileNode, parentID string, index int) []*models.FileNode {
	if parentID == "" {
		return insertAt(tree, node, index)
	}
	for _, n := range tree {
		if n.ID == parentID {
			n.Children = insertAt(n.Children, node, index)
			return tree
		}
		if len(n.Children) > 0 {
			n.Children = insert(n.Children, node, parentID, index)
		}
	}
	return tree
}

func insertAt(list []*models.FileNode, node *models.FileNode, index int) []*models.FileNode {
	if index < 0 {
		index = 0
	}
	if index > len(list) {
		index = len(list)
	}
	list = append(list, nil)
	copy(list[index+1:], list[index:])
	list[index] = node
	return list
}

// Move relocates a node under a new parent ("" means root level) at the
// given sibling index. Rejected when the node is missing, the parent is
// missing or not a folder, or the move would place a node inside itself
// or one of its descendants. Implemented as detach-then-insert.
func Move(tree []*models.FileNode, nodeID, newParentID string, index int) ([]*models.FileNode, error) {
	if FindByID(tree, nodeID) == nil {
		return tree, ErrNodeNotFound
	}
	if newParentID != "" {
		parent := FindByID(tree, newParentID)
		if parent == nil {
			return tree, ErrNodeNotFound
		}
		if !parent.IsFolder() {
			return tree, ErrNotFolder
		}
		if IsAncestorOrSelf(tree, nodeID, newParentID) {
			return tree, ErrCyclicMove
		}
	}
	next, node := detach(tree, nodeID)
	if node == nil {
		return tree, ErrNodeNotFound
	}
	return insert(next, node, newParentID, index), nil
}

// RemoveByID removes a node. Removal of a protected file is refused and
// the tree is returned unchanged.
func RemoveByID(tree []*models.FileNode, id string) ([]*models.FileNode, error) {
	node := FindByID(tree, id)
	if node == nil {
		return tree, ErrNodeNotFound
	}
	if IsProtected(node) {
		return tree, ErrProtected
	}
	next, _ := detach(tree, id)
	return next, nil
}

// Rename updates a node's name in place. Duplicate sibling names are
// tolerated but break name-based path lookups, so they only warn.
func Rename(tree []*models.FileNode, id, name string) error {
	node := FindByID(tree, id)
	if node == nil {
		return ErrNodeNotFound
	}
	if parent := parentOf(tree, id); parent != nil {
		for _, sib := range parent.Children {
			if sib.ID != id && sib.Name == name {
				log.Printf("filetree: duplicate sibling name %q; path lookups may resolve the wrong node", name)
			}
		}
	}
	node.Name = name
	return nil
}

func parentOf(tree []*models.FileNode, id string) *models.FileNode {
	for _, n := range tree {
		for _, c := range n.Children {
			if c.ID == id {
				return n
			}
		}
		if len(n.Children) > 0 {
			if found := parentOf(n.Children, id); found != nil {
				return found
			}
		}
	}
	return nil
}

// ParentAndIndex returns the parent id ("" for root level) and sibling
// index of a node, or ok=false when absent.
func ParentAndIndex(tree []*models.FileNode, id string) (parentID string, index int, ok bool) {
	for i, n := range tree {
		if n.ID == id {
			return "", i, true
		}
	}
	return parentAndIndexIn(tree, id)
}

func parentAndIndexIn(tree []*models.FileNode, id string) (string, int, bool) {
	for _, n := range tree {
		for i, c := range n.Children {
			if c.ID == id {
				return n.ID, i, true
			}
		}
		if len(n.Children) > 0 {
			if p, i, ok := parentAndIndexIn(n.Children, id); ok {
				return p, i, ok
			}
		}
	}
	return "", 0, false
}

// AddNode appends a detached node under parentID ("" for root level).
func AddNode(tree []*models.FileNode, parentID string, node *models.FileNode) ([]*models.FileNode, error) {
	if parentID == "" {
		return append(tree, node), nil
	}
	parent := FindByID(tree, parentID)
	if parent == nil {
		return tree, ErrNodeNotFound
	}
	if !parent.IsFolder() {
		return tree, ErrNotFolder
	}
	parent.Children = append(parent.Children, node)
	return tree, nil
}

// FindFileInFolder returns the file named fileName directly under the
// first folder named folderName, or nil.
func FindFileInFolder(tree []*models.FileNode, folderName, fileName string) *models.FileNode {
	f := FolderByName(tree, folderName)
	if f == nil {
		return nil
	}
	for _, c := range f.Children {
		if c.Kind == models.NodeKindFile && c.Name == fileName {
			return c
		}
	}
	return nil
}

// EnsureFileUnderFolder idempotently creates a file named fileName
// directly under the first folder named folderName. A missing folder is
// a no-op: the tree is the caller's source of truth for structure.
func EnsureFileUnderFolder(tree []*models.FileNode, folderName, fileName string) []*models.FileNode {
	f := FolderByName(tree, folderName)
	if f == nil {
		return tree
	}
	for _, c := range f.Children {
		if c.Kind == models.NodeKindFile && c.Name == fileName {
			return tree
		}
	}
	f.Children = append(f.Children, file(fileName))
	return tree
}

// EnsureFileUnderFolderByID is EnsureFileUnderFolder keyed by folder id.
// A missing or non-folder target is a no-op.
func EnsureFileUnderFolderByID(tree []*models.FileNode, folderID, fileName string) []*models.FileNode {
	f := FindByID(tree, folderID)
	if f == nil || !f.IsFolder() {
		return tree
	}
	for _, c := range f.Children {
		if c.Kind == models.NodeKindFile && c.Name == fileName {
			return tree
		}
	}
	f.Children = append(f.Children, file(fileName))
	return tree
}

// EnsureFolderUnderRoot idempotently creates a top-level folder under
// the first root folder. Used to lazily introduce the components folder
// when HTML common files first appear.
func EnsureFolderUnderRoot(tree []*models.FileNode, folderName string) []*models.FileNode {
	if FolderByName(tree, folderName) != nil {
		return tree
	}
	if len(tree) == 0 || !tree[0].IsFolder() {
		return tree
	}
	tree[0].Children = append(tree[0].Children, folder(folderName))
	return tree
}

// Clone deep-copies a forest, assigning fresh ids to every node.
func Clone(tree []*models.FileNode) []*models.FileNode {
	out := make([]*models.FileNode, 0, len(tree))
	for _, n := range tree {
		c := &models.FileNode{ID: uuid.NewString(), Name: n.Name, Kind: n.Kind}
		if n.Children != nil {
			c.Children = Clone(n.Children)
		}
		out = append(out, c)
	}
	return out
}

// FolderEntry describes one folder for resource-placement pickers.
type FolderEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"` // trailing slash
}

// ListFolders returns every folder in the forest with its full path.
func ListFolders(tree []*models.FileNode) []FolderEntry {
	return listFolders(tree, nil)
}

func listFolders(tree []*models.FileNode, prefix []string) []FolderEntry {
	var out []FolderEntry
	for _, n := range tree {
		path := append(append([]string(nil), prefix...), n.Name)
		if n.IsFolder() {
			out = append(out, FolderEntry{ID: n.ID, Name: n.Name, Path: joinPath(path) + "/"})
			if len(n.Children) > 0 {
				out = append(out, listFolders(n.Children, path)...)
			}
		}
	}
	return out
}

// AllFilePaths returns the full path of every file node in the forest.
func AllFilePaths(tree []*models.FileNode) []string {
	return allFilePaths(tree, nil)
}

func allFilePaths(tree []*models.FileNode, prefix []string) []string {
	var out []string
	for _, n := range tree {
		path := append(append([]string(nil), prefix...), n.Name)
		if n.Kind == models.NodeKindFile {
			out = append(out, joinPath(path))
		}
		if len(n.Children) > 0 {
			out = append(out, allFilePaths(n.Children, path)...)
		}
	}
	return out
}

func joinPath(segs []string) string {
	out := ""
	for i, s := range segs {
		if i > 0 {
			out += "/"
		}
		out += s
	}
	return out
}
