package models

// NodeKind represents the kind of a file-tree node.
type NodeKind string

const (
	NodeKindFolder NodeKind = "folder"
	NodeKindFile   NodeKind = "file"
)

// FileNode is one node of a project's virtual file tree. The tree has
// no backing filesystem; names become real paths only at export time.
type FileNode struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Kind     NodeKind    `json:"kind"`
	Children []*FileNode `json:"children,omitempty"` // folders only
}

// IsFolder returns true if the node is a folder.
func (n *FileNode) IsFolder() bool {
	return n.Kind == NodeKindFolder
}

// ProtectedFileNames are file names that may never be removed from a
// tree, wherever they sit.
var ProtectedFileNames = []string{"component.css", "component.js", "index.html"}

// IsProtectedFileName reports whether name is in the protected set.
func IsProtectedFileName(name string) bool {
	for _, p := range ProtectedFileNames {
		if name == p {
			return true
		}
	}
	return false
}

// ParseNodeKind converts a string to NodeKind.
func ParseNodeKind(s string) NodeKind {
	switch s {
	case "folder":
		return NodeKindFolder
	case "file":
		return NodeKindFile
	default:
		return NodeKindFile
	}
}
