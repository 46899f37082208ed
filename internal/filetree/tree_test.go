package filetree

import (
	"errors"
	"testing"

	"github.com/good-yellow-bee/liveguide/internal/models"
)

func findByPath(t *testing.T, tree []*models.FileNode, names ...string) *models.FileNode {
	t.Helper()
	list := tree
	var node *models.FileNode
	for _, name := range names {
		node = nil
		for _, n := range list {
			if n.Name == name {
				node = n
				break
			}
		}
		if node == nil {
			t.Fatalf("node %q not found", name)
		}
		list = node.Children
	}
	return node
}

func TestDefaultTree(t *testing.T) {
	tree := DefaultTree()
	if len(tree) != 1 || tree[0].Name != "WebContent" {
		t.Fatalf("expected single WebContent root, got %+v", tree)
	}
	for _, want := range []string{"css", "js", "img", "components"} {
		if FolderByName(tree, want) == nil {
			t.Errorf("missing default folder %q", want)
		}
	}
	if FindFileInFolder(tree, "css", "component.css") == nil {
		t.Error("missing css/component.css")
	}
	if FindFileInFolder(tree, "js", "component.js") == nil {
		t.Error("missing js/component.js")
	}
}

func TestPathTo(t *testing.T) {
	tree := DefaultTree()
	css := FindFileInFolder(tree, "css", "component.css")
	got := PathTo(tree, css.ID)
	want := []string{"WebContent", "css", "component.css"}
	if len(got) != len(want) {
		t.Fatalf("PathTo = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("PathTo = %v, want %v", got, want)
		}
	}
	if PathTo(tree, "missing") != nil {
		t.Error("PathTo should return nil for unknown id")
	}
}

func TestRemoveProtected(t *testing.T) {
	tree := DefaultTree()
	before := len(AllFilePaths(tree))

	for _, name := range models.ProtectedFileNames {
		node := findByName(tree, name)
		if node == nil {
			t.Fatalf("protected file %q missing from default tree", name)
		}
		next, err := RemoveByID(tree, node.ID)
		if !errors.Is(err, ErrProtected) {
			t.Errorf("remove %q: err = %v, want ErrProtected", name, err)
		}
		if len(AllFilePaths(next)) != before {
			t.Errorf("remove %q changed the tree", name)
		}
	}
}

func TestRemoveRegularFile(t *testing.T) {
	tree := DefaultTree()
	tree = EnsureFileUnderFolder(tree, "css", "reset.css")
	node := FindFileInFolder(tree, "css", "reset.css")

	next, err := RemoveByID(tree, node.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if FindFileInFolder(next, "css", "reset.css") != nil {
		t.Error("reset.css should be gone")
	}

	if _, err := RemoveByID(next, "missing"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("err = %v, want ErrNodeNotFound", err)
	}
}

func TestMoveCycleSafety(t *testing.T) {
	tree := DefaultTree()
	root := tree[0]
	css := FolderByName(tree, "css")

	tests := []struct {
		name   string
		nodeID string
		parent string
	}{
		{"into self", root.ID, root.ID},
		{"into child", root.ID, css.ID},
		{"folder into own file sibling? no: folder into itself", css.ID, css.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Move(tree, tt.nodeID, tt.parent, 0); !errors.Is(err, ErrCyclicMove) {
				t.Errorf("Move(%s -> %s): err = %v, want ErrCyclicMove", tt.nodeID, tt.parent, err)
			}
		})
	}
}

func TestMove(t *testing.T) {
	tree := DefaultTree()
	css := FolderByName(tree, "css")
	img := FolderByName(tree, "img")
	cssFile := FindFileInFolder(tree, "css", "component.css")

	next, err := Move(tree, cssFile.ID, img.ID, 0)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if FindFileInFolder(next, "img", "component.css") == nil {
		t.Error("component.css should be under img")
	}
	if FindFileInFolder(next, "css", "component.css") != nil {
		t.Error("component.css should be gone from css")
	}

	// Index is clamped into [0, len(children)].
	if _, err := Move(next, cssFile.ID, css.ID, 99); err != nil {
		t.Fatalf("move with large index: %v", err)
	}

	if _, err := Move(next, "missing", img.ID, 0); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("err = %v, want ErrNodeNotFound", err)
	}
	if _, err := Move(next, css.ID, cssFile.ID, 0); !errors.Is(err, ErrNotFolder) {
		t.Errorf("err = %v, want ErrNotFolder", err)
	}
}

func TestMoveToRoot(t *testing.T) {
	tree := DefaultTree()
	img := FolderByName(tree, "img")

	next, err := Move(tree, img.ID, "", 0)
	if err != nil {
		t.Fatalf("move to root: %v", err)
	}
	if next[0].ID != img.ID {
		t.Errorf("img should be first root node")
	}
	parentID, idx, ok := ParentAndIndex(next, img.ID)
	if !ok || parentID != "" || idx != 0 {
		t.Errorf("ParentAndIndex = (%q, %d, %v), want (\"\", 0, true)", parentID, idx, ok)
	}
}

func TestEnsureFileUnderFolderIdempotent(t *testing.T) {
	tree := DefaultTree()
	once := EnsureFileUnderFolder(tree, "css", "reset.css")
	twice := EnsureFileUnderFolder(once, "css", "reset.css")

	css := FolderByName(twice, "css")
	count := 0
	for _, c := range css.Children {
		if c.Name == "reset.css" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("reset.css count = %d, want 1", count)
	}

	// Unknown folder is a no-op.
	before := len(AllFilePaths(twice))
	after := EnsureFileUnderFolder(twice, "nope", "x.css")
	if len(AllFilePaths(after)) != before {
		t.Error("ensure under missing folder should not change the tree")
	}
}

func TestEnsureFolderUnderRoot(t *testing.T) {
	tree := DefaultTree()
	_, removed := func() ([]*models.FileNode, *models.FileNode) {
		comp := FolderByName(tree, "components")
		next, err := RemoveByID(tree, comp.ID)
		if err != nil {
			t.Fatalf("remove components: %v", err)
		}
		return next, comp
	}()
	_ = removed

	tree = EnsureFolderUnderRoot(tree, "components")
	if FolderByName(tree, "components") == nil {
		t.Fatal("components folder should exist")
	}
	n := len(tree[0].Children)
	tree = EnsureFolderUnderRoot(tree, "components")
	if len(tree[0].Children) != n {
		t.Error("second ensure should be a no-op")
	}
}

func TestClone(t *testing.T) {
	tree := DefaultTree()
	cp := Clone(tree)
	if len(cp) != len(tree) {
		t.Fatal("clone length mismatch")
	}
	if cp[0].ID == tree[0].ID {
		t.Error("clone should have fresh ids")
	}
	if cp[0].Name != tree[0].Name || len(cp[0].Children) != len(tree[0].Children) {
		t.Error("clone should preserve structure")
	}
	cp[0].Children = nil
	if len(tree[0].Children) == 0 {
		t.Error("clone should not share child slices")
	}
}

func TestListFolders(t *testing.T) {
	tree := DefaultTree()
	folders := ListFolders(tree)
	paths := map[string]bool{}
	for _, f := range folders {
		paths[f.Path] = true
	}
	for _, want := range []string{"WebContent/", "WebContent/css/", "WebContent/img/"} {
		if !paths[want] {
			t.Errorf("missing folder path %q", want)
		}
	}
}
