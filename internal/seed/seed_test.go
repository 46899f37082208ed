package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/good-yellow-bee/liveguide/internal/filetree"
	"github.com/good-yellow-bee/liveguide/internal/models"
)

func TestLoadFallsBackToBuiltin(t *testing.T) {
	l := NewLoader(t.TempDir()) // empty directory, no json files
	p := l.Load(models.TemplateKRDS)
	if p == nil {
		t.Fatal("Load returned nil")
	}
	if p.ID != "krds" || p.Kind != models.KindSystemTemplate {
		t.Errorf("unexpected identity: id=%s kind=%s", p.ID, p.Kind)
	}
	if len(p.Categories) == 0 {
		t.Error("categories must not be empty")
	}
	if len(p.FileTree) == 0 {
		t.Error("file tree must not be empty")
	}
}

func TestLoadCaches(t *testing.T) {
	l := NewLoader("")
	a := l.Load(models.TemplateMXDS)
	b := l.Load(models.TemplateMXDS)
	if a != b {
		t.Error("second load should return the cached project")
	}
	l.Invalidate(models.TemplateMXDS)
	if c := l.Load(models.TemplateMXDS); c == a {
		t.Error("invalidate should force a re-read")
	}
}

func TestLoadFromJSON(t *testing.T) {
	dir := t.TempDir()
	doc := `{
		"name": "KRDS",
		"components": [{"name": "Chip", "category": "Etc", "html": "<span/>"}],
		"common_files": [{"name": "krds.css", "content": "body{}", "kind": "css"}],
		"file_tree": [{"name": "WebContent", "kind": "folder", "children": [
			{"name": "index.html", "kind": "file"}
		]}]
	}`
	if err := os.WriteFile(filepath.Join(dir, "krds.json"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	p := NewLoader(dir).Load(models.TemplateKRDS)
	if len(p.Components) != 1 || p.Components[0].ID == "" {
		t.Fatalf("component ids should be backfilled: %+v", p.Components)
	}
	if p.Components[0].CreatedAt.IsZero() {
		t.Error("component timestamps should be backfilled")
	}
	if len(p.CommonFiles) != 1 || p.CommonFiles[0].ID == "" {
		t.Error("common file ids should be backfilled")
	}
	root := p.FileTree[0]
	if root.ID == "" || root.Children[0].ID == "" {
		t.Error("file node ids should be backfilled")
	}
	if len(p.Categories) == 0 {
		t.Error("categories should default")
	}
}

func TestNormalizeDefaultsTree(t *testing.T) {
	p := Normalize(&models.Project{Name: "X"}, models.TemplateMXDS)
	if filetree.IndexHTMLPath(p.FileTree) != "WebContent/index.html" {
		t.Errorf("default tree expected, got %v", filetree.AllFilePaths(p.FileTree))
	}
}

func TestCanonicalTreeKRDS(t *testing.T) {
	tree := CanonicalTree(models.TemplateKRDS)
	for _, name := range []string{"krds_tokens.css", "krds.css", "krds.min.css"} {
		if filetree.FindFileInFolder(tree, "css", name) == nil {
			t.Errorf("canonical krds tree missing css/%s", name)
		}
	}
	if filetree.FindFileInFolder(tree, "js", "pattern.js") == nil {
		t.Error("canonical krds tree missing js/pattern.js")
	}
}

func TestKindForFile(t *testing.T) {
	tests := []struct {
		path string
		kind models.TemplateKind
		ok   bool
	}{
		{"/data/templates/krds.json", models.TemplateKRDS, true},
		{"/data/templates/mxds.json", models.TemplateMXDS, true},
		{"/data/templates/other.json", "", false},
		{"/data/templates/krds.yaml", "", false},
	}
	for _, tt := range tests {
		kind, ok := kindForFile(tt.path)
		if ok != tt.ok || kind != tt.kind {
			t.Errorf("kindForFile(%q) = (%q, %v), want (%q, %v)", tt.path, kind, ok, tt.kind, tt.ok)
		}
	}
}
