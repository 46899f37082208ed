package filetree

import (
	"testing"

	"github.com/good-yellow-bee/liveguide/internal/models"
)

func TestResolvePathsDefaultTree(t *testing.T) {
	tree := DefaultTree()
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"css", CSSPath(tree), "WebContent/css/component.css"},
		{"js", JSPath(tree), "WebContent/js/component.js"},
		{"index", IndexHTMLPath(tree), "WebContent/index.html"},
		{"images", ImagesPath(tree), "WebContent/img/"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s path = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestResolvePathsFallback(t *testing.T) {
	// A tree with none of the conventional nodes resolves to the
	// documented defaults instead of failing.
	tree := []*models.FileNode{NewFolder("src")}
	if got := CSSPath(tree); got != DefaultCSSPath {
		t.Errorf("CSSPath = %q, want %q", got, DefaultCSSPath)
	}
	if got := JSPath(tree); got != DefaultJSPath {
		t.Errorf("JSPath = %q, want %q", got, DefaultJSPath)
	}
	if got := IndexHTMLPath(tree); got != DefaultIndexHTMLPath {
		t.Errorf("IndexHTMLPath = %q, want %q", got, DefaultIndexHTMLPath)
	}
	if got := ImagesPath(tree); got != DefaultImagesPath {
		t.Errorf("ImagesPath = %q, want %q", got, DefaultImagesPath)
	}
	if got := ImagesPath(nil); got != DefaultImagesPath {
		t.Errorf("ImagesPath(nil) = %q, want %q", got, DefaultImagesPath)
	}
}

func TestFolderPath(t *testing.T) {
	tree := DefaultTree()
	img := FolderByName(tree, "img")
	if got := FolderPath(tree, img.ID); got != "WebContent/img/" {
		t.Errorf("FolderPath = %q", got)
	}
	// Missing or non-folder ids fall back to the images root.
	if got := FolderPath(tree, "missing"); got != "WebContent/img/" {
		t.Errorf("FolderPath(missing) = %q", got)
	}
	cssFile := FindFileInFolder(tree, "css", "component.css")
	if got := FolderPath(tree, cssFile.ID); got != "WebContent/img/" {
		t.Errorf("FolderPath(file) = %q", got)
	}
}
