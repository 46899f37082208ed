package filetree

import (
	"strings"

	"github.com/good-yellow-bee/liveguide/internal/models"
)

// Fallback paths used when the conventional node is missing from the
// tree. Export never fails outright on an absent conventional file.
const (
	DefaultCSSPath       = "WebContent/css/component.css"
	DefaultJSPath        = "WebContent/js/component.js"
	DefaultIndexHTMLPath = "WebContent/index.html"
	DefaultImagesPath    = "WebContent/img/"
)

// NodePath returns the full slash-joined path of a node, or "" when the
// node is absent.
func NodePath(tree []*models.FileNode, id string) string {
	segs := PathTo(tree, id)
	if segs == nil {
		return ""
	}
	return strings.Join(segs, "/")
}

// CSSPath resolves the merged stylesheet entry point.
func CSSPath(tree []*models.FileNode) string {
	return resolveFilePath(tree, "component.css", DefaultCSSPath)
}

// JSPath resolves the merged script entry point.
func JSPath(tree []*models.FileNode) string {
	return resolveFilePath(tree, "component.js", DefaultJSPath)
}

// IndexHTMLPath resolves the guide index document.
func IndexHTMLPath(tree []*models.FileNode) string {
	return resolveFilePath(tree, "index.html", DefaultIndexHTMLPath)
}

func resolveFilePath(tree []*models.FileNode, name, fallback string) string {
	node := findByName(tree, name)
	if node == nil {
		return fallback
	}
	if p := NodePath(tree, node.ID); p != "" {
		return p
	}
	return fallback
}

// ImagesPath resolves the images root folder path, trailing slash.
func ImagesPath(tree []*models.FileNode) string {
	node := findByName(tree, "img")
	if node == nil || !node.IsFolder() {
		return DefaultImagesPath
	}
	if p := NodePath(tree, node.ID); p != "" {
		return p + "/"
	}
	return DefaultImagesPath
}

// FolderPath resolves a folder node's path (trailing slash). A missing
// or non-folder node falls back to the images root.
func FolderPath(tree []*models.FileNode, folderID string) string {
	node := FindByID(tree, folderID)
	if node == nil || !node.IsFolder() {
		return ImagesPath(tree)
	}
	if p := NodePath(tree, node.ID); p != "" {
		return p + "/"
	}
	return ImagesPath(tree)
}
