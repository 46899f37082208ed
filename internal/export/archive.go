package export

import (
	"io"
	"log"
	"path"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/good-yellow-bee/liveguide/internal/filetree"
	"github.com/good-yellow-bee/liveguide/internal/models"
	"github.com/good-yellow-bee/liveguide/internal/resources"
)

// Fixed default paths of the flat download mode, used when no
// tree-based resolution is requested.
const (
	FlatCSSPath    = "assets/css/component.css"
	FlatJSPath     = "assets/js/component.js"
	FlatImagesPath = "assets/images/"
)

// Files renders the flat download set: the fully merged stylesheet and
// script, the index document, and each asset, laid out under the fixed
// default paths regardless of the project's file tree.
func Files(p *models.Project) map[string][]byte {
	rendered := RenderedCommonFiles(p)

	assetPaths := make(map[string]string, len(p.CommonAssets))
	out := make(map[string][]byte)
	for _, a := range p.CommonAssets {
		name := AssetFileName(a)
		assetPaths[a.Name] = FlatImagesPath + name
		out[FlatImagesPath+name] = assetBytes(a)
	}

	css := mergeRendered(rendered, models.CommonFileCSS)
	js := mergeRendered(rendered, models.CommonFileJS)
	out[FlatCSSPath] = []byte(RewriteCSSAssetRefs(css, assetPaths))
	out[FlatJSPath] = []byte(RewriteJSAssetRefs(js, assetPaths))
	out["index.html"] = []byte(BuildIndexHTML(p, []string{FlatCSSPath}, []string{FlatJSPath}, assetPaths))
	return out
}

// mergeRendered concatenates rendered common files of one kind with the
// derived entry last, mirroring the preview's merge ordering.
func mergeRendered(files []*models.CommonFile, kind models.CommonFileKind) string {
	derived := "component.css"
	if kind == models.CommonFileJS {
		derived = "component.js"
	}
	var head, tail []string
	for _, f := range files {
		if f.Kind != kind {
			continue
		}
		content := strings.TrimSpace(f.Content)
		if content == "" {
			continue
		}
		if f.Name == derived {
			tail = append(tail, content)
			continue
		}
		head = append(head, content)
	}
	return strings.Join(append(head, tail...), "\n\n")
}

// Archive resolves every artifact against the project's file tree and
// returns a path→content map relative to the directory containing
// index.html. Asset references in CSS/JS/HTML are rewritten to these
// relative paths, the opposite direction of the preview's inlining.
func Archive(p *models.Project) map[string][]byte {
	tree := p.FileTree
	indexDir := path.Dir(filetree.IndexHTMLPath(tree))
	rel := func(target string) string { return relativeTo(indexDir, target) }

	assetPaths := make(map[string]string, len(p.CommonAssets))
	out := make(map[string][]byte)
	for _, a := range p.CommonAssets {
		folder := filetree.ImagesPath(tree)
		if a.ExportFolderID != "" {
			folder = filetree.FolderPath(tree, a.ExportFolderID)
		}
		target := rel(folder + AssetFileName(a))
		assetPaths[a.Name] = target
		out[target] = assetBytes(a)
	}

	cssPath := rel(filetree.CSSPath(tree))
	jsPath := rel(filetree.JSPath(tree))
	out[cssPath] = []byte(RewriteCSSAssetRefs(MergedComponentCSS(p), assetPaths))
	out[jsPath] = []byte(RewriteJSAssetRefs(MergedComponentJS(p), assetPaths))

	cssRefs := []string{}
	jsRefs := []string{}
	for _, f := range p.CommonFiles {
		if resources.IsDerivedArtifact(f.Name) ||
			(f.Name == "component.css" && f.Kind == models.CommonFileCSS) ||
			(f.Name == "component.js" && f.Kind == models.CommonFileJS) {
			continue
		}
		target := rel(commonFilePath(tree, f))
		switch f.Kind {
		case models.CommonFileCSS:
			out[target] = []byte(RewriteCSSAssetRefs(f.Content, assetPaths))
			cssRefs = append(cssRefs, target)
		case models.CommonFileJS:
			out[target] = []byte(RewriteJSAssetRefs(f.Content, assetPaths))
			jsRefs = append(jsRefs, target)
		default:
			out[target] = []byte(f.Content)
		}
	}
	// The derived layers load last, matching the merge ordering.
	cssRefs = append(cssRefs, cssPath)
	jsRefs = append(jsRefs, jsPath)

	indexName := path.Base(filetree.IndexHTMLPath(tree))
	out[indexName] = []byte(BuildIndexHTML(p, cssRefs, jsRefs, assetPaths))
	return out
}

// commonFilePath resolves a common file's tree path, falling back to
// its conventional folder when the mirrored node is missing.
func commonFilePath(tree []*models.FileNode, f *models.CommonFile) string {
	folder := "components"
	fallback := path.Dir(filetree.DefaultIndexHTMLPath) + "/components/" + f.Name
	switch f.Kind {
	case models.CommonFileCSS:
		folder = "css"
		fallback = path.Dir(filetree.DefaultCSSPath) + "/" + f.Name
	case models.CommonFileJS:
		folder = "js"
		fallback = path.Dir(filetree.DefaultJSPath) + "/" + f.Name
	}
	node := filetree.FindFileInFolder(tree, folder, f.Name)
	if node == nil {
		return fallback
	}
	if p := filetree.NodePath(tree, node.ID); p != "" {
		return p
	}
	return fallback
}

// assetBytes decodes an asset's payload, falling back to the raw URI
// bytes when the payload is unparseable.
func assetBytes(a *models.CommonAsset) []byte {
	b, ok := dataURIToBytes(a.DataURI)
	if !ok {
		log.Printf("export: asset %q has an unparseable data URI; exporting raw", a.Name)
		return []byte(a.DataURI)
	}
	return b
}

// relativeTo expresses target relative to dir. Both are POSIX-style
// paths sharing an implicit root.
func relativeTo(dir, target string) string {
	if dir == "." || dir == "" {
		return target
	}
	d := strings.Split(dir, "/")
	t := strings.Split(target, "/")
	i := 0
	for i < len(d) && i < len(t) && d[i] == t[i] {
		i++
	}
	out := make([]string, 0, len(d)-i+len(t)-i)
	for j := i; j < len(d); j++ {
		out = append(out, "..")
	}
	out = append(out, t[i:]...)
	return strings.Join(out, "/")
}

// WriteZip packages a path→content map as a ZIP archive with
// deterministic entry order.
func WriteZip(w io.Writer, files map[string][]byte) error {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	zw := zip.NewWriter(w)
	for _, name := range names {
		f, err := zw.Create(name)
		if err != nil {
			return err
		}
		if _, err := f.Write(files[name]); err != nil {
			return err
		}
	}
	return zw.Close()
}
